package sources

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/kerbaras/littlelemon/pkg/data"
)

// Menu is the payload served by the menu endpoint.
type Menu struct {
	Menu *[]MenuItem `json:"menu"`
}

// MenuItem is a menu record as it arrives on the wire. Price is text.
type MenuItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

// ToMenuItem converts the record into its stored form, parsing the price.
func (m *MenuItem) ToMenuItem() (*data.MenuItem, error) {
	price, err := parsePrice(m.Price)
	if err != nil {
		return nil, &PriceParseError{ID: m.ID, Price: m.Price, Err: err}
	}
	return &data.MenuItem{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Price:       price,
		Image:       m.Image,
		Category:    m.Category,
	}, nil
}

func parsePrice(s string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, errors.New("not a finite number")
	}
	if price < 0 {
		return 0, errors.New("negative price")
	}
	return price, nil
}

// DecodeError reports a payload that is not a valid menu document.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode menu: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// PriceParseError reports a record whose price is not a usable number.
type PriceParseError struct {
	ID    int
	Price string
	Err   error
}

func (e *PriceParseError) Error() string {
	return fmt.Sprintf("menu item %d: invalid price %q: %v", e.ID, e.Price, e.Err)
}

func (e *PriceParseError) Unwrap() error {
	return e.Err
}

var errMissingMenu = errors.New(`missing "menu" field`)

// DecodeMenu reads a {"menu": [...]} document and returns its records in
// payload order. Unknown fields are ignored.
func DecodeMenu(r io.Reader) ([]MenuItem, error) {
	var payload Menu
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, &DecodeError{Err: err}
	}
	if payload.Menu == nil {
		return nil, &DecodeError{Err: errMissingMenu}
	}
	// trailing garbage after the document
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after menu document")
		}
		return nil, &DecodeError{Err: err}
	}
	return *payload.Menu, nil
}

func DecodeMenuBytes(b []byte) ([]MenuItem, error) {
	return DecodeMenu(bytes.NewReader(b))
}
