package services

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kerbaras/littlelemon/pkg/data"
)

// DefaultCategories are the options offered on the home screen.
var DefaultCategories = []string{"Starters", "Mains", "Desserts"}

// FilterMenu returns the items whose title contains term and, when category
// is not empty, whose category equals it. Both comparisons ignore case. The
// input is never modified and order is preserved.
func FilterMenu(items []*data.MenuItem, term, category string) []*data.MenuItem {
	if items == nil {
		return nil
	}
	term = strings.ToLower(term)

	out := make([]*data.MenuItem, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if !strings.Contains(strings.ToLower(item.Title), term) {
			continue
		}
		if category != "" && !strings.EqualFold(item.Category, category) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Categories returns the default options followed by any other category
// present in items, compared case-insensitively, in first-seen order.
func Categories(items []*data.MenuItem) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(DefaultCategories))
	add := func(c string) {
		key := strings.ToLower(strings.TrimSpace(c))
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, c)
	}

	for _, c := range DefaultCategories {
		add(c)
	}
	for _, item := range items {
		if item != nil {
			add(capitalize(item.Category))
		}
	}
	return out
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
