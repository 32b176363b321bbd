package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/littlelemon/pkg/app/styles"
	"github.com/kerbaras/littlelemon/pkg/data"
)

// cardHeight is the number of rows one rendered menu card occupies.
const cardHeight = 6

type MenuList struct {
	Items         []*data.MenuItem
	SelectedIndex int
	Width         int
	Height        int
	EmptyMessage  string
}

func NewMenuList() *MenuList {
	return &MenuList{
		Items:         []*data.MenuItem{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
		EmptyMessage:  "No menu items",
	}
}

func (m *MenuList) SetItems(items []*data.MenuItem) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *MenuList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *MenuList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *MenuList) Selected() *data.MenuItem {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return m.Items[m.SelectedIndex]
}

// window returns the range of items that fit in Height, keeping the
// selected item visible.
func (m *MenuList) window() (int, int) {
	visible := m.Height / cardHeight
	if visible < 1 {
		visible = 1
	}
	if len(m.Items) <= visible {
		return 0, len(m.Items)
	}

	start := m.SelectedIndex - visible/2
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(m.Items) {
		end = len(m.Items)
		start = end - visible
	}
	return start, end
}

func (m *MenuList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render(m.EmptyMessage)
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder

	start, end := m.window()
	for i := start; i < end; i++ {
		item := m.Items[i]
		cardStyle := styles.CardStyle
		if i == m.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := lipgloss.NewStyle().Bold(true).Foreground(styles.Foreground).Render(item.Title)

		// Truncate description
		desc := item.Description
		if len(desc) > 80 {
			desc = desc[:77] + "..."
		}
		description := styles.MutedStyle.Render(desc)

		price := styles.PriceStyle.Render(FormatPrice(item.Price))
		category := styles.MutedStyle.Render(item.Category)

		cardContent := lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			description,
			lipgloss.JoinHorizontal(lipgloss.Top, price, "  ", category),
		)

		card := cardStyle.Width(m.Width - 4).Render(cardContent)
		b.WriteString(card)
		b.WriteString("\n")
	}

	if end-start < len(m.Items) {
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("Showing %d-%d of %d items", start+1, end, len(m.Items)),
		))
	}

	return b.String()
}

// FormatPrice renders a price the way the menu prints it, e.g. $12.99.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}
