package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/littlelemon/pkg/app/styles"
)

// CategoryBar is the row of category options on the home screen. At most
// one option is selected; selecting it again clears the selection.
type CategoryBar struct {
	Options  []string
	Cursor   int
	Selected string
}

func NewCategoryBar(options []string) *CategoryBar {
	return &CategoryBar{Options: options}
}

// SetOptions replaces the options, keeping the selection when it still exists.
func (c *CategoryBar) SetOptions(options []string) {
	c.Options = options
	if c.Cursor >= len(options) {
		c.Cursor = 0
	}
	for _, o := range options {
		if strings.EqualFold(o, c.Selected) {
			return
		}
	}
	c.Selected = ""
}

func (c *CategoryBar) Next() {
	if len(c.Options) == 0 {
		return
	}
	c.Cursor = (c.Cursor + 1) % len(c.Options)
}

func (c *CategoryBar) Prev() {
	if len(c.Options) == 0 {
		return
	}
	c.Cursor = (c.Cursor - 1 + len(c.Options)) % len(c.Options)
}

// Toggle selects the option under the cursor, or clears it if it was
// already selected.
func (c *CategoryBar) Toggle() {
	if len(c.Options) == 0 {
		return
	}
	option := c.Options[c.Cursor]
	if strings.EqualFold(option, c.Selected) {
		c.Selected = ""
		return
	}
	c.Selected = option
}

func (c *CategoryBar) View(focused bool) string {
	rendered := make([]string, len(c.Options))
	for i, option := range c.Options {
		style := styles.OptionStyle
		switch {
		case strings.EqualFold(option, c.Selected):
			style = styles.SelectedOptionStyle
		case focused && i == c.Cursor:
			style = styles.CursorOptionStyle
		}
		label := option
		if focused && i == c.Cursor {
			label = "› " + label
		}
		rendered[i] = style.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
