package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Little Lemon palette
	Primary    = lipgloss.Color("#495E57") // green
	Secondary  = lipgloss.Color("#F4CE14") // yellow
	Accent     = lipgloss.Color("#EE9972") // salmon
	Highlight  = lipgloss.Color("#FBDABB") // peach
	Success    = lipgloss.Color("#C3E88D")
	Error      = lipgloss.Color("#F07178")
	Info       = lipgloss.Color("#82AAFF")
	Muted      = lipgloss.Color("#7A8B85")
	Background = lipgloss.Color("#333333")
	Foreground = lipgloss.Color("#EDEFEE")

	// Border styles
	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

// Base styles
var (
	// Title style for headings
	TitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true).
			MarginBottom(1)

	// Subtitle style
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Italic(true)

	// Normal text
	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	// Muted/dimmed text
	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	PriceStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Hero banner on the home screen
	HeaderStyle = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Foreground).
			Padding(1, 2)

	// Card style
	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Primary).
			Padding(0, 2).
			MarginBottom(1)

	// Active/focused card
	ActiveCardStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Secondary).
			Padding(0, 2).
			MarginBottom(1)

	// Status styles
	StatusSyncing = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	StatusCompleted = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Category options, the selected one inverts the palette
	OptionStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Background(Primary).
			Padding(0, 2).
			MarginRight(1).
			Bold(true)

	SelectedOptionStyle = lipgloss.NewStyle().
				Foreground(Primary).
				Background(Secondary).
				Padding(0, 2).
				MarginRight(1).
				Bold(true)

	CursorOptionStyle = OptionStyle.
				Underline(true)

	// Buttons
	ButtonStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Background(Secondary).
			Padding(0, 3).
			Bold(true)

	DisabledButtonStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Background(Background).
				Padding(0, 3)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)

	// Input field
	InputStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Muted).
			Padding(0, 1)

	// Focused input
	FocusedInputStyle = lipgloss.NewStyle().
				Border(RoundedBorder).
				BorderForeground(Secondary).
				Padding(0, 1)
)

// Helper functions
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "syncing", "fetching", "storing":
		return StatusSyncing
	case "synced", "complete":
		return StatusCompleted
	case "failed", "error":
		return StatusError
	default:
		return MutedStyle
	}
}
