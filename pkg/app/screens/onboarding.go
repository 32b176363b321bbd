package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/littlelemon/pkg/app/styles"
	"github.com/kerbaras/littlelemon/pkg/data"
	"github.com/kerbaras/littlelemon/pkg/services"
)

const (
	pageName = iota
	pageEmail
	pageThanks
	pageCount
)

type OnboardingScreen struct {
	sessions *services.SessionService
	name     textinput.Model
	email    textinput.Model
	page     int
	width    int
	height   int
	err      error
}

func NewOnboardingScreen(sessions *services.SessionService) *OnboardingScreen {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 100
	name.Width = 40

	email := textinput.New()
	email.Placeholder = "Your email"
	email.CharLimit = 254
	email.Width = 40

	s := &OnboardingScreen{
		sessions: sessions,
		name:     name,
		email:    email,
	}
	s.setPage(pageName)
	return s
}

// Reset clears the form and returns to the first page.
func (s *OnboardingScreen) Reset() {
	s.name.SetValue("")
	s.email.SetValue("")
	s.err = nil
	s.setPage(pageName)
}

func (s *OnboardingScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Capturing reports whether plain keys are typed into an input.
func (s *OnboardingScreen) Capturing() bool {
	return s.page != pageThanks
}

func (s *OnboardingScreen) Page() int {
	return s.page
}

// CanGoBack reports whether the Back control is enabled.
func (s *OnboardingScreen) CanGoBack() bool {
	return s.page > pageName
}

// CanGoNext reports whether the Next or Complete control is enabled.
func (s *OnboardingScreen) CanGoNext() bool {
	switch s.page {
	case pageName:
		return services.ValidateName(s.name.Value()) == nil
	case pageEmail:
		return services.ValidateEmail(s.email.Value()) == nil
	default:
		return true
	}
}

func (s *OnboardingScreen) setPage(page int) {
	s.page = page
	s.name.Blur()
	s.email.Blur()
	switch page {
	case pageName:
		s.name.Focus()
	case pageEmail:
		s.email.Focus()
	}
}

func (s *OnboardingScreen) Init() tea.Cmd {
	return textinput.Blink
}

func (s *OnboardingScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "tab":
			if !s.CanGoNext() {
				return s, nil
			}
			if s.page == pageThanks {
				return s, s.complete
			}
			s.setPage(s.page + 1)
			return s, textinput.Blink

		case "esc", "shift+tab":
			if s.CanGoBack() {
				s.err = nil
				s.setPage(s.page - 1)
				return s, textinput.Blink
			}
			return s, nil
		}

	case registeredMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		return s, func() tea.Msg {
			return SwitchScreenMsg{Screen: ScreenHome, Data: msg.user}
		}
	}

	// Update the focused input
	switch s.page {
	case pageName:
		s.name, cmd = s.name.Update(msg)
	case pageEmail:
		s.email, cmd = s.email.Update(msg)
	}

	return s, cmd
}

func (s *OnboardingScreen) View() string {
	header := styles.TitleStyle.Render("Onboarding")

	var prompt, input string
	switch s.page {
	case pageName:
		prompt = "Let's get to know you a little better!\nWhat should we call you?"
		input = styles.FocusedInputStyle.Render(s.name.View())
	case pageEmail:
		prompt = fmt.Sprintf("It's nice to meet you, %s.\nHow may we contact you?", strings.TrimSpace(s.name.Value()))
		input = styles.FocusedInputStyle.Render(s.email.View())
	default:
		prompt = "Thank you for joining Little Lemon.\nWelcome to the community!"
	}

	var hint string
	if s.page == pageEmail && s.email.Value() != "" && !s.CanGoNext() {
		hint = styles.MutedStyle.Render("Please enter a valid email address") + "\n"
	}

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n"
	}

	back := styles.DisabledButtonStyle.Render("Back")
	if s.CanGoBack() {
		back = styles.ButtonStyle.Render("Back")
	}
	label := "Next"
	if s.page == pageThanks {
		label = "Complete"
	}
	next := styles.DisabledButtonStyle.Render(label)
	if s.CanGoNext() {
		next = styles.ButtonStyle.Render(label)
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, back, "  ", next)

	help := styles.HelpStyle.Render("enter: next • esc: back • ctrl+c: quit")

	content := fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n%s%s%s\n%s",
		header,
		s.dots(),
		styles.TextStyle.Render(prompt),
		input,
		hint,
		errorMsg,
		buttons,
		help,
	)
	return content
}

func (s *OnboardingScreen) dots() string {
	d := make([]string, pageCount)
	for i := range d {
		d[i] = "○"
		if i == s.page {
			d[i] = "●"
		}
	}
	return styles.MutedStyle.Render(strings.Join(d, " "))
}

// Messages
type registeredMsg struct {
	user *data.User
	err  error
}

// Commands
func (s *OnboardingScreen) complete() tea.Msg {
	user, err := s.sessions.Register(s.name.Value(), s.email.Value())
	return registeredMsg{user: user, err: err}
}
