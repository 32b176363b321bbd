package screens

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/littlelemon/pkg/app/styles"
	"github.com/kerbaras/littlelemon/pkg/data"
	"github.com/kerbaras/littlelemon/pkg/services"
)

type ProfileScreen struct {
	sessions *services.SessionService
	user     *data.User
	width    int
	height   int
	err      error
}

func NewProfileScreen(sessions *services.SessionService) *ProfileScreen {
	return &ProfileScreen{sessions: sessions}
}

func (s *ProfileScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *ProfileScreen) Init() tea.Cmd {
	return s.loadProfile
}

func (s *ProfileScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "s":
			return s, s.signOut
		case "esc", "backspace":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: ScreenHome}
			}
		}

	case profileLoadedMsg:
		if errors.Is(msg.err, services.ErrNoSession) {
			// Nobody to show, send the user through onboarding
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: ScreenOnboarding}
			}
		}
		s.user = msg.user
		s.err = msg.err

	case signedOutMsg:
		if msg.err != nil {
			s.err = msg.err
			return s, nil
		}
		s.user = nil
		return s, func() tea.Msg {
			return SwitchScreenMsg{Screen: ScreenWelcome}
		}
	}

	return s, nil
}

func (s *ProfileScreen) View() string {
	header := styles.TitleStyle.Render("Your profile")

	var body string
	if s.user != nil {
		body = fmt.Sprintf("%s\n%s",
			styles.TextStyle.Render(fmt.Sprintf("Hello, %s!", s.user.Name)),
			styles.TextStyle.Render(fmt.Sprintf("Your email is: %s", s.user.Email)),
		)
	} else {
		body = styles.MutedStyle.Render("Loading...")
	}

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n\n"
	}

	button := styles.ButtonStyle.Render("Sign out")
	help := styles.HelpStyle.Render("enter/s: sign out • esc: back • q: quit")

	return fmt.Sprintf("%s\n\n%s\n\n%s%s\n%s", header, body, errorMsg, button, help)
}

// Messages
type profileLoadedMsg struct {
	user *data.User
	err  error
}

type signedOutMsg struct {
	err error
}

// Commands
func (s *ProfileScreen) loadProfile() tea.Msg {
	user, err := s.sessions.Current()
	return profileLoadedMsg{user: user, err: err}
}

func (s *ProfileScreen) signOut() tea.Msg {
	return signedOutMsg{err: s.sessions.SignOut()}
}
