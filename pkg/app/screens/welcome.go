package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/littlelemon/pkg/app/styles"
)

type WelcomeScreen struct {
	width  int
	height int
}

func NewWelcomeScreen() *WelcomeScreen {
	return &WelcomeScreen{}
}

func (s *WelcomeScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *WelcomeScreen) Init() tea.Cmd {
	return nil
}

func (s *WelcomeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", " ":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: ScreenOnboarding}
			}
		}
	}
	return s, nil
}

func (s *WelcomeScreen) View() string {
	logo := styles.TitleStyle.Render("🍋 Welcome to Little Lemon")
	tagline := styles.SubtitleStyle.Render(
		"The ultimate destination for authentic Mediterranean food and experiences.",
	)
	button := styles.ButtonStyle.Render("Get Started")
	help := styles.HelpStyle.Render("enter: get started • q: quit")

	content := fmt.Sprintf("%s\n\n%s\n\n%s\n%s", logo, tagline, button, help)
	if s.width == 0 {
		return content
	}
	return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, content)
}
