package screens

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/littlelemon/pkg/app/components"
	"github.com/kerbaras/littlelemon/pkg/app/styles"
	"github.com/kerbaras/littlelemon/pkg/data"
	"github.com/kerbaras/littlelemon/pkg/services"
)

type homeFocus int

const (
	focusList homeFocus = iota
	focusSearch
	focusCategories
)

// homeChrome is the number of rows taken by everything but the menu list.
const homeChrome = 18

type HomeScreen struct {
	controller *services.MenuController
	search     textinput.Model
	categories *components.CategoryBar
	list       *components.MenuList
	status     *components.SyncStatus
	items      []*data.MenuItem
	focus      homeFocus
	width      int
	height     int
	err        error
}

func NewHomeScreen(controller *services.MenuController) *HomeScreen {
	ti := textinput.New()
	ti.Placeholder = "Enter Search Phrase"
	ti.CharLimit = 100
	ti.Width = 40

	return &HomeScreen{
		controller: controller,
		search:     ti,
		categories: components.NewCategoryBar(services.DefaultCategories),
		list:       components.NewMenuList(),
		status:     components.NewSyncStatus(),
		focus:      focusList,
	}
}

func (s *HomeScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.list.Width = width - 4
	s.list.Height = height - homeChrome
}

// Capturing reports whether the search input has focus.
func (s *HomeScreen) Capturing() bool {
	return s.focus == focusSearch
}

// Visible returns the menu items currently shown.
func (s *HomeScreen) Visible() []*data.MenuItem {
	return s.list.Items
}

func (s *HomeScreen) Init() tea.Cmd {
	return s.loadMenu
}

func (s *HomeScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.focus == focusSearch {
			switch msg.String() {
			case "esc", "enter", "tab":
				s.setFocus(focusCategories)
				return s, nil
			}
			s.search, cmd = s.search.Update(msg)
			s.applyFilter()
			return s, cmd
		}

		switch msg.String() {
		case "/":
			s.setFocus(focusSearch)
			return s, textinput.Blink
		case "tab":
			if s.focus == focusCategories {
				s.setFocus(focusList)
			} else {
				s.setFocus(focusSearch)
				return s, textinput.Blink
			}
		case "left", "h":
			if s.focus == focusCategories {
				s.categories.Prev()
			}
		case "right", "l":
			if s.focus == focusCategories {
				s.categories.Next()
			}
		case "enter", " ":
			if s.focus == focusCategories {
				s.categories.Toggle()
				s.applyFilter()
			}
		case "up", "k":
			s.list.Prev()
		case "down", "j":
			s.list.Next()
		case "r":
			if s.status.CanRetry() {
				s.err = nil
				return s, s.retrySync
			}
		case "p":
			return s, func() tea.Msg {
				return SwitchScreenMsg{Screen: ScreenProfile}
			}
		}

	case menuLoadedMsg:
		s.err = msg.err
		if msg.state != nil {
			s.status.SetState(msg.state)
		}
		if msg.err == nil {
			s.items = msg.items
			s.categories.SetOptions(services.Categories(msg.items))
			s.applyFilter()
		}

	case syncStartedMsg:
		if msg.err != nil && !errors.Is(msg.err, services.ErrSyncInProgress) {
			s.err = msg.err
		}

	case services.SyncProgress:
		s.status.Update(msg)
		switch msg.Status {
		case services.ProgressComplete, services.ProgressSkipped, services.ProgressError:
			return s, s.loadMenu
		}
	}

	return s, nil
}

func (s *HomeScreen) setFocus(focus homeFocus) {
	s.focus = focus
	if focus == focusSearch {
		s.search.Focus()
	} else {
		s.search.Blur()
	}
}

func (s *HomeScreen) applyFilter() {
	s.list.SetItems(services.FilterMenu(s.items, s.search.Value(), s.categories.Selected))
	if len(s.items) == 0 {
		s.list.EmptyMessage = "The menu has not been downloaded yet"
	} else {
		s.list.EmptyMessage = "No dishes match your search"
	}
}

func (s *HomeScreen) View() string {
	width := s.width
	if width == 0 {
		width = 80
	}

	topBar := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.TitleStyle.Render("🍋 Little Lemon"),
		"    ",
		styles.MutedStyle.Render("p: profile"),
	)

	hero := styles.HeaderStyle.Width(width - 2).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.NewStyle().Foreground(styles.Secondary).Bold(true).Render("Little Lemon"),
		styles.TextStyle.Render("Chicago"),
		"",
		styles.TextStyle.Render("We are a family owned Mediterranean restaurant, focused on traditional recipes served with a modern twist."),
	))

	inputStyle := styles.InputStyle
	if s.focus == focusSearch {
		inputStyle = styles.FocusedInputStyle
	}
	searchView := inputStyle.Render(s.search.View())

	categoriesView := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.SubtitleStyle.Render("ORDER FOR DELIVERY!"),
		s.categories.View(s.focus == focusCategories),
	)

	statusView := s.status.View()
	if s.status.CanRetry() {
		statusView += "  " + styles.MutedStyle.Render("r: retry sync")
	}

	var errorMsg string
	if s.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", s.err)) + "\n"
	}

	help := styles.HelpStyle.Render(
		"/: search • tab: switch focus • ←/h →/l: category • enter: toggle • ↑/k ↓/j: navigate • p: profile • q: quit",
	)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n\n%s\n%s%s\n%s",
		topBar,
		hero,
		searchView,
		categoriesView,
		statusView,
		errorMsg,
		s.list.View(),
		help,
	)
}

// Messages
type menuLoadedMsg struct {
	items []*data.MenuItem
	state *data.SyncState
	err   error
}

// Commands
func (s *HomeScreen) loadMenu() tea.Msg {
	state, err := s.controller.SyncState()
	if err != nil {
		return menuLoadedMsg{err: err}
	}
	items, err := s.controller.Menu()
	return menuLoadedMsg{items: items, state: state, err: err}
}

func (s *HomeScreen) retrySync() tea.Msg {
	task, err := s.controller.Syncer().Start(context.Background())
	return syncStartedMsg{task: task, err: err}
}
