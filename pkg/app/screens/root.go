package screens

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/littlelemon/pkg/services"
	"github.com/sirupsen/logrus"
)

type screenType int

const (
	welcomeView screenType = iota
	onboardingView
	homeView
	profileView
)

// Screen names carried by SwitchScreenMsg.
const (
	ScreenWelcome    = "welcome"
	ScreenOnboarding = "onboarding"
	ScreenHome       = "home"
	ScreenProfile    = "profile"
)

// SwitchScreenMsg asks the root screen to change the active screen.
type SwitchScreenMsg struct {
	Screen string
	Data   interface{}
}

// capturer is implemented by screens that consume plain keys as text.
type capturer interface {
	Capturing() bool
}

// syncStartedMsg reports the outcome of launching a background sync.
type syncStartedMsg struct {
	task *services.SyncTask
	err  error
}

type RootScreen struct {
	controller *services.MenuController
	log        logrus.FieldLogger

	currentView screenType
	welcome     *WelcomeScreen
	onboarding  *OnboardingScreen
	home        *HomeScreen
	profile     *ProfileScreen

	task *services.SyncTask

	width  int
	height int
}

func NewRootScreen(controller *services.MenuController, log logrus.FieldLogger) *RootScreen {
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := &RootScreen{
		controller:  controller,
		log:         log,
		currentView: welcomeView,
		welcome:     NewWelcomeScreen(),
		onboarding:  NewOnboardingScreen(controller.Sessions()),
		home:        NewHomeScreen(controller),
		profile:     NewProfileScreen(controller.Sessions()),
	}

	_, err := controller.Sessions().Current()
	switch {
	case err == nil:
		r.currentView = homeView
	case !errors.Is(err, services.ErrNoSession):
		log.WithError(err).Warn("failed to read user session")
	}
	return r
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(
		r.startSync,
		r.listenForSync,
		r.activeInit(),
	)
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.welcome.SetSize(msg.Width, msg.Height)
		r.onboarding.SetSize(msg.Width, msg.Height)
		r.home.SetSize(msg.Width, msg.Height)
		r.profile.SetSize(msg.Width, msg.Height)
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return r, r.quit()
		case "q":
			if !r.capturing() {
				return r, r.quit()
			}
		}

	case SwitchScreenMsg:
		switch msg.Screen {
		case ScreenWelcome:
			r.currentView = welcomeView
		case ScreenOnboarding:
			r.onboarding.Reset()
			r.currentView = onboardingView
		case ScreenHome:
			r.currentView = homeView
		case ScreenProfile:
			r.currentView = profileView
		default:
			r.log.WithField("screen", msg.Screen).Warn("unknown screen")
			return r, nil
		}
		return r, r.activeInit()

	case syncStartedMsg:
		if msg.task != nil {
			r.task = msg.task
		}
		if msg.err != nil {
			r.log.WithError(msg.err).Error("failed to start menu sync")
		}
		// The home screen tracks sync state even when it is not active
		newModel, newCmd := r.home.Update(msg)
		r.home = newModel.(*HomeScreen)
		return r, newCmd

	case services.SyncProgress:
		newModel, newCmd := r.home.Update(msg)
		r.home = newModel.(*HomeScreen)
		return r, tea.Batch(newCmd, r.listenForSync)
	}

	// Forward message to active screen
	switch r.currentView {
	case welcomeView:
		newModel, newCmd := r.welcome.Update(msg)
		r.welcome = newModel.(*WelcomeScreen)
		return r, newCmd
	case onboardingView:
		newModel, newCmd := r.onboarding.Update(msg)
		r.onboarding = newModel.(*OnboardingScreen)
		return r, newCmd
	case homeView:
		newModel, newCmd := r.home.Update(msg)
		r.home = newModel.(*HomeScreen)
		return r, newCmd
	case profileView:
		newModel, newCmd := r.profile.Update(msg)
		r.profile = newModel.(*ProfileScreen)
		return r, newCmd
	}

	return r, cmd
}

func (r *RootScreen) View() string {
	switch r.currentView {
	case onboardingView:
		return r.onboarding.View()
	case homeView:
		return r.home.View()
	case profileView:
		return r.profile.View()
	default:
		return r.welcome.View()
	}
}

func (r *RootScreen) activeInit() tea.Cmd {
	switch r.currentView {
	case onboardingView:
		return r.onboarding.Init()
	case homeView:
		return r.home.Init()
	case profileView:
		return r.profile.Init()
	default:
		return r.welcome.Init()
	}
}

func (r *RootScreen) capturing() bool {
	var active interface{}
	switch r.currentView {
	case onboardingView:
		active = r.onboarding
	case homeView:
		active = r.home
	case profileView:
		active = r.profile
	default:
		active = r.welcome
	}
	if c, ok := active.(capturer); ok {
		return c.Capturing()
	}
	return false
}

func (r *RootScreen) quit() tea.Cmd {
	if r.task != nil {
		r.task.Cancel()
	}
	return tea.Quit
}

// Commands
func (r *RootScreen) startSync() tea.Msg {
	task, err := r.controller.EnsureSynced(context.Background())
	return syncStartedMsg{task: task, err: err}
}

func (r *RootScreen) listenForSync() tea.Msg {
	progress, ok := <-r.controller.Syncer().GetProgressChannel()
	if !ok {
		return nil
	}
	return progress
}
