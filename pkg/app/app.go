package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/littlelemon/pkg/app/screens"
	"github.com/kerbaras/littlelemon/pkg/services"
	"github.com/sirupsen/logrus"
)

type App struct {
	controller *services.MenuController
	log        logrus.FieldLogger
}

func NewApp(controller *services.MenuController, log logrus.FieldLogger) *App {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &App{controller: controller, log: log}
}

// Run blocks until the user quits. It does not close the controller.
func (a *App) Run() error {
	model := screens.NewRootScreen(a.controller, a.log)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	if err != nil {
		a.log.WithError(err).Error("tui exited with error")
	}
	return err
}
