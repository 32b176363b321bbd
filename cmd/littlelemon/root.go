package cmd

import (
	"fmt"
	"os"

	"github.com/kerbaras/littlelemon/pkg/app"
	"github.com/kerbaras/littlelemon/pkg/config"
	"github.com/kerbaras/littlelemon/pkg/services"
	"github.com/kerbaras/littlelemon/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dbPath   string
	menuURL  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:           "littlelemon",
	Short:         "Little Lemon restaurant menu",
	Long:          "Browse the Little Lemon menu with a TUI, or manage the local cache from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// The alternate screen owns the terminal, so the TUI logs to a file
		logger, logFile, err := utils.NewFileLogger(cfg.LogLevel, cfg.LogFile)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer logFile.Close()

		controller, err := newController(cfg, logger)
		if err != nil {
			return err
		}
		defer controller.Close()

		return app.NewApp(controller, logger).Run()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the local menu database")
	rootCmd.PersistentFlags().StringVar(&menuURL, "menu-url", "", "menu JSON endpoint")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	// Add all subcommands
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(signoutCmd)
	rootCmd.AddCommand(exportCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// loadConfig applies command line flags on top of the environment.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if menuURL != "" {
		cfg.MenuURL = menuURL
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

func newController(cfg *config.Config, logger logrus.FieldLogger) (*services.MenuController, error) {
	controllerConfig := cfg.Controller()
	controllerConfig.Logger = logger
	controller, err := services.NewMenuController(controllerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open menu store: %w", err)
	}
	return controller, nil
}

// openCLI builds a controller for subcommands, logging to stderr.
func openCLI(cmd *cobra.Command) (*services.MenuController, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := utils.NewLogger(cfg.LogLevel, cmd.ErrOrStderr())
	return newController(cfg, logger)
}
