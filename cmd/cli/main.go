package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/duty-roster/cmd/cli/commands"
	"github.com/jakechorley/duty-roster/internal/config"
	"github.com/jakechorley/duty-roster/pkg/clients/sheetsclient"
	"github.com/jakechorley/duty-roster/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Duty roster CLI - Generate monthly duty rosters",
		Long: `A CLI tool for generating monthly duty rosters under skill, fatigue and
equity constraints, with compensatory rest for holiday work.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output on the console")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateRosterCmd(app))
	rootCmd.AddCommand(commands.ShowCalendarCmd(app))
	rootCmd.AddCommand(commands.ListStaffCmd(app))
	rootCmd.AddCommand(commands.SignOutCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and, when a spreadsheet is configured, the sheets client
func initApp() error {
	var err error
	app.Ctx = context.Background()

	if verbose {
		app.Logger, err = logging.New(env, logging.Options{Verbose: true})
	} else {
		app.Logger, err = logging.InitLogger(env)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application")

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully")

	if !app.Cfg.UsesSheets() {
		return nil
	}

	app.Logger.Debug("Loading OAuth client configuration")
	oauthCfg, err := config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Info("Initializing sheets client")
	app.SheetsClient, err = sheetsclient.NewClient(app.Ctx, oauthCfg, env, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to create sheets client: %w", err)
	}
	app.Logger.Debug("Sheets client initialized successfully", zap.Bool("staff_sheet", app.Cfg.StaffSheetID != ""))

	return nil
}
