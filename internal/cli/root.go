// Package cli provides the command-line interface for the application.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"stock-manager/internal/config"
	"stock-manager/internal/planner"
	"stock-manager/internal/store"
)

// Version information
const Version = "0.1.0"

// App holds the application dependencies. The store is opened lazily so
// commands that never touch it (version, config) leave the backing
// medium alone.
type App struct {
	Config *config.Config
	Logger zerolog.Logger

	store   store.PlanStore
	service *planner.Service
}

// Service returns the planner service, opening the configured store on
// first use.
func (a *App) Service() (*planner.Service, error) {
	if a.service != nil {
		return a.service, nil
	}

	st, err := openStore(a.Config.Store)
	if err != nil {
		return nil, err
	}
	a.store = st
	a.service = planner.NewService(st, a.Logger)
	a.Logger.Debug().Str("backend", a.Config.Store.Backend).Msg("store opened")
	return a.service, nil
}

// Close releases the store if it was opened.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}

func openStore(cfg config.StoreConfig) (store.PlanStore, error) {
	opts := store.Options{UniqueSymbol: cfg.UniqueSymbol}
	switch cfg.Backend {
	case "sqlite":
		return store.NewSQLiteStore(cfg.DBPath, opts)
	case "json":
		return store.NewFileStore(cfg.DataFile, opts)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "stockman",
		Short: "Stock Manager - trade plan record keeping",
		Long: `Stock Manager records manually entered stock trade plans: symbol,
share count, buy price, risk/reward percentages, and a chosen exit
strategy. It derives stop-loss and take-profit prices from each plan.

Use 'stockman help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return app.Close()
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newPlanCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("Stock Manager v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and validate application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}

			output.Bold("Store")
			output.Printf("  Backend:        %s\n", app.Config.Store.Backend)
			output.Printf("  DB Path:        %s\n", app.Config.Store.DBPath)
			output.Printf("  Data File:      %s\n", app.Config.Store.DataFile)
			output.Printf("  Unique Symbol:  %v\n", app.Config.Store.UniqueSymbol)
			output.Println()

			output.Bold("Logging")
			output.Printf("  Level:          %s\n", app.Config.Logging.Level)
			output.Printf("  Console:        %v\n", app.Config.Logging.Console)
			output.Printf("  File:           %v\n", app.Config.Logging.File)
			output.Printf("  File Path:      %s\n", app.Config.Logging.FilePath)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				return output.JSON(map[string]bool{"valid": true})
			}
			output.Success("✓ Configuration is valid")
			return nil
		},
	})

	return cmd
}
