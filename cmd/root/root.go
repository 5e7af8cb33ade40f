// Package root contains the root command for the application
package root

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/finanza/internal/config"
	"fjacquet/finanza/internal/ledger"
	"fjacquet/finanza/internal/logging"
	"fjacquet/finanza/internal/profile"
	"fjacquet/finanza/internal/report"
	"fjacquet/finanza/internal/storage"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg is the application configuration, loaded before any command runs.
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finanza",
		Short: "A personal finance ledger with running balances, analytics and reports.",
		Long: `finanza keeps a ledger of income and expense entries, computes running
balances and totals, groups spending by category and by day, and exchanges
backups as plain JSON.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to finanza!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			if DataDir != "" {
				cfg.Data.Directory = filepath.Clean(DataDir)
			}
			Cfg = cfg
		},
	}
)

// App bundles the ledger service and its collaborators for one command run.
type App struct {
	Logger   logging.Logger
	Store    *storage.SQLiteStore
	Ledger   *ledger.Service
	Profiles *profile.Store
	Reports  *report.Generator
}

// OpenApp opens the database under the configured data directory and wires
// the services every command works against. Callers must Close.
func OpenApp(ctx context.Context) (*App, error) {
	if err := os.MkdirAll(Cfg.Data.Directory, 0o755); err != nil {
		return nil, err
	}

	logger := logging.NewLogrusAdapterFromLogger(Log)

	store, err := storage.NewSQLiteStore(Cfg.DatabasePath())
	if err != nil {
		return nil, err
	}

	svc, err := ledger.NewService(ctx, store, logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &App{
		Logger:   logger,
		Store:    store,
		Ledger:   svc,
		Profiles: profile.NewStore(Cfg.ProfilePath(), logger),
		Reports:  report.NewGenerator(logger),
	}, nil
}

// Close releases the App's database handle.
func (a *App) Close() {
	if err := a.Store.Close(); err != nil {
		Log.Warnf("Failed to close database: %v", err)
	}
}

// DataDir lets commands override the configured data directory, which is
// mostly useful for scripting and tests.
var DataDir string

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVar(&DataDir, "data-dir", "", "Override the data directory")
}
