// Package cli implements dashboardctl, the operator command line for the
// dashboard: schema migrations, seeding, revenue inspection and the Sheets
// mirror.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"dashboard/internal/backend"
	"dashboard/internal/config"
	applog "dashboard/internal/log"
	"dashboard/internal/sheets"
	gsheet "dashboard/internal/sheets/google"
)

// MirrorStore is what the mirror subcommands need from a spreadsheet.
type MirrorStore interface {
	sheets.Mirror
	sheets.Reader
}

// Options wires the command tree to its environment.
type Options struct {
	Out    io.Writer
	ErrOut io.Writer
	// SkipDotEnv leaves the process environment as is.
	SkipDotEnv bool
	// OpenMirror overrides the Google Sheets client.
	OpenMirror func(ctx context.Context, cfg *config.Config) (MirrorStore, error)
}

type app struct {
	opts   Options
	cfg    *config.Config
	logger *applog.Logger

	backendType string
	sqlitePath  string
	postgresDSN string
	seedFile    string
}

// NewRootCommand builds the dashboardctl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.OpenMirror == nil {
		opts.OpenMirror = openGoogleMirror
	}
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:   "dashboardctl",
		Short: "Operate the invoices dashboard data stores",
		Long: `dashboardctl manages the invoices dashboard backends.

Settings come from the same environment variables as the server (.env is
loaded when present). Flags override them.`,
		Example: `  dashboardctl migrate --backend sqlite --sqlite-path ./data/dashboard.db
  dashboardctl seed --backend postgres --seed-file fixtures.yaml
  dashboardctl revenue --svg revenue.svg
  dashboardctl mirror backfill`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	if opts.Out != nil {
		root.SetOut(opts.Out)
	}
	if opts.ErrOut != nil {
		root.SetErr(opts.ErrOut)
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.backendType, "backend", "", fmt.Sprintf("data backend %v (default from DATA_BACKEND)", backend.GetBackendTypeStrings()))
	flags.StringVar(&a.sqlitePath, "sqlite-path", "", "SQLite database path (default from SQLITE_DB_PATH)")
	flags.StringVar(&a.postgresDSN, "postgres-dsn", "", "Postgres DSN (default from POSTGRES_DSN)")
	flags.StringVar(&a.seedFile, "seed-file", "", "YAML fixture (default from SEED_FILE, else the built-in sample)")

	root.AddCommand(
		a.newMigrateCommand(),
		a.newSeedCommand(),
		a.newRevenueCommand(),
		a.newMirrorCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if !a.opts.SkipDotEnv {
		_ = godotenv.Load()
	}
	cfg := config.Load()
	if a.backendType != "" {
		cfg.DataBackend = a.backendType
	}
	if a.sqlitePath != "" {
		cfg.SQLiteDBPath = a.sqlitePath
	}
	if a.postgresDSN != "" {
		cfg.PostgresDSN = a.postgresDSN
	}
	if a.seedFile != "" {
		cfg.SeedFile = a.seedFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	// Logs go to stderr so command output stays pipeable.
	a.logger = applog.New(applog.Config{
		Component: applog.ComponentCLI,
		Handler:   slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}),
	})
	return nil
}

// openBackend creates the configured backend without seeding it.
func (a *app) openBackend(ctx context.Context) (*backend.BackendResult, error) {
	bcfg, err := backend.FromAppConfig(a.cfg)
	if err != nil {
		return nil, err
	}
	bcfg.SeedOnStart = false
	return backend.NewFactory(a.logger.Logger).CreateBackend(ctx, bcfg)
}

func openGoogleMirror(ctx context.Context, cfg *config.Config) (MirrorStore, error) {
	return gsheet.New(ctx, gsheet.Config{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
		CredentialsFile: cfg.GoogleServiceAccountFile,
	})
}
