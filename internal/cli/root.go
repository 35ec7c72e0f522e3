// Package cli implements the timely command-line interface.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nhle/timely/internal/logging"
	"github.com/nhle/timely/internal/model"
	"github.com/nhle/timely/internal/store"
)

// runtime carries global flags and the configuration resolved from them.
type runtime struct {
	configPath string
	dbPath     string
	logLevel   string

	cfg    *model.AppConfig
	logger *slog.Logger
}

// NewRootCmd builds the timely command tree.
func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	cmd := &cobra.Command{
		Use:           "timely",
		Short:         "Timely - a kanban board and calendar backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return rt.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&rt.configPath, "config", model.DefaultConfigPath(), "config file path")
	flags.StringVar(&rt.dbPath, "db", "", "database path (overrides config)")
	flags.StringVar(&rt.logLevel, "log-level", "", "log level: debug, info, warn, error")

	cmd.AddCommand(serveCmd(rt))
	cmd.AddCommand(migrateCmd(rt))
	cmd.AddCommand(configCmd(rt))
	cmd.AddCommand(taskCmd(rt))
	cmd.AddCommand(eventCmd(rt))

	return cmd
}

// init loads configuration, applies flag overrides and sets up logging.
func (rt *runtime) init(cmd *cobra.Command) error {
	cfg, err := model.LoadConfig(rt.configPath)
	if err != nil {
		return err
	}
	if rt.dbPath != "" {
		cfg.Database.Path = rt.dbPath
	}
	if rt.logLevel != "" {
		cfg.Log.Level = rt.logLevel
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	rt.cfg = cfg
	rt.logger = logger
	return nil
}

// openStore opens the configured database, applying pending migrations.
func (rt *runtime) openStore() (*store.SQLiteStore, error) {
	st, err := store.NewSQLiteStore(rt.cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", rt.cfg.Database.Path, err)
	}
	return st, nil
}

// withStore opens the store for the duration of fn.
func (rt *runtime) withStore(fn func(st *store.SQLiteStore) error) error {
	st, err := rt.openStore()
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			rt.logger.Error("closing database", "error", err)
		}
	}()
	return fn(st)
}
