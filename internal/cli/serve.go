package cli

import (
	"github.com/spf13/cobra"

	"github.com/nhle/timely/internal/api"
	"github.com/nhle/timely/internal/store"
)

func serveCmd(rt *runtime) *cobra.Command {
	var addr, staticDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := rt.cfg.Server
			if addr != "" {
				cfg.Addr = addr
			}
			if staticDir != "" {
				cfg.StaticDir = staticDir
			}

			return rt.withStore(func(st *store.SQLiteStore) error {
				rt.logger.Info("database ready", "path", rt.cfg.Database.Path)
				return api.NewServer(st, cfg, rt.logger).ListenAndServe(cmd.Context())
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&staticDir, "static", "", "directory served at / (overrides config)")

	return cmd
}
