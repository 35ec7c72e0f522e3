package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/timely/internal/store"
)

func migrateCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return rt.withStore(func(st *store.SQLiteStore) error {
				version, err := st.SchemaVersion(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: schema version %d\n", rt.cfg.Database.Path, version)
				return nil
			})
		},
	}
}
