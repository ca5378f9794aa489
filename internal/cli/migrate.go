package cli

import (
	"github.com/spf13/cobra"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations for the configured driver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			b, err := openBackend(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer b.store.Close()
			if err := b.migrate(cmd.Context()); err != nil {
				return err
			}
			cmd.Printf("migrations applied (%s)\n", cfg.Database.Driver)
			return nil
		},
	}
}
