package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maxviazov/railway-blog-service/internal/seed"
)

func newSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "seed {" + strings.Join(seed.Sets, "|") + "}",
		Short:     "Load fixture data; existing rows are left untouched",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: seed.Sets,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			res, err := seed.New(b.store, log).Run(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("seed %s: %w", args[0], err)
			}
			kinds := make([]string, 0, len(res))
			for k := range res {
				kinds = append(kinds, k)
			}
			slices.Sort(kinds)
			if len(kinds) == 0 {
				cmd.Println("nothing to seed")
			}
			for _, k := range kinds {
				cmd.Printf("%s: %d\n", k, res[k])
			}
			return nil
		},
	}
}
