// Package cli defines the railway-blog command line: serve (default), migrate,
// seed and hash-password.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/railway-blog-service/internal/config"
	"github.com/maxviazov/railway-blog-service/internal/logger"
)

// DefaultConfigPath is used when --config is not given.
const DefaultConfigPath = "config.yaml"

// NewRootCmd builds the command tree. Running it without a subcommand serves HTTP.
func NewRootCmd(version string) *cobra.Command {
	var configPath string
	serve := newServeCmd(&configPath)

	cmd := &cobra.Command{
		Use:           "railway-blog",
		Short:         "Railway blog CMS",
		Long:          "Blog and content manager for railway lines, stations, projects and events.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", DefaultConfigPath, "path to the YAML config file (APP_* env vars override it)")
	cmd.AddCommand(serve, newMigrateCmd(&configPath), newSeedCmd(&configPath), newHashPasswordCmd())
	return cmd
}

// bootstrap loads the config and builds the root logger.
func bootstrap(path string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, log, nil
}
