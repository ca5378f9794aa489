package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/maxviazov/railway-blog-service/internal/auth"
	"github.com/maxviazov/railway-blog-service/internal/handler"
	"github.com/maxviazov/railway-blog-service/internal/metrics"
	"github.com/maxviazov/railway-blog-service/internal/recent"
	"github.com/maxviazov/railway-blog-service/internal/service"
	"github.com/maxviazov/railway-blog-service/internal/view"
)

const (
	shutdownTimeout = 10 * time.Second
	// recentOversample is how many rows each sidebar source fetches per slot.
	recentOversample = 2
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath)
		},
	}
}

func runServe(parent context.Context, configPath string) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	b, err := openBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := b.store.Close(); err != nil {
			log.Error().Err(err).Msg("closing store failed")
		}
	}()
	if cfg.App.AutoMigrate {
		if err := b.migrate(ctx); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	}

	views, err := view.New()
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	engine := handler.New(handler.Deps{
		Services: handler.NewServices(b.store, log),
		Recent:   service.NewRecentFeed(b.store, log, recent.WithOversample(recentOversample)),
		Auth:     auth.NewManager(cfg.Auth),
		Config:   cfg,
		Pinger:   b.store.Pinger,
		Metrics:  metrics.New(),
		Views:    views,
		Logger:   log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("driver", cfg.Database.Driver).Str("env", cfg.App.Env).Msg("service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("service stopped")
	return nil
}
