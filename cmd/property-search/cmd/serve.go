package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/property-search/internal/api"
	"github.com/donaldgifford/property-search/internal/boom"
	"github.com/donaldgifford/property-search/internal/cities"
	"github.com/donaldgifford/property-search/internal/config"
	"github.com/donaldgifford/property-search/internal/scheduler"
	"github.com/donaldgifford/property-search/internal/store"
	"github.com/donaldgifford/property-search/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tokens, client := newBoomClient(&cfg.Boom, log)

	var db store.Pinger
	if cfg.Database.Enabled() {
		pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), cfg.Database.PoolSize)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pg.Close()
		db = pg
		log.Info("database connected", "host", cfg.Database.Host, "name", cfg.Database.Name)
	}

	sched, err := scheduler.New(tokens, cfg.Boom.TokenSweepInterval, logger.Component(log, "scheduler"))
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()

	e := api.NewRouter(api.RouterConfig{
		Title:       "Property Search API",
		Version:     Version,
		Development: cfg.IsDevelopment(),
		Searcher:    client,
		Cities:      cities.Default(),
		DB:          db,
		Logger:      log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", addr, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			<-sched.Stop().Done()
			return fmt.Errorf("server error: %w", err)
		}
	}

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	waitForScheduler(shutdownCtx, sched, log)

	log.Info("server stopped")
	return nil
}

// newBoomClient builds the token manager and listings client sharing one HTTP
// client, warning when the credentials leave search in mock mode.
func newBoomClient(cfg *config.BoomConfig, log *slog.Logger) (*boom.TokenManager, *boom.Client) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	tokens := boom.NewTokenManager(cfg.ClientID, cfg.ClientSecret,
		boom.WithAuthBaseURL(cfg.BaseURL),
		boom.WithAuthHTTPClient(httpClient),
		boom.WithAuthLogger(logger.Component(log, "boom-auth")),
	)
	client := boom.NewClient(tokens,
		boom.WithBaseURL(cfg.BaseURL),
		boom.WithHTTPClient(httpClient),
		boom.WithLogger(logger.Component(log, "boom")),
	)
	if !cfg.Configured() {
		log.Warn("Boom credentials not configured, searches return mock results")
	}
	return tokens, client
}

func waitForScheduler(ctx context.Context, sched *scheduler.Scheduler, log *slog.Logger) {
	select {
	case <-sched.Stop().Done():
	case <-ctx.Done():
		log.Warn("scheduler did not stop before shutdown timeout")
	}
}
