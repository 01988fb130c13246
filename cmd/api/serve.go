package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kennel-records/internal/adapters/storage/postgres"
	"kennel-records/internal/config"
	"kennel-records/internal/platform/ids"
	"kennel-records/internal/platform/logger"
	"kennel-records/internal/router"
	"kennel-records/internal/store"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, db, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	if cfg.SeedDemoData {
		rep, err := st.Seed(ctx)
		if err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
		log.Info("seed", map[string]any{
			"skipped": rep.Skipped,
			"dogs":    rep.Dogs,
			"heats":   rep.Heats,
			"litters": rep.Litters,
			"events":  rep.Events,
		})
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.NewRouter(router.Options{Store: st, DB: db, Log: log}),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	log.Info("server exited", nil)
	return nil
}

// openStore elige Postgres si hay DB_DSN, si no in-memory.
func openStore(ctx context.Context, cfg *config.Config, log logger.Logger) (*store.Store, *sql.DB, error) {
	opts := store.Options{
		IDs: ids.FromStrategy(cfg.IDStrategy),
		Log: log,
	}

	if !cfg.UsePostgres() {
		log.Info("storage", map[string]any{"driver": "memory"})
		return store.NewInMemory(opts), nil, nil
	}

	db, err := postgres.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info("storage", map[string]any{"driver": "postgres"})
	return store.NewPostgres(db, opts), db, nil
}
