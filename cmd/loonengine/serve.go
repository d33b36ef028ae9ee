package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/loonengine/payroll-engine/internal/api"
	"github.com/loonengine/payroll-engine/internal/config"
	"github.com/loonengine/payroll-engine/internal/ledger"
	"github.com/loonengine/payroll-engine/internal/ledger/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr, dbPath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the payroll API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.settings()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			server, closeStore, err := buildServer(cfg, log)
			if err != nil {
				return err
			}
			defer closeStore()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, server, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default $LOONENGINE_ADDR or :8080)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite ledger path, ':memory:' for a throwaway ledger")
	return cmd
}

// buildServer wires rate tables, engine, ledger store and router.
func buildServer(cfg *config.Config, log zerolog.Logger) (*http.Server, func() error, error) {
	rates, err := loadRates(cfg)
	if err != nil {
		return nil, nil, err
	}
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}

	handler := api.NewHandler(newEngine(cfg, rates, log), ledger.New(store), rates)
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      api.NewRouter(handler, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Info().Ints("tax_years", rates.Years()).Str("db", cfg.DBPath).Msg("payroll service configured")
	return server, store.Close, nil
}

// run serves until ctx is cancelled, then drains active requests.
func run(ctx context.Context, server *http.Server, log zerolog.Logger) error {
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}
