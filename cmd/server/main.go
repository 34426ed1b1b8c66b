package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/healthyliving/internal/api"
	"github.com/mmynk/healthyliving/internal/metrics"
	"github.com/mmynk/healthyliving/internal/middleware"
	"github.com/mmynk/healthyliving/internal/storage"
	"github.com/mmynk/healthyliving/internal/storage/mongo"
	"github.com/mmynk/healthyliving/internal/storage/sqlite"
	"github.com/mmynk/healthyliving/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	store := storage.Instrument(openStore(ctx, cfg), m)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			slog.Error("Failed to close storage", "error", err)
		}
	}()

	srv := api.NewServer(store, &api.Diagnostics{
		Store:           store,
		DatabaseURLSet:  cfg.DatabaseURL != "",
		DatabaseNameSet: cfg.DatabaseName != "",
	})

	handler := middleware.Chain(srv.Routes(m.Handler()),
		middleware.RequestID,
		middleware.Logging,
		middleware.CORS,
		middleware.Metrics(m),
	)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", cfg.Addr(), "storage", cfg.StorageDriver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutting down gracefully...")
	case err := <-errChan:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	slog.Info("Server stopped cleanly")
	return nil
}

// openStore connects the configured backend. A backend that cannot be
// opened leaves the server running on a Disconnected gateway, so data
// endpoints answer 503 and /test explains why.
func openStore(ctx context.Context, cfg Config) storage.Gateway {
	var (
		store storage.Gateway
		err   error
	)

	switch cfg.StorageDriver {
	case driverSQLite:
		store, err = sqlite.New(cfg.SQLitePath)
	default:
		if cfg.DatabaseURL == "" || cfg.DatabaseName == "" {
			slog.Warn("DATABASE_URL or DATABASE_NAME not set, starting without storage")
			return storage.NewDisconnected("DATABASE_URL or DATABASE_NAME not set")
		}
		store, err = mongo.New(ctx, cfg.DatabaseURL, cfg.DatabaseName)
	}
	if err != nil {
		slog.Error("Failed to initialize storage, starting without it", "driver", cfg.StorageDriver, "error", err)
		return storage.NewDisconnected(err.Error())
	}

	slog.Info("Storage initialized", "driver", cfg.StorageDriver, "database", store.DatabaseName())
	return store
}
