package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/dgallion1/menushare/internal/api"
	"github.com/dgallion1/menushare/internal/config"
	"github.com/dgallion1/menushare/internal/kv"
	"github.com/dgallion1/menushare/internal/logging"
	"github.com/dgallion1/menushare/internal/menustore"
	"github.com/dgallion1/menushare/internal/metric"
	"github.com/dgallion1/menushare/internal/pathstore"
)

var version = "v0.0.0" // Set at build time via -ldflags "-X main.version=version"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		slog.Error("load .env", "error", err)
		os.Exit(1)
	}
	cfg := config.Load()
	log := logging.New(os.Stdout, "menushare", version, cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ops := metric.NewCounterWithRegistry(reg, "menushare_menu_operations_total",
		"Menu store operations by operation and result.", "op", "result")
	svc := menustore.NewService(store, log, menustore.WithCounter(ops))

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewServer(svc, log, cfg, api.WithMetrics(reg)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	listener, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting menushare", "addr", httpServer.Addr, "store", cfg.StoreBackend)
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		log.Info("shutting down", "grace_period", cfg.ShutdownTimeout)
		start := time.Now()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", "error", err)
		}
		log.Info("shutdown complete", "duration", time.Since(start))
		return nil
	})

	return g.Wait()
}

func openStore(cfg config.Config) (kv.Store, error) {
	switch cfg.StoreBackend {
	case config.BackendFile:
		return kv.NewFile(cfg.StorePath)
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.StorePath, 0o755); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
		return kv.OpenSQLite(filepath.Join(cfg.StorePath, "menushare.db"))
	case config.BackendPathstore:
		return pathstore.NewClient(cfg.PathstoreURL, cfg.PathstoreAPIKey, cfg.PathstorePrefix), nil
	default:
		return kv.NewMemory(), nil
	}
}
