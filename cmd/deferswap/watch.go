package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"deferswap/internal/chain"
	"deferswap/internal/config"
	"deferswap/internal/deferswap"
	"deferswap/internal/storage"
	"deferswap/internal/storage/postgres"
	"deferswap/internal/watch"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll a pool and record snapshots",
		RunE:  runWatch,
	}

	addNetworkFlags(cmd)
	cmd.Flags().String("pool", "", "pool address")
	cmd.Flags().String("kind", "spread", "pool kind (spread or limit)")
	cmd.Flags().Duration("interval", 60*time.Second, "poll interval")
	cmd.Flags().Int("concurrency", 4, "concurrent record fetches")
	cmd.Flags().String("out", "./data/snapshots.jsonl", "output JSONL path")
	cmd.Flags().String("cursor", "./data/cursor.json", "cursor file path")
	cmd.Flags().Bool("cursor-enabled", true, "persist the terminal-record cursor")
	cmd.Flags().String("pg-dsn", "", "optional Postgres DSN for snapshot upserts")
	cmd.Flags().String("metrics-listen", "", "optional Prometheus listen address, e.g. :9090")
	cmd.Flags().Int("max-retries", 5, "maximum retry attempts per read")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	cmd.Flags().Bool("once", false, "run a single cycle and exit")

	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadWatch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	kind, err := deferswap.ParseKind(cfg.Kind)
	if err != nil {
		return err
	}
	poolAddr, err := parseAddress(cfg.Pool, "pool")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := chain.Connect(ctx, cfg.Network.RPCURLs, cfg.Network.ChainID)
	if err != nil {
		return fmt.Errorf("connect rpc: %w", err)
	}
	defer client.Close()

	pool, err := deferswap.OpenPool(client, kind, poolAddr)
	if err != nil {
		return err
	}

	sinks := storage.Tee{storage.NewJsonlStorage(cfg.Out)}
	var cursor watch.CursorStorage
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		sinks = append(sinks, store)
		if cfg.CursorEnabled {
			name := fmt.Sprintf("%d:%s", cfg.Network.ChainID, poolAddr.Hex())
			cursor = pgCursor{ctx: ctx, store: store, name: name}
		}
	}

	var metrics *watch.Metrics
	if cfg.MetricsListen != "" {
		registry := prometheus.NewRegistry()
		metrics = watch.NewMetrics(registry)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: cfg.MetricsListen, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", zap.Error(err))
			}
		}()
		defer server.Close()
	}

	watcher := watch.NewWatcher(watch.Config{
		ChainID:       cfg.Network.ChainID,
		PollInterval:  cfg.Interval,
		Concurrency:   cfg.Concurrency,
		CursorPath:    cfg.Cursor,
		CursorEnabled: cfg.CursorEnabled,
		MaxRetries:    cfg.MaxRetries,
		RetryBackoff:  cfg.RetryBackoff,
		Once:          cfg.Once,
	}, pool, sinks, cursor, metrics, logger)

	logger.Info("watch start",
		zap.String("pool", poolAddr.Hex()),
		zap.String("kind", string(kind)),
		zap.Duration("interval", cfg.Interval),
		zap.String("out", cfg.Out),
		zap.Bool("postgres", cfg.PGDSN != ""),
	)

	err = watcher.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// pgCursor stores the resume point next to the snapshots when Postgres is
// configured, so a watcher can move hosts without carrying the cursor file.
type pgCursor struct {
	ctx   context.Context
	store *postgres.Store
	name  string
}

func (c pgCursor) Load() (watch.Cursor, bool, error) {
	next, ok, err := c.store.LoadCursor(c.ctx, c.name)
	return watch.Cursor{NextSwapID: next}, ok, err
}

func (c pgCursor) Save(nextSwapID uint64) error {
	return c.store.SaveCursor(c.ctx, c.name, nextSwapID)
}
