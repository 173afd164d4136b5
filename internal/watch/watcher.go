package watch

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"deferswap/internal/deferswap"
	"deferswap/internal/model"
	"deferswap/internal/storage"
)

// Config holds runtime settings for the watcher.
type Config struct {
	ChainID       uint64
	PollInterval  time.Duration
	Concurrency   int
	CursorPath    string
	CursorEnabled bool
	MaxRetries    int
	RetryBackoff  time.Duration
	Once          bool
}

// Watcher polls a pool's swap counter and mirrors its records into storage.
// Records below the cursor are terminal and never refetched; everything from
// the cursor up is refreshed each cycle so status flips are captured.
type Watcher struct {
	cfg     Config
	pool    deferswap.Pool
	storage storage.Storage
	logger  *zap.Logger
	metrics *Metrics
	cursor  CursorStorage
}

// NewWatcher builds a Watcher with its dependencies. Metrics and cursor may
// be nil; a nil cursor falls back to the file store at cfg.CursorPath.
func NewWatcher(cfg Config, pool deferswap.Pool, storageSink storage.Storage, cursor CursorStorage, metrics *Metrics, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cursor == nil {
		cursor = NewCursorStore(cfg.CursorPath, cfg.CursorEnabled)
	}
	return &Watcher{
		cfg:     cfg,
		pool:    pool,
		storage: storageSink,
		logger:  logger,
		metrics: metrics,
		cursor:  cursor,
	}
}

// Run executes the poll loop until the context is cancelled, or returns after
// one cycle when Once is set.
func (w *Watcher) Run(ctx context.Context) error {
	if w.pool == nil {
		return fmt.Errorf("pool is nil")
	}
	if w.storage == nil {
		return fmt.Errorf("storage is nil")
	}
	if w.cfg.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be greater than zero")
	}

	from := uint64(0)
	if cur, ok, err := w.cursor.Load(); err != nil {
		return err
	} else if ok {
		from = cur.NextSwapID
		w.logger.Info("resume from cursor", zap.Uint64("next_swap_id", from))
	}

	next, err := w.tick(ctx, from)
	if err != nil {
		return err
	}
	from = next
	if w.cfg.Once {
		return nil
	}

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		next, err := w.tick(ctx, from)
		if err != nil {
			return err
		}
		from = next
	}
}

func (w *Watcher) tick(ctx context.Context, from uint64) (uint64, error) {
	started := time.Now()
	poolLabel := w.pool.Addr().Hex()

	counter, err := w.orderCountWithRetry(ctx)
	if err != nil {
		return from, fmt.Errorf("swap counter: %w", err)
	}
	if w.metrics != nil {
		w.metrics.SwapCounter.WithLabelValues(poolLabel).Set(float64(counter))
	}

	observedAt := time.Now().UTC().Format(time.RFC3339Nano)
	poolSnap, err := w.poolSnapshot(ctx, counter, observedAt)
	if err != nil {
		return from, fmt.Errorf("pool snapshot: %w", err)
	}
	if err := w.storage.PutPoolSnapshots(ctx, []model.PoolSnapshot{poolSnap}); err != nil {
		return from, fmt.Errorf("store pool snapshot: %w", err)
	}

	if from >= counter {
		w.logger.Debug("no records to refresh", zap.Uint64("from", from), zap.Uint64("counter", counter))
		return from, nil
	}

	orders, fetchErrs := w.fetchOrders(ctx, from, counter, observedAt)
	now := time.Now()

	snaps := make([]model.SwapSnapshot, 0, len(orders))
	for _, order := range orders {
		snaps = append(snaps, w.swapSnapshot(order, now, observedAt))
	}
	if err := w.storage.PutSwapSnapshots(ctx, snaps); err != nil {
		return from, fmt.Errorf("store swap snapshots: %w", err)
	}
	if err := w.storage.PutFetchErrors(ctx, fetchErrs); err != nil {
		return from, fmt.Errorf("store fetch errors: %w", err)
	}
	if w.metrics != nil {
		w.metrics.SwapsRecorded.WithLabelValues(poolLabel).Add(float64(len(snaps)))
	}

	// Advance past the contiguous terminal prefix only. A gap means a fetch
	// failed this cycle and the id must be retried next cycle.
	next := from
	for _, order := range orders {
		if order.ID != next || !order.Status(now).Terminal() {
			break
		}
		next++
	}
	if next != from {
		if err := w.cursor.Save(next); err != nil {
			return from, err
		}
	}

	if w.metrics != nil {
		w.metrics.TickDuration.WithLabelValues(poolLabel).Observe(time.Since(started).Seconds())
	}
	w.logger.Info("cycle complete",
		zap.Uint64("counter", counter),
		zap.Int("records", len(snaps)),
		zap.Uint64("next_swap_id", next),
	)
	return next, nil
}

// fetchOrders reads ids [from, counter) concurrently. A failed id is recorded
// as a FetchError and skipped so one bad record cannot stall the batch.
func (w *Watcher) fetchOrders(ctx context.Context, from, counter uint64, observedAt string) ([]deferswap.Order, []model.FetchError) {
	concurrency := w.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	sem := make(chan struct{}, concurrency)

	var (
		mu        sync.Mutex
		orders    []deferswap.Order
		fetchErrs []model.FetchError
		wg        sync.WaitGroup
	)
	for id := from; id < counter; id++ {
		wg.Add(1)
		go func(id uint64) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			var order deferswap.Order
			err := withRetry(ctx, w.cfg.MaxRetries, w.cfg.RetryBackoff, func(ctx context.Context) error {
				var err error
				order, err = w.pool.Order(ctx, id)
				return err
			})
			if err != nil {
				w.logger.Warn("swap fetch failed", zap.Uint64("swap_id", id), zap.Error(err))
				if w.metrics != nil {
					w.metrics.ErrorsTotal.WithLabelValues(w.pool.Addr().Hex(), "fetch").Inc()
				}
				mu.Lock()
				fetchErrs = append(fetchErrs, model.FetchError{
					ChainID:     w.cfg.ChainID,
					PoolAddress: w.pool.Addr().Hex(),
					SwapID:      id,
					Error:       err.Error(),
					ObservedAt:  observedAt,
				})
				mu.Unlock()
				return
			}

			mu.Lock()
			orders = append(orders, order)
			mu.Unlock()
		}(id)
	}
	wg.Wait()

	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders, fetchErrs
}

func (w *Watcher) orderCountWithRetry(ctx context.Context) (uint64, error) {
	var counter uint64
	err := withRetry(ctx, w.cfg.MaxRetries, w.cfg.RetryBackoff, func(ctx context.Context) error {
		var err error
		counter, err = w.pool.OrderCount(ctx)
		if err != nil {
			w.logger.Warn("swap counter fetch failed", zap.Error(err))
		}
		return err
	})
	return counter, err
}

func (w *Watcher) poolSnapshot(ctx context.Context, counter uint64, observedAt string) (model.PoolSnapshot, error) {
	base, quote, err := w.pool.TokenPair(ctx)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	maker, err := w.pool.Maker(ctx)
	if err != nil {
		return model.PoolSnapshot{}, err
	}
	return model.PoolSnapshot{
		ChainID:     w.cfg.ChainID,
		Kind:        string(w.pool.Kind()),
		Address:     w.pool.Addr().Hex(),
		BaseToken:   base.Hex(),
		QuoteToken:  quote.Hex(),
		MarketMaker: maker.Hex(),
		SwapCounter: counter,
		ObservedAt:  observedAt,
	}, nil
}

func (w *Watcher) swapSnapshot(order deferswap.Order, now time.Time, observedAt string) model.SwapSnapshot {
	flags := order.Flags()
	return model.SwapSnapshot{
		ChainID:     w.cfg.ChainID,
		PoolKind:    string(w.pool.Kind()),
		PoolAddress: w.pool.Addr().Hex(),
		SwapID:      order.ID,
		Swapper:     order.Swapper.Hex(),
		QuoteAmount: order.QuoteAmount.String(),
		BaseAmount:  order.BaseAmount.String(),
		Collateral:  order.Collateral().String(),
		Expiry:      order.Expiry(),
		Taken:       flags.Taken,
		Settled:     flags.Settled,
		Claimed:     flags.Claimed,
		Cancelled:   flags.Cancelled,
		Status:      order.Status(now).String(),
		ObservedAt:  observedAt,
	}
}
