package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"deferswap/internal/model"
)

// Store provides Postgres persistence for watch snapshots.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// PutPoolSnapshots inserts or updates pool snapshots keyed by chain and
// address. Satisfies storage.Storage.
func (s *Store) PutPoolSnapshots(ctx context.Context, pools []model.PoolSnapshot) error {
	if len(pools) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range pools {
		batch.Queue(`
			INSERT INTO pools (
				chain_id, pool_address, kind, base_token, quote_token, market_maker, swap_counter, observed_at, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
			ON CONFLICT (chain_id, pool_address)
			DO UPDATE SET
				base_token = EXCLUDED.base_token,
				quote_token = EXCLUDED.quote_token,
				market_maker = EXCLUDED.market_maker,
				swap_counter = GREATEST(pools.swap_counter, EXCLUDED.swap_counter),
				observed_at = EXCLUDED.observed_at,
				updated_at = now()
		`,
			int64(p.ChainID),
			p.Address,
			p.Kind,
			p.BaseToken,
			p.QuoteToken,
			p.MarketMaker,
			int64(p.SwapCounter),
			p.ObservedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range pools {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// PutSwapSnapshots inserts or updates swap snapshots keyed by chain, pool and swap id.
func (s *Store) PutSwapSnapshots(ctx context.Context, swaps []model.SwapSnapshot) error {
	if len(swaps) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, sw := range swaps {
		batch.Queue(`
			INSERT INTO swaps (
				chain_id, pool_address, pool_kind, swap_id, swapper, quote_amount, base_amount, collateral,
				expiry, taken, settled, claimed, cancelled, status, observed_at, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,now(),now())
			ON CONFLICT (chain_id, pool_address, swap_id)
			DO UPDATE SET
				swapper = EXCLUDED.swapper,
				quote_amount = EXCLUDED.quote_amount,
				base_amount = EXCLUDED.base_amount,
				collateral = EXCLUDED.collateral,
				expiry = EXCLUDED.expiry,
				taken = EXCLUDED.taken,
				settled = EXCLUDED.settled,
				claimed = EXCLUDED.claimed,
				cancelled = EXCLUDED.cancelled,
				status = EXCLUDED.status,
				observed_at = EXCLUDED.observed_at,
				updated_at = now()
		`,
			int64(sw.ChainID),
			sw.PoolAddress,
			sw.PoolKind,
			int64(sw.SwapID),
			sw.Swapper,
			sw.QuoteAmount,
			sw.BaseAmount,
			sw.Collateral,
			int64(sw.Expiry),
			sw.Taken,
			sw.Settled,
			sw.Claimed,
			sw.Cancelled,
			sw.Status,
			sw.ObservedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range swaps {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// PutFetchErrors appends failed-read records. Plain inserts: the same id may
// fail on several cycles and every occurrence is worth keeping.
func (s *Store) PutFetchErrors(ctx context.Context, errs []model.FetchError) error {
	if len(errs) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range errs {
		batch.Queue(`
			INSERT INTO fetch_errors (chain_id, pool_address, swap_id, error, observed_at, created_at)
			VALUES ($1, $2, $3, $4, $5, now())
		`,
			int64(e.ChainID),
			e.PoolAddress,
			int64(e.SwapID),
			e.Error,
			e.ObservedAt,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range errs {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// LoadCursor returns the first swap id a watcher still needs to refresh.
func (s *Store) LoadCursor(ctx context.Context, name string) (uint64, bool, error) {
	if name == "" {
		return 0, false, fmt.Errorf("cursor name required")
	}
	var next uint64
	row := s.pool.QueryRow(ctx, `SELECT next_swap_id FROM watch_cursor WHERE name=$1`, name)
	if err := row.Scan(&next); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return next, true, nil
}

// SaveCursor upserts the resume point for a named watcher.
func (s *Store) SaveCursor(ctx context.Context, name string, nextSwapID uint64) error {
	if name == "" {
		return fmt.Errorf("cursor name required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO watch_cursor (name, next_swap_id, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET next_swap_id = EXCLUDED.next_swap_id, updated_at = now()
	`, name, nextSwapID)
	return err
}
