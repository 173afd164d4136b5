package storage

import (
	"context"

	"deferswap/internal/model"
)

// Storage defines a sink for watch snapshots.
type Storage interface {
	PutPoolSnapshots(ctx context.Context, pools []model.PoolSnapshot) error
	PutSwapSnapshots(ctx context.Context, swaps []model.SwapSnapshot) error
	PutFetchErrors(ctx context.Context, errs []model.FetchError) error
}

// Tee fans snapshots out to several sinks. The first failure wins.
type Tee []Storage

func (t Tee) PutPoolSnapshots(ctx context.Context, pools []model.PoolSnapshot) error {
	for _, sink := range t {
		if err := sink.PutPoolSnapshots(ctx, pools); err != nil {
			return err
		}
	}
	return nil
}

func (t Tee) PutSwapSnapshots(ctx context.Context, swaps []model.SwapSnapshot) error {
	for _, sink := range t {
		if err := sink.PutSwapSnapshots(ctx, swaps); err != nil {
			return err
		}
	}
	return nil
}

func (t Tee) PutFetchErrors(ctx context.Context, errs []model.FetchError) error {
	for _, sink := range t {
		if err := sink.PutFetchErrors(ctx, errs); err != nil {
			return err
		}
	}
	return nil
}
