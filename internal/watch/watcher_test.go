package watch

import (
	"context"
	"fmt"
	"math/big"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deferswap/internal/deferswap"
	"deferswap/internal/model"
	"deferswap/internal/swap"
)

type fakePool struct {
	records []swap.SpreadRecord
	failIDs map[uint64]bool
}

func (p *fakePool) Kind() deferswap.Kind   { return deferswap.KindSpread }
func (p *fakePool) Addr() common.Address   { return common.HexToAddress("0x01") }
func (p *fakePool) Maker(context.Context) (common.Address, error) {
	return common.HexToAddress("0x02"), nil
}

func (p *fakePool) TokenPair(context.Context) (common.Address, common.Address, error) {
	return common.HexToAddress("0x03"), common.HexToAddress("0x04"), nil
}

func (p *fakePool) OrderCount(context.Context) (uint64, error) {
	return uint64(len(p.records)), nil
}

func (p *fakePool) LatestOrder(ctx context.Context) (deferswap.Order, bool, error) {
	if len(p.records) == 0 {
		return deferswap.Order{}, false, nil
	}
	order, err := p.Order(ctx, uint64(len(p.records)-1))
	return order, err == nil, err
}

func (p *fakePool) Order(_ context.Context, id uint64) (deferswap.Order, error) {
	if p.failIDs[id] {
		return deferswap.Order{}, fmt.Errorf("record %d unavailable", id)
	}
	if id >= uint64(len(p.records)) {
		return deferswap.Order{}, fmt.Errorf("no record %d", id)
	}
	return deferswap.SpreadOrder(p.records[id]), nil
}

type memorySink struct {
	mu        sync.Mutex
	pools     []model.PoolSnapshot
	swaps     []model.SwapSnapshot
	fetchErrs []model.FetchError
}

func (m *memorySink) PutPoolSnapshots(_ context.Context, pools []model.PoolSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pools = append(m.pools, pools...)
	return nil
}

func (m *memorySink) PutSwapSnapshots(_ context.Context, swaps []model.SwapSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.swaps = append(m.swaps, swaps...)
	return nil
}

func (m *memorySink) PutFetchErrors(_ context.Context, errs []model.FetchError) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchErrs = append(m.fetchErrs, errs...)
	return nil
}

func spreadRecord(id uint64, flags swap.Flags) swap.SpreadRecord {
	return swap.SpreadRecord{
		ID:           id,
		QuoteAmount:  big.NewInt(100),
		BaseAmount:   big.NewInt(50),
		MaxQuoteSize: big.NewInt(200),
		Collateral:   big.NewInt(10),
		Flags:        flags,
	}
}

func newTestWatcher(t *testing.T, pool *fakePool, sink *memorySink) *Watcher {
	t.Helper()
	return NewWatcher(Config{
		ChainID:       56,
		PollInterval:  time.Minute,
		Concurrency:   2,
		CursorPath:    filepath.Join(t.TempDir(), "cursor.json"),
		CursorEnabled: true,
		Once:          true,
	}, pool, sink, nil, nil, nil)
}

func TestWatcherRecordsAllSwaps(t *testing.T) {
	pool := &fakePool{records: []swap.SpreadRecord{
		spreadRecord(0, swap.Flags{Taken: true, Settled: true, Claimed: true}),
		spreadRecord(1, swap.Flags{Cancelled: true}),
		spreadRecord(2, swap.Flags{Taken: true}),
	}}
	sink := &memorySink{}

	w := newTestWatcher(t, pool, sink)
	require.NoError(t, w.Run(context.Background()))

	require.Len(t, sink.pools, 1)
	assert.Equal(t, uint64(3), sink.pools[0].SwapCounter)
	assert.Equal(t, "spread", sink.pools[0].Kind)

	require.Len(t, sink.swaps, 3)
	assert.Equal(t, "Claimed", sink.swaps[0].Status)
	assert.Equal(t, "Cancelled", sink.swaps[1].Status)
	assert.Equal(t, "Taken", sink.swaps[2].Status)
	assert.Equal(t, "100", sink.swaps[2].QuoteAmount)
}

func TestWatcherCursorStopsAtFirstOpenRecord(t *testing.T) {
	pool := &fakePool{records: []swap.SpreadRecord{
		spreadRecord(0, swap.Flags{Cancelled: true}),
		spreadRecord(1, swap.Flags{}), // still open
		spreadRecord(2, swap.Flags{Taken: true, Settled: true, Claimed: true}),
	}}
	sink := &memorySink{}

	w := newTestWatcher(t, pool, sink)
	require.NoError(t, w.Run(context.Background()))

	cur, ok, err := w.cursor.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(1), cur.NextSwapID, "cursor must not jump over a live record")
}

func TestWatcherIsolatesFailedFetch(t *testing.T) {
	pool := &fakePool{
		records: []swap.SpreadRecord{
			spreadRecord(0, swap.Flags{Cancelled: true}),
			spreadRecord(1, swap.Flags{Cancelled: true}),
			spreadRecord(2, swap.Flags{Cancelled: true}),
		},
		failIDs: map[uint64]bool{1: true},
	}
	sink := &memorySink{}

	w := newTestWatcher(t, pool, sink)
	require.NoError(t, w.Run(context.Background()))

	require.Len(t, sink.swaps, 2, "the failed id is skipped, the rest of the batch lands")
	require.Len(t, sink.fetchErrs, 1)
	assert.Equal(t, uint64(1), sink.fetchErrs[0].SwapID)

	// The cursor advances past id 0 but stops at the gap so id 1 is retried.
	cur, ok, err := w.cursor.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(1), cur.NextSwapID)
}
