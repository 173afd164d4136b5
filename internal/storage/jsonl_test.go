package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"deferswap/internal/model"
)

func TestJsonlStorageAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "snapshots.jsonl")
	sink := NewJsonlStorage(path)
	ctx := context.Background()

	pools := []model.PoolSnapshot{{
		ChainID:     56,
		Kind:        "spread",
		Address:     "0x2576cd8a53411c5dbB5B5Df4390A3b318Cca2323",
		SwapCounter: 4,
	}}
	if err := sink.PutPoolSnapshots(ctx, pools); err != nil {
		t.Fatalf("put pools: %v", err)
	}

	swaps := []model.SwapSnapshot{
		{ChainID: 56, SwapID: 2, QuoteAmount: "1000000000000000000", Status: "open"},
		{ChainID: 56, SwapID: 3, QuoteAmount: "5", Status: "taken", Taken: true},
	}
	if err := sink.PutSwapSnapshots(ctx, swaps); err != nil {
		t.Fatalf("put swaps: %v", err)
	}

	// Empty batches must not touch the file.
	if err := sink.PutSwapSnapshots(ctx, nil); err != nil {
		t.Fatalf("put empty: %v", err)
	}

	errs := []model.FetchError{{ChainID: 56, SwapID: 9, Error: "call swaps: timeout"}}
	if err := sink.PutFetchErrors(ctx, errs); err != nil {
		t.Fatalf("put fetch errors: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want 4", len(lines))
	}

	var pool model.PoolSnapshot
	if err := json.Unmarshal([]byte(lines[0]), &pool); err != nil {
		t.Fatalf("unmarshal pool line: %v", err)
	}
	if pool.SwapCounter != 4 || pool.Kind != "spread" {
		t.Errorf("pool line = %+v", pool)
	}

	var last model.SwapSnapshot
	if err := json.Unmarshal([]byte(lines[2]), &last); err != nil {
		t.Fatalf("unmarshal swap line: %v", err)
	}
	if last.SwapID != 3 || !last.Taken || last.QuoteAmount != "5" {
		t.Errorf("swap line = %+v", last)
	}

	var fetchErr model.FetchError
	if err := json.Unmarshal([]byte(lines[3]), &fetchErr); err != nil {
		t.Fatalf("unmarshal error line: %v", err)
	}
	if fetchErr.SwapID != 9 || fetchErr.Error == "" {
		t.Errorf("error line = %+v", fetchErr)
	}
}
