package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"deferswap/internal/model"
)

// JsonlStorage appends snapshots to a JSONL file.
type JsonlStorage struct {
	path string
	mu   sync.Mutex
}

func NewJsonlStorage(path string) *JsonlStorage {
	return &JsonlStorage{path: path}
}

// PutPoolSnapshots appends pool snapshots as JSON lines.
func (s *JsonlStorage) PutPoolSnapshots(_ context.Context, pools []model.PoolSnapshot) error {
	if len(pools) == 0 {
		return nil
	}
	records := make([]any, len(pools))
	for i, p := range pools {
		records[i] = p
	}
	return s.append(records)
}

// PutSwapSnapshots appends swap snapshots as JSON lines.
func (s *JsonlStorage) PutSwapSnapshots(_ context.Context, swaps []model.SwapSnapshot) error {
	if len(swaps) == 0 {
		return nil
	}
	records := make([]any, len(swaps))
	for i, sw := range swaps {
		records[i] = sw
	}
	return s.append(records)
}

// PutFetchErrors appends failed-read records as JSON lines.
func (s *JsonlStorage) PutFetchErrors(_ context.Context, errs []model.FetchError) error {
	if len(errs) == 0 {
		return nil
	}
	records := make([]any, len(errs))
	for i, e := range errs {
		records[i] = e
	}
	return s.append(records)
}

func (s *JsonlStorage) append(records []any) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal snapshot: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
