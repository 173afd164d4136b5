package watch

import (
	"path/filepath"
	"testing"
)

func TestCursorRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "cursor.json")
	store := NewCursorStore(path, true)

	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("load before save: ok=%v err=%v", ok, err)
	}

	if err := store.Save(17); err != nil {
		t.Fatalf("save: %v", err)
	}

	cur, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok || cur.NextSwapID != 17 {
		t.Fatalf("load = %+v ok=%v, want next 17", cur, ok)
	}
	if cur.UpdatedAt == "" {
		t.Error("updated_at not recorded")
	}
}

func TestCursorDisabled(t *testing.T) {
	store := NewCursorStore(filepath.Join(t.TempDir(), "cursor.json"), false)

	if err := store.Save(5); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("disabled store must stay empty: ok=%v err=%v", ok, err)
	}
}
