package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestUpdate_CreatesFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	entry := Entry{Date: "2026-08-26", K22: 9850, K21: 9400, K18: 8050, Traditional: 6650}
	if err := store.Update("gold", entry); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	for _, name := range []string{"gold_history.csv", "gold_history.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}

	entries, err := store.Load("gold")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 1 || entries[0] != entry {
		t.Errorf("Load() = %v, want [%v]", entries, entry)
	}
}

func TestUpdate_SameDateReplaces(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	if err := store.Update("gold", Entry{Date: "2026-08-26", K22: 100}); err != nil {
		t.Fatalf("Update() first error = %v", err)
	}
	if err := store.Update("gold", Entry{Date: "2026-08-26", K22: 200}); err != nil {
		t.Fatalf("Update() second error = %v", err)
	}

	entries, err := store.Load("gold")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1 (same date replaced, not appended)", len(entries))
	}
	if entries[0].K22 != 200 {
		t.Errorf("K22 = %d, want 200", entries[0].K22)
	}
}

func TestUpdate_KeepsDateOrder(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	for _, date := range []string{"2026-08-26", "2026-08-24", "2026-08-25"} {
		if err := store.Update("silver", Entry{Date: date}); err != nil {
			t.Fatalf("Update(%s) error = %v", date, err)
		}
	}

	entries, err := store.Load("silver")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"2026-08-24", "2026-08-25", "2026-08-26"}
	if len(entries) != len(want) {
		t.Fatalf("entries = %d, want %d", len(entries), len(want))
	}
	for i, date := range want {
		if entries[i].Date != date {
			t.Errorf("entries[%d].Date = %s, want %s", i, entries[i].Date, date)
		}
	}
}

func TestUpdate_JSONMatchesCSV(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	entry := Entry{Date: "2026-08-26", K22: 9850, K18: 8050}
	if err := store.Update("gold", entry); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "gold_history.json"))
	if err != nil {
		t.Fatalf("read JSON history: %v", err)
	}

	var fromJSON []Entry
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("parse JSON history: %v", err)
	}

	fromCSV, err := store.Load("gold")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(fromJSON) != len(fromCSV) {
		t.Fatalf("JSON has %d entries, CSV has %d", len(fromJSON), len(fromCSV))
	}
	for i := range fromJSON {
		if fromJSON[i] != fromCSV[i] {
			t.Errorf("entry %d differs: JSON %v, CSV %v", i, fromJSON[i], fromCSV[i])
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	entries, err := store.Load("gold")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing history", err)
	}
	if len(entries) != 0 {
		t.Errorf("Load() = %v, want empty", entries)
	}
}
