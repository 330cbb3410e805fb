package ledger

import (
	"path/filepath"
	"testing"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "genguard.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestRecordAndRecent(t *testing.T) {
	l := openTestLedger(t)

	writes := []struct {
		path   string
		hash   string
		bytes  int64
		action string
	}{
		{"output/a.py", "aaa", 10, "created"},
		{"output/b.py", "bbb", 20, "created"},
		{"output/a.py", "ccc", 15, "updated"},
	}

	for _, w := range writes {
		if err := l.Record(w.path, w.hash, w.bytes, w.action); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	// Newest first
	if entries[0].Hash != "ccc" {
		t.Errorf("Expected newest entry first, got hash %s", entries[0].Hash)
	}
	if entries[0].Action != "updated" {
		t.Errorf("Expected action 'updated', got %s", entries[0].Action)
	}
}

func TestRecentLimit(t *testing.T) {
	l := openTestLedger(t)

	for i := 0; i < 5; i++ {
		if err := l.Record("output/x.py", "h", 1, "created"); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	entries, err := l.Recent(2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected limit to cap entries at 2, got %d", len(entries))
	}
}

func TestHistoryFiltersByPath(t *testing.T) {
	l := openTestLedger(t)

	l.Record("output/a.py", "a1", 1, "created")
	l.Record("output/b.py", "b1", 1, "created")
	l.Record("output/a.py", "a2", 2, "updated")

	entries, err := l.History("output/a.py", 10)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries for path, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Path != "output/a.py" {
			t.Errorf("Unexpected path in history: %s", e.Path)
		}
	}
}

func TestRecentEmpty(t *testing.T) {
	l := openTestLedger(t)

	entries, err := l.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}
