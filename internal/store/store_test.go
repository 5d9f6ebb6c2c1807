package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/valpere/tlpad/internal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New(t *testing.T) {
	s := newTestStore(t)

	if s == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestStore_New_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()
}

func TestStore_RecordAndLatest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := internal.HistoryEntry{
		SourceText:     "Hello",
		SourceLang:     "en",
		TargetLang:     "es",
		TranslatedText: "Hola",
		ServiceName:    "mymemory",
		Timestamp:      time.Now().Add(-time.Hour),
	}
	newer := older
	newer.TranslatedText = "¡Hola!"
	newer.Timestamp = time.Now()

	if err := s.Record(ctx, older); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := s.Record(ctx, newer); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	// Surrounding whitespace is normalised away on both sides.
	got, found, err := s.Latest(ctx, "  Hello\n", "en", "es")
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if !found {
		t.Fatal("expected entry to be found")
	}
	if got.TranslatedText != "¡Hola!" {
		t.Errorf("expected newest translation, got %q", got.TranslatedText)
	}
	if got.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestStore_Latest_Miss(t *testing.T) {
	s := newTestStore(t)

	_, found, err := s.Latest(context.Background(), "nothing here", "en", "uk")
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if found {
		t.Error("expected miss")
	}
}

func TestStore_Latest_NFC(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// "café" with a combining acute accent (NFD).
	if err := s.Record(ctx, internal.HistoryEntry{
		SourceText: "cafe\u0301", SourceLang: "fr", TargetLang: "en",
		TranslatedText: "coffee", ServiceName: "mymemory",
	}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	_, found, err := s.Latest(ctx, "caf\u00e9", "fr", "en")
	if err != nil {
		t.Fatalf("Latest failed: %v", err)
	}
	if !found {
		t.Error("expected NFC-normalised lookup to match")
	}
}

func TestStore_ListStatsDeleteClear(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entries := []internal.HistoryEntry{
		{SourceText: "one", SourceLang: "en", TargetLang: "es", TranslatedText: "uno", ServiceName: "mymemory", Timestamp: time.Now().Add(-3 * time.Minute)},
		{SourceText: "two", SourceLang: "en", TargetLang: "es", TranslatedText: "dos", ServiceName: "mymemory", Timestamp: time.Now().Add(-2 * time.Minute)},
		{SourceText: "three", SourceLang: "en", TargetLang: "uk", TranslatedText: "три", ServiceName: "google", Timestamp: time.Now().Add(-time.Minute)},
	}
	for _, e := range entries {
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].SourceText != "three" {
		t.Errorf("expected newest first, got %q", all[0].SourceText)
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 entries, got %d", len(limited))
	}

	stats, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.TotalEntries != 3 || stats.LanguagePairs != 2 || stats.Services != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}

	if err := s.Delete(ctx, all[0].ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	remaining, _ := s.List(ctx, 0)
	if len(remaining) != 2 {
		t.Errorf("expected 2 entries after delete, got %d", len(remaining))
	}

	n, err := s.Clear(ctx)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 cleared, got %d", n)
	}
}
