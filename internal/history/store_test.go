package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func createTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestNewStore_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.db")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	defer store.Close()

	if store.db == nil {
		t.Error("db should not be nil")
	}
}

func TestStore_Add(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	entry := &Entry{
		Engine:       "whisper-cli",
		Language:     "ru",
		DurationSecs: 3.5,
		Text:         "привет мир",
		Confidence:   0.9,
		Calibrated:   true,
	}

	if err := store.Add(ctx, entry); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if entry.ID == "" {
		t.Error("Add() did not assign an ID")
	}
	if entry.CreatedAt.IsZero() {
		t.Error("Add() did not assign a timestamp")
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestStore_AddRejectsEmptyText(t *testing.T) {
	store := createTestStore(t)

	if err := store.Add(context.Background(), &Entry{}); err == nil {
		t.Error("Add() with empty text: expected error")
	}
}

func TestStore_Recent(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	texts := []string{"первая", "вторая", "третья"}
	for i, text := range texts {
		entry := &Entry{
			Text:      text,
			Engine:    "mock",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := store.Add(ctx, entry); err != nil {
			t.Fatalf("Add(%q) error = %v", text, err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Text != "третья" {
		t.Errorf("entries[0].Text = %q, want %q", entries[0].Text, "третья")
	}
	if entries[1].Text != "вторая" {
		t.Errorf("entries[1].Text = %q, want %q", entries[1].Text, "вторая")
	}
}

func TestStore_RecentDefaultLimit(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	entry := &Entry{Text: "запись"}
	if err := store.Add(ctx, entry); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	entries, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}

func TestStore_RoundTrip(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)
	entry := &Entry{
		ID:           "11111111-2222-3333-4444-555555555555",
		CreatedAt:    created,
		Engine:       "server",
		Language:     "ru",
		DurationSecs: 12.25,
		Text:         "сегодня отличная погода",
		Confidence:   0.87,
		Calibrated:   true,
	}
	if err := store.Add(ctx, entry); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	entries, err := store.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}

	got := entries[0]
	if got.ID != entry.ID {
		t.Errorf("ID = %q, want %q", got.ID, entry.ID)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
	if got.Engine != "server" {
		t.Errorf("Engine = %q, want %q", got.Engine, "server")
	}
	if got.Language != "ru" {
		t.Errorf("Language = %q, want %q", got.Language, "ru")
	}
	if got.DurationSecs != 12.25 {
		t.Errorf("DurationSecs = %v, want 12.25", got.DurationSecs)
	}
	if got.Text != entry.Text {
		t.Errorf("Text = %q, want %q", got.Text, entry.Text)
	}
	if got.Confidence != 0.87 {
		t.Errorf("Confidence = %v, want 0.87", got.Confidence)
	}
	if !got.Calibrated {
		t.Error("Calibrated = false, want true")
	}
}
