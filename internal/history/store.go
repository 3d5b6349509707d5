package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one finished dictation.
type Entry struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Engine       string    `json:"engine"`
	Language     string    `json:"language"`
	DurationSecs float64   `json:"duration_secs"`
	Text         string    `json:"text"`
	Confidence   float64   `json:"confidence"`
	Calibrated   bool      `json:"calibrated"`
}

// Store keeps dictation history in SQLite. Append-only; entries are pruned
// only by hand.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// DefaultPath returns the per-user history database location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot find user config dir: %w", err)
	}
	return filepath.Join(dir, "voice-agent", "history.db"), nil
}

// NewStore opens or creates the history database.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open database with WAL mode
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS transcriptions (
		id TEXT PRIMARY KEY,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		engine TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT '',
		duration_secs REAL DEFAULT 0,
		text TEXT NOT NULL,
		confidence REAL DEFAULT 0,
		calibrated INTEGER DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_transcriptions_created ON transcriptions(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Add appends a dictation. A missing ID or timestamp is filled in.
func (s *Store) Add(ctx context.Context, e *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.Text == "" {
		return fmt.Errorf("dictation text is required")
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transcriptions (id, created_at, engine, language, duration_secs, text, confidence, calibrated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.CreatedAt, e.Engine, e.Language, e.DurationSecs, e.Text, e.Confidence, e.Calibrated)

	if err != nil {
		return fmt.Errorf("failed to add dictation: %w", err)
	}

	return nil
}

// Recent returns the latest dictations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, engine, language, duration_secs, text, confidence, calibrated
		FROM transcriptions
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list dictations: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.Engine, &e.Language,
			&e.DurationSecs, &e.Text, &e.Confidence, &e.Calibrated); err != nil {
			return nil, fmt.Errorf("failed to scan dictation: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, nil
}

// Count returns the number of stored dictations.
func (s *Store) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transcriptions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count dictations: %w", err)
	}
	return n, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
