package persist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/TolgaCulfa/sunum2/internal/deck"
)

// Store persists presentations and daily usage counters using SQLite
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore creates a new SQLite-backed store at the given path
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &Store{db: db}

	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return s, nil
}

// init creates the necessary tables if they don't exist
func (s *Store) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS presentations (
			id          TEXT PRIMARY KEY,
			owner       TEXT NOT NULL,
			title       TEXT NOT NULL,
			data        TEXT NOT NULL,
			theme       TEXT NOT NULL DEFAULT 'crystal',
			created_at  TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS usage_stats (
			owner       TEXT NOT NULL,
			date        TEXT NOT NULL,
			count       INTEGER NOT NULL DEFAULT 0,
			updated_at  TEXT NOT NULL,
			PRIMARY KEY (owner, date)
		);

		CREATE INDEX IF NOT EXISTS idx_presentations_owner ON presentations(owner, created_at);
		CREATE INDEX IF NOT EXISTS idx_usage_date ON usage_stats(date);
	`)
	return err
}

// SavePresentation stores a generated presentation for its owner
func (s *Store) SavePresentation(p *deck.Presentation, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	if theme == "" {
		theme = "crystal"
	}

	_, err := s.db.Exec(`
		INSERT INTO presentations (id, owner, title, data, theme, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title, data=excluded.data, theme=excluded.theme
	`, p.ID, p.Owner, p.Title, toJSON(p), theme, createdAt.Format(time.RFC3339))
	return err
}

// GetPresentation loads one presentation record owned by owner
func (s *Store) GetPresentation(owner, id string) (*PresentationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, owner, title, data, theme, created_at
		FROM presentations
		WHERE owner = ? AND id = ?
	`, owner, id)

	var rec PresentationRecord
	var createdAt string
	if err := row.Scan(&rec.ID, &rec.Owner, &rec.Title, &rec.Data, &rec.Theme, &createdAt); err != nil {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		rec.CreatedAt = t
	}
	return &rec, nil
}

// ListPresentations lists the owner's presentations, newest first
func (s *Store) ListPresentations(owner string) ([]PresentationSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, title, theme, created_at
		FROM presentations
		WHERE owner = ?
		ORDER BY created_at DESC
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []PresentationSummary
	for rows.Next() {
		var sum PresentationSummary
		var createdAt string
		if err := rows.Scan(&sum.ID, &sum.Title, &sum.Theme, &createdAt); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			sum.CreatedAt = t
		}
		list = append(list, sum)
	}

	return list, rows.Err()
}

// Usage returns the committed slide count for (owner, date)
func (s *Store) Usage(owner, date string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT count FROM usage_stats WHERE owner = ? AND date = ?
	`, owner, date)

	var count int
	if err := row.Scan(&count); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return count, nil
}

// IncrementUsage adds amount to the (owner, date) counter. The counter only
// ever grows within a date key.
func (s *Store) IncrementUsage(owner, date string, amount int) error {
	if amount < 0 {
		return fmt.Errorf("usage increment must not be negative, got %d", amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().Format(time.RFC3339)
	_, err := s.db.Exec(`
		INSERT INTO usage_stats (owner, date, count, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(owner, date) DO UPDATE SET
			count = count + excluded.count, updated_at = excluded.updated_at
	`, owner, date, amount, now)
	return err
}

// PruneUsage deletes usage rows strictly older than the given date and
// returns how many were removed.
func (s *Store) PruneUsage(before string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM usage_stats WHERE date < ?`, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
