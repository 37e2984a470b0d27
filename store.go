package folio

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// PreferenceStore keeps per-visitor preferences in SQLite. Visitors are
// anonymous ids; nothing else about them is stored.
type PreferenceStore struct {
	db *sql.DB
}

// NewPreferenceStore opens (or creates) the SQLite database at path,
// ensures the data directory exists, and creates the schema.
func NewPreferenceStore(path string) (*PreferenceStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets page renders read while a toggle writes; writers wait on the
	// busy timeout instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &PreferenceStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *PreferenceStore) Close() error {
	return s.db.Close()
}

func (s *PreferenceStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS preferences (
    visitor TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    PRIMARY KEY (visitor, key)
);
CREATE INDEX IF NOT EXISTS idx_preferences_updated_at ON preferences(updated_at);
`)
	return err
}

// Get returns the stored value, or "" when the visitor has none.
func (s *PreferenceStore) Get(ctx context.Context, visitor, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE visitor = ? AND key = ?`, visitor, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// Set upserts a value and refreshes its timestamp.
func (s *PreferenceStore) Set(ctx context.Context, visitor, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO preferences (visitor, key, value, updated_at) VALUES (?, ?, ?, ?)
ON CONFLICT(visitor, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		visitor, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Count returns the number of stored values.
func (s *PreferenceStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM preferences`).Scan(&n)
	return n, err
}

// PruneBefore deletes values last written before cutoff and returns how many
// were removed.
func (s *PreferenceStore) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE updated_at < ?`, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// StartCleanupScheduler prunes values older than retention every interval.
// Returns a stop function.
func (s *PreferenceStore) StartCleanupScheduler(retention, interval time.Duration, log zerolog.Logger) func() {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				n, err := s.PruneBefore(context.Background(), time.Now().Add(-retention))
				if err != nil {
					log.Error().Err(err).Msg("preference cleanup failed")
					continue
				}
				if n > 0 {
					log.Info().Int64("removed", n).Msg("pruned stale preferences")
				}
			case <-done:
				ticker.Stop()
				return
			}
		}
	}()

	return func() { close(done) }
}
