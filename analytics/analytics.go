// Package analytics records privacy-light page-view counts in a dedicated
// SQLite database: daily per-path view totals plus distinct session counts.
// No IPs or user agents are stored; sessions are random cookie IDs.
package analytics

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// PathCount is a per-path view total over a query window.
type PathCount struct {
	Path  string
	Views int
}

// DayCount is a per-day total of views and distinct sessions.
type DayCount struct {
	Day      string // YYYY-MM-DD
	Views    int
	Sessions int
}

// Store wraps the analytics SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the analytics database at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(2)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pageviews (
    day TEXT NOT NULL,
    path TEXT NOT NULL,
    views INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (day, path)
);
CREATE TABLE IF NOT EXISTS sessions (
    day TEXT NOT NULL,
    session TEXT NOT NULL,
    PRIMARY KEY (day, session)
);
`)
	return err
}

// Record counts one view of path attributed to session on day.
func (s *Store) Record(day, path, session string) error {
	if _, err := s.db.Exec(`INSERT INTO pageviews (day, path, views) VALUES (?, ?, 1)
		ON CONFLICT(day, path) DO UPDATE SET views = views + 1`, day, path); err != nil {
		return err
	}
	_, err := s.db.Exec(`INSERT OR IGNORE INTO sessions (day, session) VALUES (?, ?)`, day, session)
	return err
}

// TopPaths returns the most viewed paths over the last days, highest first.
func (s *Store) TopPaths(days, limit int) ([]PathCount, error) {
	since := cutoffDay(days)
	rows, err := s.db.Query(`SELECT path, SUM(views) FROM pageviews WHERE day >= ? GROUP BY path ORDER BY SUM(views) DESC, path LIMIT ?`, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PathCount
	for rows.Next() {
		var pc PathCount
		if err := rows.Scan(&pc.Path, &pc.Views); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

// DailyTotals returns per-day view and session totals over the last days,
// newest first.
func (s *Store) DailyTotals(days int) ([]DayCount, error) {
	since := cutoffDay(days)
	rows, err := s.db.Query(`
		SELECT p.day, SUM(p.views),
		       (SELECT COUNT(*) FROM sessions v WHERE v.day = p.day)
		FROM pageviews p WHERE p.day >= ? GROUP BY p.day ORDER BY p.day DESC`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DayCount
	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Views, &dc.Sessions); err != nil {
			return nil, err
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

// Cleanup removes data older than retainDays.
func (s *Store) Cleanup(retainDays int) error {
	since := cutoffDay(retainDays)
	if _, err := s.db.Exec(`DELETE FROM pageviews WHERE day < ?`, since); err != nil {
		return err
	}
	_, err := s.db.Exec(`DELETE FROM sessions WHERE day < ?`, since)
	return err
}

// StartCleanupScheduler runs Cleanup every interval until the returned stop
// function is called.
func (s *Store) StartCleanupScheduler(retainDays int, interval time.Duration) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = s.Cleanup(retainDays)
			case <-done:
				return
			}
		}
	}()
	return func() { close(done) }
}

func cutoffDay(days int) string {
	return time.Now().UTC().AddDate(0, 0, -days).Format("2006-01-02")
}
