package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/quaketrack/rbfetch/internal/domain"
)

// SaveWindow records one archived window. A retried window for the same
// stream and start replaces the earlier row, mirroring how the retried file
// write overwrites the same filename.
func (s *ArchiveStore) SaveWindow(rec *domain.ArchivedWindow) error {
	query := `INSERT OR REPLACE INTO archived_windows (run_id, stream, window_start, window_end, path, bytes, recorded_at)
              VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.Exec(query,
		rec.RunID,
		rec.Stream,
		rec.Window.Start.UTC().Format(time.RFC3339),
		rec.Window.End.UTC().Format(time.RFC3339),
		rec.Path,
		rec.Bytes,
		rec.RecordedAt.UTC().Format(time.RFC3339),
	)
	return err
}

// RecentWindows returns the most recently started windows, newest first.
func (s *ArchiveStore) RecentWindows(limit int) ([]*domain.ArchivedWindow, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, run_id, stream, window_start, window_end, path, bytes, recorded_at
              FROM archived_windows
              ORDER BY window_start DESC LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*domain.ArchivedWindow
	for rows.Next() {
		rec, err := scanWindow(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// LastWindow returns the latest archived window, or nil if the index is empty.
func (s *ArchiveStore) LastWindow() (*domain.ArchivedWindow, error) {
	query := `SELECT id, run_id, stream, window_start, window_end, path, bytes, recorded_at
              FROM archived_windows
              ORDER BY window_start DESC LIMIT 1`

	rec, err := scanWindow(s.db.QueryRow(query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

// CountWindows reports how many windows the index holds.
func (s *ArchiveStore) CountWindows() (int64, error) {
	var n int64
	err := s.db.QueryRow(`SELECT COUNT(*) FROM archived_windows`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWindow(row rowScanner) (*domain.ArchivedWindow, error) {
	rec := &domain.ArchivedWindow{}
	var startStr, endStr, recordedStr string

	if err := row.Scan(&rec.ID, &rec.RunID, &rec.Stream, &startStr, &endStr, &rec.Path, &rec.Bytes, &recordedStr); err != nil {
		return nil, err
	}

	var err error
	if rec.Window.Start, err = time.Parse(time.RFC3339, startStr); err != nil {
		return nil, fmt.Errorf("bad window_start %q: %w", startStr, err)
	}
	if rec.Window.End, err = time.Parse(time.RFC3339, endStr); err != nil {
		return nil, fmt.Errorf("bad window_end %q: %w", endStr, err)
	}
	if rec.RecordedAt, err = time.Parse(time.RFC3339, recordedStr); err != nil {
		return nil, fmt.Errorf("bad recorded_at %q: %w", recordedStr, err)
	}
	return rec, nil
}
