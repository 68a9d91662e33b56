package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Entry is one catalog row: a project file the editor knows about.
type Entry struct {
	ID          uuid.UUID
	Name        string
	Path        string
	Fingerprint string
	Revision    int64
	LastOpened  time.Time
}

// Touch records that a project file was opened or saved, inserting or
// updating its catalog row. The path is the conflict key: re-saving a
// project under the same path updates the row in place.
func (s *Store) Touch(ctx context.Context, e Entry) error {
	if e.Path == "" {
		return fmt.Errorf("touch project: path is required")
	}
	lastOpened := e.LastOpened
	if lastOpened.IsZero() {
		lastOpened = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, path, fingerprint, revision, last_opened)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			id = excluded.id,
			name = excluded.name,
			fingerprint = excluded.fingerprint,
			revision = excluded.revision,
			last_opened = excluded.last_opened
	`, e.ID.String(), e.Name, e.Path, e.Fingerprint, e.Revision,
		lastOpened.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("touch project %s: %w", e.Path, err)
	}
	return nil
}

// Lookup returns the catalog entry for a project file path, or
// (nil, nil) when the path is unknown.
func (s *Store) Lookup(ctx context.Context, path string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, path, fingerprint, revision, last_opened
		FROM projects WHERE path = ?
	`, path)

	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup project %s: %w", path, err)
	}
	return e, nil
}

// Recent returns catalog entries ordered most recently opened first,
// at most limit rows.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, path, fingerprint, revision, last_opened
		FROM projects ORDER BY last_opened DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent projects: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recent projects: %w", err)
	}
	return entries, nil
}

// Remove drops a project file from the catalog. Removing an unknown
// path is a no-op; the underlying file is never touched.
func (s *Store) Remove(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM projects WHERE path = ?`, path); err != nil {
		return fmt.Errorf("remove project %s: %w", path, err)
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (*Entry, error) {
	var (
		e          Entry
		id         string
		lastOpened string
	)
	if err := sc.Scan(&id, &e.Name, &e.Path, &e.Fingerprint, &e.Revision, &lastOpened); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("corrupt project id %q: %w", id, err)
	}
	e.ID = parsed

	t, err := time.Parse(time.RFC3339Nano, lastOpened)
	if err != nil {
		return nil, fmt.Errorf("corrupt last_opened %q: %w", lastOpened, err)
	}
	e.LastOpened = t

	return &e, nil
}
