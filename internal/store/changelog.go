package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Changelog operations.
const (
	OpChange = "change"
	OpDelete = "delete"
)

// Changelog is the append-only audit log for document writes. A context
// (source file and file date) is set once per ingested file and stamped on
// every entry recorded while that file is processed.
type Changelog struct {
	store      *Store
	sourceFile string
	fileDate   time.Time
}

// NewChangelog creates a changelog writer backed by the given store.
func NewChangelog(s *Store) *Changelog {
	return &Changelog{store: s}
}

// SetContext sets the source file and effective date stamped on subsequent
// entries. Called once per ingested file before any blocks are applied.
func (c *Changelog) SetContext(sourceFile string, fileDate time.Time) {
	c.sourceFile = sourceFile
	c.fileDate = fileDate
}

// Record appends a change entry for the document stored under key.
func (c *Changelog) Record(ctx context.Context, key string) error {
	return c.append(ctx, key, OpChange)
}

// Delete appends a deletion entry for the document stored under key.
// Used for unpublish transitions on previously-known bills.
func (c *Changelog) Delete(ctx context.Context, key string) error {
	return c.append(ctx, key, OpDelete)
}

func (c *Changelog) append(ctx context.Context, key, op string) error {
	// UUIDv7 ids sort by creation time, which keeps the log readable
	// without a separate sequence column.
	id := uuid.Must(uuid.NewV7()).String()
	_, err := c.store.db.ExecContext(ctx, `
		INSERT INTO changelog (id, key, op, source_file, file_date, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		id,
		key,
		op,
		c.sourceFile,
		c.fileDate.UTC().Format(time.RFC3339Nano),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("changelog %s %s: %w", op, key, err)
	}
	return nil
}

// Entry is one changelog row.
type Entry struct {
	ID         string
	Key        string
	Op         string
	SourceFile string
	FileDate   time.Time
	RecordedAt time.Time
}

// ChangelogEntries returns the most recent changelog entries, newest first.
// A limit <= 0 returns everything.
func (s *Store) ChangelogEntries(ctx context.Context, limit int) ([]Entry, error) {
	q := `
		SELECT id, key, op, source_file, file_date, recorded_at
		FROM changelog
		ORDER BY id DESC
	`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("changelog entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var fileDate, recordedAt string
		if err := rows.Scan(&e.ID, &e.Key, &e.Op, &e.SourceFile, &fileDate, &recordedAt); err != nil {
			return nil, fmt.Errorf("changelog entries: %w", err)
		}
		if e.FileDate, err = time.Parse(time.RFC3339Nano, fileDate); err != nil {
			return nil, fmt.Errorf("changelog entries: bad file_date %q: %w", fileDate, err)
		}
		if e.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("changelog entries: bad recorded_at %q: %w", recordedAt, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("changelog entries: %w", err)
	}
	return entries, nil
}
