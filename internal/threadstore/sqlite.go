package threadstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	_ "modernc.org/sqlite"
)

// SQLiteThreadStore is the default single-file Store backend: one row per
// thread, keyed by thread id, with the full ThreadData JSON-encoded into a
// single column. Connection setup follows the teacher's WAL-mode pattern:
// a single writer connection, WAL journaling so readers don't block the
// writer, and a busy timeout instead of failing fast on lock contention.
type SQLiteThreadStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteThreadStore opens (creating if necessary) the SQLite database
// at path and ensures its schema exists.
func NewSQLiteThreadStore(path string) (*SQLiteThreadStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "threadstore: open sqlite")
	}

	// A single writer connection avoids SQLITE_BUSY under WAL; readers of
	// this same *sql.DB still see consistent snapshots.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "threadstore: apply %q", pragma)
		}
	}

	store := &SQLiteThreadStore{db: db, now: time.Now}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteThreadStore) createSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS threads (
	thread_id    TEXT PRIMARY KEY,
	data         BLOB NOT NULL,
	last_updated TIMESTAMP NOT NULL
);`
	_, err := s.db.Exec(ddl)
	if err != nil {
		return errors.Wrap(err, "threadstore: create schema")
	}
	return nil
}

// Close releases the underlying database connection.
func (s *SQLiteThreadStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteThreadStore) Load(ctx context.Context, threadID string) (ThreadData, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM threads WHERE thread_id = ?`, threadID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ThreadData{}, ErrNotFound
	}
	if err != nil {
		return ThreadData{}, errors.Wrap(err, "threadstore: load")
	}
	return decodeThread(raw)
}

func (s *SQLiteThreadStore) Save(ctx context.Context, thread ThreadData) error {
	raw, err := encodeThread(thread)
	if err != nil {
		return err
	}

	const upsert = `
INSERT INTO threads (thread_id, data, last_updated) VALUES (?, ?, ?)
ON CONFLICT(thread_id) DO UPDATE SET data = excluded.data, last_updated = excluded.last_updated;`
	if _, err := s.db.ExecContext(ctx, upsert, thread.ThreadID, raw, thread.LastUpdated); err != nil {
		return errors.Wrap(err, "threadstore: save")
	}
	return nil
}

func (s *SQLiteThreadStore) Append(ctx context.Context, threadID string, entry EmailEntry) (ThreadData, error) {
	thread, err := s.Load(ctx, threadID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return ThreadData{}, err
	}
	if errors.Is(err, ErrNotFound) {
		thread = newThread(threadID)
	}

	thread.Emails = append(thread.Emails, entry)
	thread.TotalEmails = len(thread.Emails)
	thread.LastUpdated = s.now()
	thread.ConversationState = NextConversationState(thread.ConversationState, entry.Direction, entry.ResponseType)

	if err := s.Save(ctx, thread); err != nil {
		return ThreadData{}, err
	}
	return thread, nil
}

func (s *SQLiteThreadStore) UpdateCumulative(ctx context.Context, threadID string, newExtraction Extraction) bool {
	thread, err := s.Load(ctx, threadID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return false
	}
	if errors.Is(err, ErrNotFound) {
		thread = newThread(threadID)
	}

	thread.CumulativeExtraction = Merge(newExtraction, thread.CumulativeExtraction)
	thread.LastUpdated = s.now()

	return s.Save(ctx, thread) == nil
}
