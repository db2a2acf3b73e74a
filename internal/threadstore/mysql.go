package threadstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	_ "github.com/go-sql-driver/mysql"
)

// MySQLThreadStore is the relational Store backend for multi-writer
// deployments: one row per thread in a shared database, with the same
// JSON-encoded ThreadData column layout as SQLiteThreadStore.
type MySQLThreadStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewMySQLThreadStore opens a connection using dsn (a standard
// go-sql-driver/mysql data source name) and ensures the schema exists.
func NewMySQLThreadStore(dsn string) (*MySQLThreadStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "threadstore: open mysql")
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "threadstore: ping mysql")
	}

	store := &MySQLThreadStore{db: db, now: time.Now}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *MySQLThreadStore) createSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS threads (
	thread_id    VARCHAR(191) PRIMARY KEY,
	data         LONGBLOB NOT NULL,
	last_updated TIMESTAMP NOT NULL
) ENGINE=InnoDB;`
	_, err := s.db.Exec(ddl)
	if err != nil {
		return errors.Wrap(err, "threadstore: create schema")
	}
	return nil
}

// Close releases the underlying database connection.
func (s *MySQLThreadStore) Close() error {
	return s.db.Close()
}

func (s *MySQLThreadStore) Load(ctx context.Context, threadID string) (ThreadData, error) {
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

func (s *MySQLThreadStore) Save(ctx context.Context, thread ThreadData) error {
	raw, err := encodeThread(thread)
	if err != nil {
		return err
	}

	const upsert = `
INSERT INTO threads (thread_id, data, last_updated) VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE data = VALUES(data), last_updated = VALUES(last_updated);`
	if _, err := s.db.ExecContext(ctx, upsert, thread.ThreadID, raw, thread.LastUpdated); err != nil {
		return errors.Wrap(err, "threadstore: save")
	}
	return nil
}

func (s *MySQLThreadStore) Append(ctx context.Context, threadID string, entry EmailEntry) (ThreadData, error) {
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

func (s *MySQLThreadStore) UpdateCumulative(ctx context.Context, threadID string, newExtraction Extraction) bool {
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
