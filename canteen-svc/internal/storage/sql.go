package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"byteme-canteen/canteen-svc/internal/domain"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

type sqlQueries struct {
	schema string
	delete string
	insert string
	latest string
}

var dialects = map[string]sqlQueries{
	DialectPostgres: {
		schema: `CREATE TABLE IF NOT EXISTS canteen_snapshots (
			saved_at TIMESTAMPTZ NOT NULL,
			version INTEGER NOT NULL,
			payload BYTEA NOT NULL
		)`,
		delete: "DELETE FROM canteen_snapshots",
		insert: "INSERT INTO canteen_snapshots (saved_at, version, payload) VALUES ($1, $2, $3)",
		latest: "SELECT payload FROM canteen_snapshots ORDER BY saved_at DESC LIMIT 1",
	},
	DialectSQLite: {
		schema: `CREATE TABLE IF NOT EXISTS canteen_snapshots (
			saved_at TIMESTAMP NOT NULL,
			version INTEGER NOT NULL,
			payload BLOB NOT NULL
		)`,
		delete: "DELETE FROM canteen_snapshots",
		insert: "INSERT INTO canteen_snapshots (saved_at, version, payload) VALUES (?, ?, ?)",
		latest: "SELECT payload FROM canteen_snapshots ORDER BY saved_at DESC LIMIT 1",
	},
}

// SQLStore keeps a single snapshot row in canteen_snapshots.
type SQLStore struct {
	DB *sql.DB
	q  sqlQueries
}

func NewSQLStore(db *sql.DB, dialect string) (*SQLStore, error) {
	q, ok := dialects[dialect]
	if !ok {
		return nil, fmt.Errorf("unknown sql dialect %q", dialect)
	}
	return &SQLStore{DB: db, q: q}, nil
}

func (s *SQLStore) EnsureSchema(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, s.q.schema)
	return err
}

func (s *SQLStore) Save(ctx context.Context, payload []byte, savedAt time.Time) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.q.delete); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, s.q.insert, savedAt.UTC(), SnapshotVersion, payload); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) Load(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := s.DB.QueryRowContext(ctx, s.q.latest).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}
