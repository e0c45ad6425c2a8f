package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/invoice"
)

const createKVTable = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// Postgres keeps the history as one JSONB value in the kv_store table.
type Postgres struct {
	db  *sql.DB
	key string
}

func NewPostgres(db *sql.DB, key string) *Postgres {
	return &Postgres{db: db, key: key}
}

func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createKVTable); err != nil {
		return fmt.Errorf("creating kv_store table: %w", err)
	}

	return nil
}

func (s *Postgres) Load(ctx context.Context) ([]invoice.Record, error) {
	query := `SELECT value FROM kv_store WHERE key = $1`

	var value []byte

	err := s.db.QueryRowContext(ctx, query, s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []invoice.Record{}, nil
		}

		return nil, fmt.Errorf("loading history: %w", err)
	}

	return history.Decode(bytes.NewReader(value))
}

func (s *Postgres) Store(ctx context.Context, records []invoice.Record) error {
	data, err := history.Encode(records)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := s.db.ExecContext(ctx, query, s.key, data); err != nil {
		return fmt.Errorf("storing history: %w", err)
	}

	return nil
}
