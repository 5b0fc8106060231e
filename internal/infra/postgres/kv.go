// Package postgres implements the progress key-value backend on PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aliskhannn/wordroots-bot/internal/storage"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)
`

// KV is a storage.Backend on a single PostgreSQL table.
type KV struct {
	db DBTX
}

// NewKV creates a KV on db.
func NewKV(db DBTX) *KV {
	return &KV{db: db}
}

// Migrate creates the kv table if it does not exist.
func (r *KV) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create kv table: %w", err)
	}
	return nil
}

func (r *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRow(ctx, `SELECT value FROM kv WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

func (r *KV) Put(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

func (r *KV) Delete(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (r *KV) List(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT key FROM kv WHERE starts_with(key, $1) ORDER BY key`, prefix)
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", prefix, err)
	}

	keys, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan keys: %w", err)
	}
	return keys, nil
}

var _ storage.Backend = (*KV)(nil)
