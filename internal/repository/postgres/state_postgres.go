package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"docqa/internal/repository"
)

// StatePostgres is a PostgreSQL implementation of repository.StateRepository backed by the
// workspace_state table. It uses database/sql with parameterized queries.
type StatePostgres struct {
	db  *sql.DB
	now func() time.Time
}

// NewStatePostgres creates a new StatePostgres repository.
func NewStatePostgres(db *sql.DB) *StatePostgres {
	return &StatePostgres{db: db, now: func() time.Time { return time.Now().UTC() }}
}

var _ repository.StateRepository = (*StatePostgres)(nil)

// Get fetches the value stored under key.
func (r *StatePostgres) Get(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM workspace_state WHERE key = $1`
	var value []byte
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

// Put upserts the value for key.
func (r *StatePostgres) Put(ctx context.Context, key string, value []byte) error {
	const q = `
		INSERT INTO workspace_state (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, q, key, value, r.now())
	return err
}

// Delete removes key. It does not return an error if the row does not exist.
func (r *StatePostgres) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM workspace_state WHERE key = $1`
	_, err := r.db.ExecContext(ctx, q, key)
	return err
}

func (r *StatePostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
