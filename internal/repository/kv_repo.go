package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
)

type KVSQLite struct {
	db *sql.DB
}

func NewKVSQLite(db *sql.DB) *KVSQLite {
	return &KVSQLite{db: db}
}

var _ KVStore = (*KVSQLite)(nil)

const (
	selectValueSQL = `SELECT value FROM config WHERE key = ?`
	upsertValueSQL = `INSERT INTO config (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`
)

// Get returns the value for key. ok is false when the key was never written.
func (r *KVSQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, selectValueSQL, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select config %q: %w", key, err)
	}
	return v, true, nil
}

// Set upserts a single key.
func (r *KVSQLite) Set(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx, upsertValueSQL, key, value); err != nil {
		return fmt.Errorf("upsert config %q: %w", key, err)
	}
	return nil
}

// SetMany upserts all pairs in one transaction, in key order.
func (r *KVSQLite) SetMany(ctx context.Context, values map[string]string) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin config transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, upsertValueSQL, k, values[k]); err != nil {
			return fmt.Errorf("upsert config %q: %w", k, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit config transaction: %w", err)
	}
	return nil
}
