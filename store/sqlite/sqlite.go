// Package sqlite provides a SQLite backed store.Store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/uhppoted/pathfinder-sheets/store"
)

//go:embed schema.sql
var schema string

var errReadOnly = errors.New("read-only transaction")

// Store persists key-value pairs in a single SQLite table.
type Store struct {
	sqlDB *sql.DB
}

type tx struct {
	ctx      context.Context
	sqlTx    *sql.Tx
	readonly bool
}

// Open opens (or creates) the SQLite database at path and applies the schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, store.Wrap("open sqlite db", err)
	}

	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, store.Wrap("ping sqlite db", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, store.Wrap("apply schema", err)
	}

	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}

	return s.sqlDB.Close()
}

func (s *Store) View(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.transaction(ctx, true, fn)
}

func (s *Store) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	return s.transaction(ctx, false, fn)
}

func (s *Store) transaction(ctx context.Context, readonly bool, fn func(tx store.Tx) error) error {
	if s == nil || s.sqlDB == nil {
		return store.Wrap("begin", fmt.Errorf("storage is not configured"))
	}

	sqlTx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return store.Wrap("begin", err)
	}

	if err := fn(&tx{ctx: ctx, sqlTx: sqlTx, readonly: readonly}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}

	if readonly {
		_ = sqlTx.Rollback()
		return nil
	}

	if err := sqlTx.Commit(); err != nil {
		return store.Wrap("commit", err)
	}

	return nil
}

func (t *tx) Get(key string) (string, bool, error) {
	var value string

	row := t.sqlTx.QueryRowContext(t.ctx, `SELECT value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&value); errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	} else if err != nil {
		return "", false, store.Wrap("get "+key, err)
	}

	return value, true, nil
}

func (t *tx) Set(key, value string) error {
	if t.readonly {
		return errReadOnly
	}

	_, err := t.sqlTx.ExecContext(
		t.ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key,
		value,
		time.Now().UTC().UnixMilli(),
	)
	if err != nil {
		return store.Wrap("set "+key, err)
	}

	return nil
}

func (t *tx) Delete(key string) error {
	if t.readonly {
		return errReadOnly
	}

	if _, err := t.sqlTx.ExecContext(t.ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return store.Wrap("delete "+key, err)
	}

	return nil
}
