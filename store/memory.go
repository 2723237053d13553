package store

import (
	"context"
	"errors"
	"maps"
	"sync"
)

// Memory is an in-process Store. Changes made by a failed Update are discarded.
type Memory struct {
	sync.RWMutex
	values map[string]string
	closed bool
}

type memoryTx struct {
	values   map[string]string
	readonly bool
}

var errReadOnly = errors.New("read-only transaction")
var errClosed = errors.New("store is closed")

// NewMemory returns an empty in-memory store, optionally seeded with values.
func NewMemory(values map[string]string) *Memory {
	m := Memory{
		values: map[string]string{},
	}

	maps.Copy(m.values, values)

	return &m
}

func (m *Memory) View(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return Wrap("view", err)
	}

	m.RLock()
	defer m.RUnlock()

	if m.closed {
		return Wrap("view", errClosed)
	}

	return fn(&memoryTx{values: m.values, readonly: true})
}

func (m *Memory) Update(ctx context.Context, fn func(tx Tx) error) error {
	if err := ctx.Err(); err != nil {
		return Wrap("update", err)
	}

	m.Lock()
	defer m.Unlock()

	if m.closed {
		return Wrap("update", errClosed)
	}

	tx := memoryTx{values: maps.Clone(m.values)}
	if err := fn(&tx); err != nil {
		return err
	}

	m.values = tx.values

	return nil
}

func (m *Memory) Close() error {
	m.Lock()
	defer m.Unlock()

	m.closed = true

	return nil
}

// Snapshot returns a copy of the committed values.
func (m *Memory) Snapshot() map[string]string {
	m.RLock()
	defer m.RUnlock()

	return maps.Clone(m.values)
}

func (tx *memoryTx) Get(key string) (string, bool, error) {
	v, ok := tx.values[key]

	return v, ok, nil
}

func (tx *memoryTx) Set(key, value string) error {
	if tx.readonly {
		return errReadOnly
	}

	tx.values[key] = value

	return nil
}

func (tx *memoryTx) Delete(key string) error {
	if tx.readonly {
		return errReadOnly
	}

	delete(tx.values, key)

	return nil
}
