// Package pstore implements a file backed store.Store. The values are kept as a JSON
// object, guarded by an advisory lock file and replaced atomically on every commit.
package pstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/uhppoted/pathfinder-sheets/store"
)

const pollInterval = 25 * time.Millisecond

// PStore is a store.Store persisted to a single JSON file.
type PStore struct {
	file string
	lock string
}

type tx struct {
	values   map[string]string
	readonly bool
}

var errReadOnly = errors.New("read-only transaction")

// Open returns a PStore for the file, creating the parent directory if necessary. The
// file itself is only created on the first committed Update.
func Open(file string) (*PStore, error) {
	if file == "" {
		return nil, fmt.Errorf("store file is required")
	}

	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return nil, store.Wrap("open", err)
	}

	return &PStore{
		file: file,
		lock: file + ".lock",
	}, nil
}

func (p *PStore) View(ctx context.Context, fn func(tx store.Tx) error) error {
	unlock, err := p.acquire(ctx, unix.LOCK_SH)
	if err != nil {
		return store.Wrap("view", err)
	}

	defer unlock()

	values, err := p.read()
	if err != nil {
		return store.Wrap("view", err)
	}

	return fn(&tx{values: values, readonly: true})
}

func (p *PStore) Update(ctx context.Context, fn func(tx store.Tx) error) error {
	unlock, err := p.acquire(ctx, unix.LOCK_EX)
	if err != nil {
		return store.Wrap("update", err)
	}

	defer unlock()

	values, err := p.read()
	if err != nil {
		return store.Wrap("update", err)
	}

	t := tx{values: maps.Clone(values)}
	if err := fn(&t); err != nil {
		return err
	}

	if err := p.write(t.values); err != nil {
		return store.Wrap("commit", err)
	}

	return nil
}

// Close is a no-op: locks are only held for the duration of a transaction.
func (p *PStore) Close() error {
	return nil
}

func (p *PStore) acquire(ctx context.Context, how int) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(p.lock, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, err
	}

	for {
		if err := unix.Flock(int(f.Fd()), how|unix.LOCK_NB); err == nil {
			break
		} else if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			f.Close()
			return nil, err
		}

		select {
		case <-ctx.Done():
			f.Close()
			return nil, ctx.Err()

		case <-time.After(pollInterval):
		}
	}

	return func() {
		unix.Flock(int(f.Fd()), unix.LOCK_UN)
		f.Close()
	}, nil
}

func (p *PStore) read() (map[string]string, error) {
	values := map[string]string{}

	b, err := os.ReadFile(p.file)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	} else if err != nil {
		return nil, err
	}

	if len(b) == 0 {
		return values, nil
	}

	if err := json.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("corrupt store file %s (%v)", p.file, err)
	}

	return values, nil
}

func (p *PStore) write(values map[string]string) error {
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.file), ".pstore-*")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := tmp.Chmod(0600); err != nil {
		return err
	}

	if _, err := tmp.Write(b); err != nil {
		return err
	}

	if err := tmp.Sync(); err != nil {
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), p.file)
}

func (t *tx) Get(key string) (string, bool, error) {
	v, ok := t.values[key]

	return v, ok, nil
}

func (t *tx) Set(key, value string) error {
	if t.readonly {
		return errReadOnly
	}

	t.values[key] = value

	return nil
}

func (t *tx) Delete(key string) error {
	if t.readonly {
		return errReadOnly
	}

	delete(t.values, key)

	return nil
}
