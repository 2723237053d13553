// Package store defines the durable, transactional key-value store used to keep the
// OAuth tokens and the character sheet document ID between runs.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Well known keys.
const (
	RefreshToken = "refresh_token"
	AccessToken  = "access_token"
	TokenType    = "token_type"
	TokenExpiry  = "token_expiry"
	DocumentID   = "document_id"
)

// ErrTransaction wraps any failure to complete a store transaction.
var ErrTransaction = errors.New("store transaction failed")

// Tx is a read/write view of the store inside a single transaction.
type Tx interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store is a transactional key-value map. Either every change made inside an Update is
// committed or none of them are.
type Store interface {
	View(ctx context.Context, fn func(tx Tx) error) error
	Update(ctx context.Context, fn func(tx Tx) error) error
	Close() error
}

// Wrap wraps the failure of operation op as an ErrTransaction.
func Wrap(op string, err error) error {
	return fmt.Errorf("%w: %s (%v)", ErrTransaction, op, err)
}

// Get reads a single key in its own read-only transaction.
func Get(ctx context.Context, s Store, key string) (value string, ok bool, err error) {
	err = s.View(ctx, func(tx Tx) error {
		value, ok, err = tx.Get(key)
		return err
	})

	return
}

// Set writes a single key in its own transaction.
func Set(ctx context.Context, s Store, key, value string) error {
	return s.Update(ctx, func(tx Tx) error {
		return tx.Set(key, value)
	})
}
