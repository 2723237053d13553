// Package storetest is a conformance suite for store.Store implementations.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uhppoted/pathfinder-sheets/store"
)

// Opener returns a new, empty store. Reopen returns a second handle onto the same data.
type Opener struct {
	Open   func(t *testing.T) store.Store
	Reopen func(t *testing.T, s store.Store) store.Store
}

// Run exercises the transactional contract of store.Store.
func Run(t *testing.T, opener Opener) {
	t.Run("missing key", func(t *testing.T) {
		s := opener.Open(t)

		_, ok, err := store.Get(context.Background(), s, store.RefreshToken)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("set and get", func(t *testing.T) {
		s := opener.Open(t)
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, s, store.DocumentID, "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"))

		v, ok, err := store.Get(ctx, s, store.DocumentID)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", v)

		require.NoError(t, store.Set(ctx, s, store.DocumentID, "replaced"))

		v, _, err = store.Get(ctx, s, store.DocumentID)
		require.NoError(t, err)
		require.Equal(t, "replaced", v)
	})

	t.Run("update is atomic", func(t *testing.T) {
		s := opener.Open(t)
		ctx := context.Background()
		failed := errors.New("refresh token write failed")

		err := s.Update(ctx, func(tx store.Tx) error {
			if err := tx.Set(store.AccessToken, "ya29.access"); err != nil {
				return err
			}

			return failed
		})
		require.ErrorIs(t, err, failed)

		_, ok, err := store.Get(ctx, s, store.AccessToken)
		require.NoError(t, err)
		require.False(t, ok, "partially written transaction is visible")
	})

	t.Run("multiple keys in one update", func(t *testing.T) {
		s := opener.Open(t)
		ctx := context.Background()

		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			if err := tx.Set(store.AccessToken, "ya29.access"); err != nil {
				return err
			}
			return tx.Set(store.RefreshToken, "1//refresh")
		}))

		require.NoError(t, s.View(ctx, func(tx store.Tx) error {
			access, ok, err := tx.Get(store.AccessToken)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "ya29.access", access)

			refresh, ok, err := tx.Get(store.RefreshToken)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "1//refresh", refresh)

			return nil
		}))
	})

	t.Run("delete", func(t *testing.T) {
		s := opener.Open(t)
		ctx := context.Background()

		require.NoError(t, store.Set(ctx, s, store.AccessToken, "ya29.access"))
		require.NoError(t, s.Update(ctx, func(tx store.Tx) error {
			return tx.Delete(store.AccessToken)
		}))

		_, ok, err := store.Get(ctx, s, store.AccessToken)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("view is read-only", func(t *testing.T) {
		s := opener.Open(t)

		err := s.View(context.Background(), func(tx store.Tx) error {
			return tx.Set(store.AccessToken, "ya29.access")
		})
		require.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		s := opener.Open(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := store.Set(ctx, s, store.AccessToken, "ya29.access")
		require.ErrorIs(t, err, store.ErrTransaction)
	})

	if opener.Reopen != nil {
		t.Run("persists across reopen", func(t *testing.T) {
			s := opener.Open(t)
			ctx := context.Background()

			require.NoError(t, store.Set(ctx, s, store.RefreshToken, "1//refresh"))
			require.NoError(t, s.Close())

			reopened := opener.Reopen(t, s)

			v, ok, err := store.Get(ctx, reopened, store.RefreshToken)
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "1//refresh", v)
		})
	}
}
