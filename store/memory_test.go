package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uhppoted/pathfinder-sheets/store"
	"github.com/uhppoted/pathfinder-sheets/store/storetest"
)

func TestMemory(t *testing.T) {
	storetest.Run(t, storetest.Opener{
		Open: func(t *testing.T) store.Store {
			return store.NewMemory(nil)
		},
	})
}

func TestMemorySeeded(t *testing.T) {
	m := store.NewMemory(map[string]string{store.DocumentID: "abc"})

	v, ok, err := store.Get(context.Background(), m, store.DocumentID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "abc", v)
}

func TestMemoryClosed(t *testing.T) {
	m := store.NewMemory(nil)
	require.NoError(t, m.Close())

	err := store.Set(context.Background(), m, store.DocumentID, "abc")
	require.ErrorIs(t, err, store.ErrTransaction)
}
