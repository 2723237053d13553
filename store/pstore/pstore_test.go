package pstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uhppoted/pathfinder-sheets/store"
	"github.com/uhppoted/pathfinder-sheets/store/storetest"
)

func open(t *testing.T) store.Store {
	p, err := Open(filepath.Join(t.TempDir(), "pathfinder", "pathfinder.pstore"))
	require.NoError(t, err)

	return p
}

func TestPStore(t *testing.T) {
	storetest.Run(t, storetest.Opener{
		Open: open,
		Reopen: func(t *testing.T, s store.Store) store.Store {
			p, err := Open(s.(*PStore).file)
			require.NoError(t, err)

			return p
		},
	})
}

func TestPStoreFileMode(t *testing.T) {
	p := open(t).(*PStore)

	require.NoError(t, store.Set(context.Background(), p, store.RefreshToken, "1//refresh"))

	info, err := os.Stat(p.file)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestPStoreFailedUpdateLeavesFileUntouched(t *testing.T) {
	p := open(t).(*PStore)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, p, store.RefreshToken, "1//refresh"))

	before, err := os.ReadFile(p.file)
	require.NoError(t, err)

	_ = p.Update(ctx, func(tx store.Tx) error {
		_ = tx.Set(store.RefreshToken, "1//other")
		return os.ErrInvalid
	})

	after, err := os.ReadFile(p.file)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))
}

func TestPStoreWithCorruptFile(t *testing.T) {
	p := open(t).(*PStore)

	require.NoError(t, os.WriteFile(p.file, []byte("{not json"), 0600))

	_, _, err := store.Get(context.Background(), p, store.RefreshToken)
	require.ErrorIs(t, err, store.ErrTransaction)
}
