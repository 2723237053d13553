package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uhppoted/pathfinder-sheets/store"
	"github.com/uhppoted/pathfinder-sheets/store/storetest"
)

func TestStore(t *testing.T) {
	paths := map[store.Store]string{}

	storetest.Run(t, storetest.Opener{
		Open: func(t *testing.T) store.Store {
			path := filepath.Join(t.TempDir(), "pathfinder.db")
			s, err := Open(path)
			require.NoError(t, err)

			t.Cleanup(func() { _ = s.Close() })
			paths[s] = path

			return s
		},

		Reopen: func(t *testing.T, s store.Store) store.Store {
			reopened, err := Open(paths[s])
			require.NoError(t, err)

			t.Cleanup(func() { _ = reopened.Close() })

			return reopened
		},
	})
}

func TestOpenWithoutPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}
