package kv_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeep/pkg/kv"
)

// backends returns a fresh instance of every Store implementation.
func backends(t *testing.T) map[string]kv.Store {
	t.Helper()

	sqlite, err := kv.OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlite.Close() })

	return map[string]kv.Store{
		"memory": kv.NewMemoryStore(),
		"file":   kv.NewFileStore(kv.FileConfig{Dir: filepath.Join(t.TempDir(), "data")}),
		"sqlite": sqlite,
	}
}

func TestStore_Contract(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := s.Get(ctx, "guestNotes")
			assert.ErrorIs(t, err, kv.ErrNotFound)

			require.NoError(t, s.Set(ctx, "guestNotes", []byte("v1")))
			got, err := s.Get(ctx, "guestNotes")
			require.NoError(t, err)
			assert.Equal(t, "v1", string(got))

			require.NoError(t, s.Set(ctx, "guestNotes", []byte("v2")))
			got, err = s.Get(ctx, "guestNotes")
			require.NoError(t, err)
			assert.Equal(t, "v2", string(got))

			require.NoError(t, s.Delete(ctx, "guestNotes"))
			_, err = s.Get(ctx, "guestNotes")
			assert.ErrorIs(t, err, kv.ErrNotFound)

			require.NoError(t, s.Delete(ctx, "guestNotes"), "deleting a missing key is not an error")
		})
	}
}

func TestStore_RejectsUnsafeKeys(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
				err := s.Set(context.Background(), key, []byte("x"))
				assert.ErrorIs(t, err, kv.ErrInvalidKey, key)
			}
		})
	}
}

func TestMemoryStore_FailWrites(t *testing.T) {
	s := kv.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, "k", []byte("v")))

	s.SetFailWrites(assert.AnError)
	assert.ErrorIs(t, s.Set(ctx, "k", []byte("other")), assert.AnError)
	assert.ErrorIs(t, s.Delete(ctx, "k"), assert.AnError)

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}

func TestFileStore_State(t *testing.T) {
	dir := t.TempDir()
	s := kv.NewFileStore(kv.FileConfig{Dir: dir})
	require.NoError(t, s.Set(context.Background(), "token", []byte("abc")))

	state, ok := s.State().(kv.FileStoreState)
	require.True(t, ok)
	assert.Equal(t, dir, state.Dir)
	assert.Equal(t, int64(1), state.Writes)
	assert.Equal(t, "kv-file", s.ComponentType())
	assert.Equal(t, filepath.Join(dir, "token"), s.Path("token"))
}

func TestSQLiteStore_State(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	s, err := kv.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(context.Background(), "token", []byte("abc")))

	state, ok := s.State().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, path, state["path"])
	assert.Equal(t, 1, state["keys"])
	assert.NotContains(t, state, "error")
	assert.Equal(t, "kv-sqlite", s.ComponentType())

	require.NoError(t, s.Close())
	state = s.State().(map[string]any)
	assert.Contains(t, state, "error", "read failures are reported")
	assert.NotContains(t, state, "keys")
}
