package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("Overwrites and leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		filename := filepath.Join(dir, "guestNotes")
		require.NoError(t, os.WriteFile(filename, []byte("initial"), 0o644))

		require.NoError(t, writeFileAtomic(filename, []byte("overwritten"), 0o600))

		got, err := os.ReadFile(filename)
		require.NoError(t, err)
		assert.Equal(t, "overwritten", string(got))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("Fails for missing directory", func(t *testing.T) {
		err := writeFileAtomic(filepath.Join(t.TempDir(), "missing", "f"), []byte("x"), 0o600)
		assert.Error(t, err)
	})

	t.Run("Temp files are recognised", func(t *testing.T) {
		assert.True(t, isTempFile("/x/"+TempFilePrefix+"123"))
		assert.False(t, isTempFile("/x/token"))
	})
}
