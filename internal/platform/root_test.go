package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindRoot(t *testing.T) {
	// base/
	//   project/ (.notekeep)
	//     sub/nested/
	//   empty/
	base := t.TempDir()
	project := filepath.Join(base, "project")
	nested := filepath.Join(project, "sub", "nested")
	empty := filepath.Join(base, "empty")

	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.MkdirAll(empty, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(project, ProjectDir), 0o755))

	tests := []struct {
		name     string
		start    string
		wantRoot string
		wantErr  bool
	}{
		{"at root", project, project, false},
		{"nested", nested, project, false},
		{"no root", empty, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindRoot(tt.start)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Clean(tt.wantRoot), filepath.Clean(got))
		})
	}
}

func TestFindRoot_IgnoresMarkerFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectDir), []byte("x"), 0o644))
	_, err := FindRoot(dir)
	assert.Error(t, err)
}

func TestResolveDataDir(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(base, ProjectDir), 0o755))

	got, err := ResolveDataDir(base, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, ProjectDir), got)

	override := filepath.Join(base, "elsewhere")
	got, err = ResolveDataDir(base, override)
	require.NoError(t, err)
	assert.Equal(t, override, got)

	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)
	got, err = ResolveDataDir(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(xdg, "notekeep"), got)
}
