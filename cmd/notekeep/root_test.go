package main

import (
	"bytes"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeep/internal/fakeapi"
)

// execute runs the root command against a throwaway data dir and API.
func execute(t *testing.T, dir, api string, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{
		"--config", filepath.Join(dir, "missing.yaml"),
		"--dir", dir,
		"--api", api,
	}, args...))
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestCLI_Version(t *testing.T) {
	out := execute(t, t.TempDir(), "http://127.0.0.1:0/api", "version")
	assert.Equal(t, "notekeep version 0.1.0\n", out)
}

func TestCLI_GuestRoundTrip(t *testing.T) {
	srv := httptest.NewServer(fakeapi.New().Handler())
	t.Cleanup(srv.Close)
	api := srv.URL + "/api"
	dir := t.TempDir()

	out := execute(t, dir, api, "new", "--title", "Groceries", "--content", "eggs", "--tags", "food")
	assert.Contains(t, out, "Groceries [food]")

	out = execute(t, dir, api, "list", "--tag", "food")
	assert.Contains(t, out, "Groceries [food]")

	out = execute(t, dir, api, "tags")
	assert.Equal(t, "food\n", out)
}

func TestCLI_LoginPersistsToken(t *testing.T) {
	server := fakeapi.New()
	server.AddUser("secret")
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	api := srv.URL + "/api"
	dir := t.TempDir()

	assert.Contains(t, execute(t, dir, api, "login", "secret"), "Signed in")
	out := execute(t, dir, api, "status")
	assert.Contains(t, out, `"mode": "authenticated"`)

	assert.Contains(t, execute(t, dir, api, "logout"), "Signed out")
	out = execute(t, dir, api, "status")
	assert.Contains(t, out, `"mode": "guest"`)
}
