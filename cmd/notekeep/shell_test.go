package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeep/internal/config"
	"github.com/aretw0/notekeep/internal/fakeapi"
	"github.com/aretw0/notekeep/pkg/auth"
	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/kv"
	"github.com/aretw0/notekeep/pkg/view"
)

func newTestShell(t *testing.T) (*shell, *bytes.Buffer, *fakeapi.Server) {
	t.Helper()
	api := fakeapi.New()
	api.SetGuestNotes(core.Note{
		ID:         "g1",
		Title:      "Welcome",
		Content:    "hello there",
		Tags:       []string{"intro"},
		IsDummy:    true,
		LastEdited: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	c := config.Default()
	c.API.BaseURL = srv.URL + "/api"
	c.Storage.Backend = "memory"

	store := kv.NewMemoryStore()
	e := &env{
		cfg:   c,
		dir:   t.TempDir(),
		store: store,
		creds: auth.NewStore(store, nil),
		close: func() error { return nil },
	}

	var out bytes.Buffer
	sh, err := newShell(context.Background(), e, &out)
	require.NoError(t, err)
	return sh, &out, api
}

func run(t *testing.T, sh *shell, lines ...string) {
	t.Helper()
	for _, line := range lines {
		require.NoError(t, sh.exec(context.Background(), line), line)
	}
}

func TestShell_GuestCreateAndList(t *testing.T) {
	sh, out, _ := newTestShell(t)
	assert.Equal(t, core.ModeGuest, sh.current().Mode())

	run(t, sh, "ls")
	assert.Contains(t, out.String(), "g1 - Welcome [intro]")

	out.Reset()
	run(t, sh,
		"new",
		"title Groceries",
		"content eggs and milk",
		"tag food, home",
		"save",
	)
	assert.Contains(t, out.String(), "Groceries [food, home]")

	out.Reset()
	run(t, sh, "search milk", "ls")
	assert.Contains(t, out.String(), "Groceries")
	assert.NotContains(t, out.String(), "Welcome")
}

func TestShell_SaveRejected(t *testing.T) {
	sh, _, _ := newTestShell(t)
	run(t, sh, "new", "content body", "tag x")

	err := sh.exec(context.Background(), "save")
	assert.ErrorIs(t, err, core.ErrValidation)
	_, open := sh.current().Draft()
	assert.True(t, open, "draft stays open after a rejected save")
}

func TestShell_TagsAndBack(t *testing.T) {
	sh, _, _ := newTestShell(t)
	run(t, sh, "tags")
	assert.Equal(t, "guest:tags#intro> ", sh.prompt())

	run(t, sh, "back")
	v := sh.current().View()
	assert.Equal(t, view.Tags, v.View)
	assert.Equal(t, core.FilterAll, v.Filter)
}

func TestShell_OpenAndArchive(t *testing.T) {
	sh, out, _ := newTestShell(t)
	run(t, sh, "open g1")
	assert.Equal(t, "guest:noteDetail/g1> ", sh.prompt())

	run(t, sh, "toggle-archive")
	assert.Contains(t, out.String(), "Welcome [intro] (archived)")

	run(t, sh, "rm")
	_, ok := sh.current().Get("g1")
	assert.False(t, ok)
}

func TestShell_LoginSwitchesMode(t *testing.T) {
	sh, out, api := newTestShell(t)
	api.AddUser("secret", core.Note{StorageID: "srv-9", Title: "Remote", Tags: []string{"work"}})

	run(t, sh, "login secret")
	assert.Equal(t, core.ModeAuthenticated, sh.current().Mode())

	run(t, sh, "ls")
	assert.Contains(t, out.String(), "srv-9 - Remote [work]")

	run(t, sh, "logout")
	assert.Equal(t, core.ModeGuest, sh.current().Mode())
}

func TestShell_Commands(t *testing.T) {
	sh, _, _ := newTestShell(t)
	ctx := context.Background()

	assert.NoError(t, sh.exec(ctx, "   "))
	assert.ErrorIs(t, sh.exec(ctx, "exit"), errQuit)
	assert.ErrorContains(t, sh.exec(ctx, "frobnicate"), "unknown command")
	assert.Error(t, sh.exec(ctx, "open"))
	assert.ErrorIs(t, sh.exec(ctx, "open nope"), core.ErrNotFound)
	assert.Error(t, sh.exec(ctx, "login "))
}
