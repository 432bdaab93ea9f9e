package app_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeep/internal/fakeapi"
	"github.com/aretw0/notekeep/pkg/adapters/local"
	"github.com/aretw0/notekeep/pkg/adapters/remote"
	"github.com/aretw0/notekeep/pkg/app"
	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/kv"
)

var clock = time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC)

// harness builds an App for one session mode, seeded with notes.
type harness struct {
	name  string
	mode  core.Mode
	build func(t *testing.T, notes ...core.Note) *app.App
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func guestApp(t *testing.T, notes ...core.Note) *app.App {
	t.Helper()
	store := kv.NewMemoryStore()
	if len(notes) > 0 {
		require.NoError(t, kv.NewValue[[]core.Note](store, local.StorageKey, nil).Save(context.Background(), notes))
	}
	repo := local.NewRepository(local.Config{Store: store, Now: func() time.Time { return clock }})
	return newApp(t, repo)
}

func remoteApp(t *testing.T, notes ...core.Note) *app.App {
	t.Helper()
	api := fakeapi.New()
	api.SetClock(func() time.Time { return clock })
	// The server knows notes by their storage id.
	stored := make([]core.Note, len(notes))
	for i, n := range notes {
		n.StorageID = n.ID
		n.ID = ""
		n.IsDummy = false
		stored[i] = n
	}
	api.AddUser("secret", stored...)
	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)

	repo := remote.NewRepository(remote.NewClient(remote.Config{BaseURL: srv.URL + "/api", Token: "secret"}))
	return newApp(t, repo)
}

func newApp(t *testing.T, repo core.Repository) *app.App {
	t.Helper()
	a, err := app.New(app.Config{
		Repository: repo,
		Now:        func() time.Time { return clock },
		NewID:      sequentialIDs(),
	})
	require.NoError(t, err)
	require.NoError(t, a.Load(context.Background()))
	return a
}

var harnesses = []harness{
	{name: "guest", mode: core.ModeGuest, build: guestApp},
	{name: "authenticated", mode: core.ModeAuthenticated, build: remoteApp},
}

// gatedRepo blocks every call until release is closed.
type gatedRepo struct {
	core.Repository
	entered chan struct{}
	release chan struct{}
}

func newGatedRepo(inner core.Repository) *gatedRepo {
	return &gatedRepo{Repository: inner, entered: make(chan struct{}, 8), release: make(chan struct{})}
}

func (g *gatedRepo) wait() {
	g.entered <- struct{}{}
	<-g.release
}

func (g *gatedRepo) Update(ctx context.Context, n core.Note) (core.Note, error) {
	g.wait()
	return g.Repository.Update(ctx, n)
}

func (g *gatedRepo) Create(ctx context.Context, n core.Note) (core.Note, error) {
	g.wait()
	return g.Repository.Create(ctx, n)
}

// failingRepo fails every mutation with err.
type failingRepo struct {
	core.Repository
	err error
}

func (f *failingRepo) Create(ctx context.Context, n core.Note) (core.Note, error) {
	return core.Note{}, f.err
}

func (f *failingRepo) Update(ctx context.Context, n core.Note) (core.Note, error) {
	return core.Note{}, f.err
}

func (f *failingRepo) Delete(ctx context.Context, key string) error {
	return f.err
}
