package local_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notekeep/pkg/adapters/local"
	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/kv"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type countingSeed struct {
	notes []core.Note
	err   error
	calls int
}

func (s *countingSeed) GuestNotes(ctx context.Context) ([]core.Note, error) {
	s.calls++
	return s.notes, s.err
}

func newRepo(t *testing.T, store kv.Store, seed local.SeedSource) *local.Repository {
	t.Helper()
	n := 0
	return local.NewRepository(local.Config{
		Store: store,
		Seed:  seed,
		Now:   func() time.Time { return fixedNow },
		NewID: func() string { n++; return "gen-" + string(rune('0'+n)) },
	})
}

func stored(t *testing.T, store kv.Store) []core.Note {
	t.Helper()
	notes, ok, err := kv.NewValue[[]core.Note](store, local.StorageKey, nil).Load(context.Background())
	require.NoError(t, err)
	require.True(t, ok, "guest collection not persisted")
	return notes
}

func TestRepository_SeedsDummyNotesOnce(t *testing.T) {
	store := kv.NewMemoryStore()
	seed := &countingSeed{notes: []core.Note{
		{ID: "d1", Title: "Demo", IsDummy: true},
		{ID: "real", Title: "Not a demo"},
	}}
	repo := newRepo(t, store, seed)
	ctx := context.Background()

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "d1", notes[0].ID)
	assert.Len(t, stored(t, store), 1)

	_, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, seed.calls)

	// A new repository over the same store reads the persisted collection.
	again := newRepo(t, store, seed)
	notes, err = again.List(ctx)
	require.NoError(t, err)
	assert.Len(t, notes, 1)
	assert.Equal(t, 1, seed.calls)

	state := again.State().(local.RepositoryState)
	assert.True(t, state.Loaded)
	assert.False(t, state.Seeded)
}

func TestRepository_SeedFailureIsRetried(t *testing.T) {
	seed := &countingSeed{err: core.ErrNetwork}
	repo := newRepo(t, kv.NewMemoryStore(), seed)

	_, err := repo.List(context.Background())
	require.ErrorIs(t, err, core.ErrNetwork)

	seed.err = nil
	notes, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, notes)
	assert.Equal(t, 2, seed.calls)
}

func TestRepository_WriteThrough(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := newRepo(t, store, nil)
	ctx := context.Background()

	created, err := repo.Create(ctx, core.Note{Title: "T", Content: "C", Tags: []string{"a"}})
	require.NoError(t, err)
	assert.Equal(t, "gen-1", created.ID)
	assert.True(t, created.IsDummy)
	assert.Equal(t, fixedNow, created.LastEdited)
	assert.Len(t, stored(t, store), 1)

	created.IsArchived = true
	updated, err := repo.Update(ctx, created)
	require.NoError(t, err)
	assert.True(t, updated.IsArchived)
	assert.True(t, stored(t, store)[0].IsArchived)

	require.NoError(t, repo.Delete(ctx, created.Key()))
	assert.Empty(t, stored(t, store))
}

func TestRepository_CreateIsUpsert(t *testing.T) {
	repo := newRepo(t, kv.NewMemoryStore(), nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, core.Note{ID: "x", Title: "one"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, core.Note{ID: "x", Title: "two"})
	require.NoError(t, err)

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "two", notes[0].Title)
}

func TestRepository_UnknownKeys(t *testing.T) {
	repo := newRepo(t, kv.NewMemoryStore(), nil)
	ctx := context.Background()

	_, err := repo.Update(ctx, core.Note{ID: "ghost"})
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "ghost"), core.ErrNotFound)
}

func TestRepository_FailedWriteLeavesMirrorUntouched(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := newRepo(t, store, nil)
	ctx := context.Background()

	_, err := repo.Create(ctx, core.Note{ID: "keep", Title: "kept"})
	require.NoError(t, err)

	store.SetFailWrites(errors.New("disk full"))

	_, err = repo.Create(ctx, core.Note{ID: "lost"})
	require.Error(t, err)
	_, err = repo.Update(ctx, core.Note{ID: "keep", Title: "changed"})
	require.Error(t, err)
	require.Error(t, repo.Delete(ctx, "keep"))

	notes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "kept", notes[0].Title)
}

func TestRepository_YAMLCodecOnFileStore(t *testing.T) {
	store := kv.NewFileStore(kv.FileConfig{Dir: t.TempDir()})
	repo := local.NewRepository(local.Config{Store: store, Codec: kv.YAMLCodec{}})
	ctx := context.Background()

	_, err := repo.Create(ctx, core.Note{ID: "y", Title: "yaml", Tags: []string{"t"}})
	require.NoError(t, err)

	raw, err := store.Get(ctx, local.StorageKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "title: yaml")

	reopened := local.NewRepository(local.Config{Store: store, Codec: kv.YAMLCodec{}})
	notes, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, []string{"t"}, notes[0].Tags)
	assert.Equal(t, "guest-repository", reopened.ComponentType())
	assert.Equal(t, core.ModeGuest, reopened.Mode())
}
