// Package local implements the guest persistence variant: the note
// collection lives in a local key-value store and every mutation is written
// through before it is reported as done.
package local

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/kv"
)

// StorageKey is the key holding the serialized guest collection.
const StorageKey = "guestNotes"

// SeedSource supplies the demo notes used when no guest collection exists.
type SeedSource interface {
	GuestNotes(ctx context.Context) ([]core.Note, error)
}

// SeedFunc adapts a function to SeedSource.
type SeedFunc func(ctx context.Context) ([]core.Note, error)

func (f SeedFunc) GuestNotes(ctx context.Context) ([]core.Note, error) {
	return f(ctx)
}

// Config configures a Repository.
type Config struct {
	Store  kv.Store
	Codec  kv.Codec
	Seed   SeedSource
	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
}

// Repository is the guest implementation of core.Repository.
type Repository struct {
	config Config
	value  *kv.Value[[]core.Note]

	mu     sync.Mutex
	notes  []core.Note
	loaded bool
	seeded bool
	writes int
}

// NewRepository returns a guest repository. The collection is read lazily on
// first use.
func NewRepository(config Config) *Repository {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.NewID == nil {
		config.NewID = uuid.NewString
	}
	return &Repository{
		config: config,
		value:  kv.NewValue[[]core.Note](config.Store, StorageKey, config.Codec),
	}
}

func (r *Repository) Mode() core.Mode {
	return core.ModeGuest
}

// Initialize checks the configuration. The collection itself is read (and
// seeded if missing) on first use, so an unreachable seed source does not
// prevent a session from starting.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.Store == nil {
		return fmt.Errorf("guest repository: no store configured")
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return cloneAll(r.notes), nil
}

// Create stores n, replacing any note with the same key.
func (r *Repository) Create(ctx context.Context, n core.Note) (core.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return core.Note{}, err
	}

	n = n.Clone()
	if n.ID == "" {
		n.ID = r.config.NewID()
	}
	if n.LastEdited.IsZero() {
		n.LastEdited = r.config.Now()
	}
	n.IsDummy = true

	next := cloneAll(r.notes)
	if i := r.index(n.Key()); i >= 0 {
		next[i] = n
	} else {
		next = append(next, n)
	}
	if err := r.commit(ctx, next); err != nil {
		return core.Note{}, err
	}
	r.log("guest note created", n.Key())
	return n.Clone(), nil
}

func (r *Repository) Update(ctx context.Context, n core.Note) (core.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return core.Note{}, err
	}

	i := r.index(n.Key())
	if i < 0 {
		return core.Note{}, fmt.Errorf("%w: %s", core.ErrNotFound, n.Key())
	}
	n = n.Clone()
	n.IsDummy = true

	next := cloneAll(r.notes)
	next[i] = n
	if err := r.commit(ctx, next); err != nil {
		return core.Note{}, err
	}
	r.log("guest note updated", n.Key())
	return n.Clone(), nil
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ensureLoaded(ctx); err != nil {
		return err
	}

	i := r.index(key)
	if i < 0 {
		return fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	next := slices.Delete(cloneAll(r.notes), i, i+1)
	if err := r.commit(ctx, next); err != nil {
		return err
	}
	r.log("guest note deleted", key)
	return nil
}

// commit writes next through to the store and adopts it as the mirror only
// when the write succeeded.
func (r *Repository) commit(ctx context.Context, next []core.Note) error {
	if err := r.value.Save(ctx, next); err != nil {
		if r.config.Logger != nil {
			r.config.Logger.Error("guest write-through failed", "error", err)
		}
		return fmt.Errorf("persist guest notes: %w", err)
	}
	r.notes = next
	r.writes++
	return nil
}

func (r *Repository) ensureLoaded(ctx context.Context) error {
	if r.loaded {
		return nil
	}

	stored, ok, err := r.value.Load(ctx)
	if err != nil {
		return fmt.Errorf("load guest notes: %w", err)
	}
	if ok {
		r.notes = stored
		r.loaded = true
		return nil
	}

	if r.config.Seed == nil {
		r.notes = []core.Note{}
		r.loaded = true
		return nil
	}

	seed, err := r.config.Seed.GuestNotes(ctx)
	if err != nil {
		if r.config.Logger != nil {
			r.config.Logger.Warn("guest seed fetch failed", "error", err)
		}
		return fmt.Errorf("fetch guest seed: %w", err)
	}
	seed = slices.DeleteFunc(cloneAll(seed), func(n core.Note) bool { return !n.IsDummy })
	if err := r.value.Save(ctx, seed); err != nil {
		return fmt.Errorf("persist guest seed: %w", err)
	}
	r.notes = seed
	r.loaded = true
	r.seeded = true
	if r.config.Logger != nil {
		r.config.Logger.Debug("guest notes seeded", "count", len(seed))
	}
	return nil
}

func (r *Repository) index(key string) int {
	return slices.IndexFunc(r.notes, func(n core.Note) bool { return n.HasKey(key) })
}

func (r *Repository) log(msg, key string) {
	if r.config.Logger != nil {
		r.config.Logger.Debug(msg, "key", key)
	}
}

func cloneAll(notes []core.Note) []core.Note {
	out := make([]core.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}

var _ core.Repository = (*Repository)(nil)
