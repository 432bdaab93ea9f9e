package notekeep

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/notekeep/internal/platform"
	"github.com/aretw0/notekeep/pkg/app"
	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/kv"
)

// Version is the library version.
const Version = "0.1.0"

// --- Types ---

// App is the application state object of one session.
type App = app.App

// Note is a public alias for the note entity.
type Note = core.Note

// Filter is a public alias for the collection filter.
type Filter = core.Filter

// Mode is a public alias for the session mode.
type Mode = core.Mode

// --- Configuration ---

// Option defines a functional option for configuring a session.
type Option = platform.Option

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository injects a persistence adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithStore sets the local key-value store.
func WithStore(store kv.Store) Option {
	return platform.WithStore(store)
}

// WithCodec sets the serialization of the guest collection.
func WithCodec(codec kv.Codec) Option {
	return platform.WithCodec(codec)
}

// WithBaseURL sets the notes API root.
func WithBaseURL(url string) Option {
	return platform.WithBaseURL(url)
}

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return platform.WithHTTPClient(c)
}

// WithToken forces the bearer token.
func WithToken(token string) Option {
	return platform.WithToken(token)
}

// WithGuestSeed enables or disables demo notes for new guest collections.
func WithGuestSeed(enabled bool) Option {
	return platform.WithGuestSeed(enabled)
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// WithIDGenerator replaces the note id generator.
func WithIDGenerator(fn func() string) Option {
	return platform.WithIDGenerator(fn)
}

// --- Factory ---

// New starts a session. The mode is decided from the token.
func New(ctx context.Context, opts ...Option) (*App, error) {
	return platform.New(ctx, opts...)
}

// OpenStore opens a local store backend ("file", "sqlite" or "memory").
func OpenStore(backend, dir string, logger *slog.Logger) (kv.Store, func() error, error) {
	s, closer, err := platform.OpenStore(backend, dir, logger)
	if err != nil {
		return nil, nil, err
	}
	return s, closer.Close, nil
}

// ResolveDataDir picks the local data directory.
func ResolveDataDir(startDir, override string) (string, error) {
	return platform.ResolveDataDir(startDir, override)
}
