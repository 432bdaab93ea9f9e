package platform

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/kv"
)

// options holds the internal configuration for a notekeep session.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	store      kv.Store
	codec      kv.Codec
	baseURL    string
	httpClient *http.Client
	token      *string
	seed       bool
	now        func() time.Time
	newID      func() string
}

// Option defines a functional option for configuring a session.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		codec: kv.JSONCodec{},
		seed:  true,
	}
}

// WithLogger sets the logger shared by every component.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a persistence adapter, skipping mode detection.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithStore sets the local key-value store holding the guest collection and
// the credential. Defaults to an in-memory store.
func WithStore(store kv.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithCodec sets the serialization of the guest collection.
func WithCodec(codec kv.Codec) Option {
	return func(o *options) {
		o.codec = codec
	}
}

// WithBaseURL sets the notes API root (e.g. "https://notes.example/api").
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithHTTPClient replaces the HTTP client used for API calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// WithToken forces the bearer token instead of reading the stored
// credential. An empty token forces guest mode.
func WithToken(token string) Option {
	return func(o *options) {
		o.token = &token
	}
}

// WithGuestSeed enables or disables fetching demo notes for a new guest
// collection. Enabled by default.
func WithGuestSeed(enabled bool) Option {
	return func(o *options) {
		o.seed = enabled
	}
}

// WithClock replaces the time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithIDGenerator replaces the note id generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		o.newID = fn
	}
}
