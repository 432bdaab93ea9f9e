package platform

import (
	"context"

	"github.com/aretw0/notekeep/pkg/adapters/local"
	"github.com/aretw0/notekeep/pkg/adapters/remote"
	"github.com/aretw0/notekeep/pkg/app"
	"github.com/aretw0/notekeep/pkg/auth"
	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/kv"
)

// New builds an App. The session mode is decided here, once: a token
// (explicit or stored) selects the remote adapter, otherwise the guest
// adapter over the local store is used.
//
//	a, err := platform.New(ctx, platform.WithStore(store), platform.WithBaseURL(url))
func New(ctx context.Context, opts ...Option) (*app.App, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	repo, err := newRepository(ctx, o)
	if err != nil {
		return nil, err
	}
	if err := repo.Initialize(ctx); err != nil {
		return nil, err
	}

	if o.logger != nil {
		o.logger.Debug("session started", "mode", repo.Mode(), "repository", core.RepositoryType(repo))
	}

	return app.New(app.Config{
		Repository: repo,
		Logger:     o.logger,
		Now:        o.now,
		NewID:      o.newID,
	})
}

// NewRepository resolves the persistence adapter for the given options.
func NewRepository(ctx context.Context, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return newRepository(ctx, o)
}

func newRepository(ctx context.Context, o *options) (core.Repository, error) {
	if o.repository != nil {
		return o.repository, nil
	}
	if o.store == nil {
		o.store = kv.NewMemoryStore()
	}

	var token string
	if o.token != nil {
		token = *o.token
	} else {
		stored, err := auth.NewStore(o.store, o.logger).Token(ctx)
		if err != nil {
			return nil, err
		}
		token = stored
	}

	client := remote.NewClient(remote.Config{
		BaseURL:    o.baseURL,
		Token:      token,
		HTTPClient: o.httpClient,
		Logger:     o.logger,
	})

	if core.ModeFor(token) == core.ModeAuthenticated {
		return remote.NewRepository(client), nil
	}

	cfg := local.Config{
		Store:  o.store,
		Codec:  o.codec,
		Logger: o.logger,
		Now:    o.now,
		NewID:  o.newID,
	}
	if o.seed {
		cfg.Seed = client
	}
	return local.NewRepository(cfg), nil
}
