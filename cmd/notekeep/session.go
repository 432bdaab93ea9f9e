package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/aretw0/notekeep"
	"github.com/aretw0/notekeep/internal/config"
	"github.com/aretw0/notekeep/pkg/auth"
	"github.com/aretw0/notekeep/pkg/kv"
)

// env is the local side of a CLI invocation: the opened store and the
// credential kept in it.
type env struct {
	cfg   config.Config
	dir   string
	store kv.Store
	creds *auth.Store
	close func() error
}

func openEnv(c config.Config) (*env, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	dir, err := notekeep.ResolveDataDir(wd, c.Storage.Dir)
	if err != nil {
		return nil, err
	}
	store, closeFn, err := notekeep.OpenStore(c.Storage.Backend, dir, slog.Default())
	if err != nil {
		return nil, err
	}
	slog.Debug("store opened", "backend", c.Storage.Backend, "dir", dir)
	return &env{
		cfg:   c,
		dir:   dir,
		store: store,
		creds: auth.NewStore(store, slog.Default()),
		close: closeFn,
	}, nil
}

// newApp starts a session over the env store and fetches the collection.
// A failed fetch is reported through the App error and is not fatal.
func (e *env) newApp(ctx context.Context) (*notekeep.App, error) {
	codec, err := kv.CodecFor(e.cfg.Storage.Format)
	if err != nil {
		return nil, err
	}
	a, err := notekeep.New(ctx,
		notekeep.WithStore(e.store),
		notekeep.WithCodec(codec),
		notekeep.WithBaseURL(e.cfg.API.BaseURL),
		notekeep.WithHTTPClient(&http.Client{Timeout: e.cfg.API.Timeout}),
		notekeep.WithLogger(slog.Default()),
	)
	if err != nil {
		return nil, err
	}
	if err := a.Load(ctx); err != nil {
		slog.Warn("fetch failed", "error", err)
	}
	return a, nil
}

// withApp runs fn with a loaded session and releases the store afterwards.
func withApp(fn func(ctx context.Context, a *notekeep.App) error) error {
	e, err := openEnv(cfg)
	if err != nil {
		return err
	}
	defer e.close()

	ctx := context.Background()
	a, err := e.newApp(ctx)
	if err != nil {
		return err
	}
	return fn(ctx, a)
}
