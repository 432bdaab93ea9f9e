// Package auth keeps the bearer credential that decides the session mode.
//
// The core never authenticates by itself: an external login flow hands the
// token to SetToken, logout calls Clear, and the rest of the application
// reads it at startup or follows it through Watch.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/kv"
)

// TokenKey is the storage key of the bearer credential.
const TokenKey = "token"

// ErrWatchUnsupported is returned by Watch when the backing store cannot
// report changes.
var ErrWatchUnsupported = errors.New("credential store does not support watching")

// Store reads and writes the credential.
type Store struct {
	kv     kv.Store
	value  *kv.Value[string]
	logger *slog.Logger
}

// NewStore returns a credential store backed by s.
func NewStore(s kv.Store, logger *slog.Logger) *Store {
	return &Store{kv: s, value: kv.NewValue[string](s, TokenKey, kv.JSONCodec{}), logger: logger}
}

// Token returns the stored token, or "" when signed out.
func (s *Store) Token(ctx context.Context) (string, error) {
	token, _, err := s.value.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	return token, nil
}

// Mode derives the session mode from the stored token.
func (s *Store) Mode(ctx context.Context) (core.Mode, error) {
	token, err := s.Token(ctx)
	if err != nil {
		return core.ModeGuest, err
	}
	return core.ModeFor(token), nil
}

// SetToken stores token after a successful login.
func (s *Store) SetToken(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: empty token", core.ErrAuth)
	}
	if err := s.value.Save(ctx, token); err != nil {
		return fmt.Errorf("store credential: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("signed in")
	}
	return nil
}

// Clear removes the token.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.value.Delete(ctx); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	if s.logger != nil {
		s.logger.Info("signed out")
	}
	return nil
}

// Watch emits the token each time it changes ("" after logout). The channel
// is closed when ctx is done.
func (s *Store) Watch(ctx context.Context) (<-chan string, error) {
	w, ok := s.kv.(kv.Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}
	current, err := s.Token(ctx)
	if err != nil {
		return nil, err
	}
	events, err := w.Watch(ctx, TokenKey)
	if err != nil {
		return nil, err
	}

	out := make(chan string)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case _, ok := <-events:
				if !ok {
					return nil
				}
				token, err := s.Token(ctx)
				if err != nil {
					if s.logger != nil {
						s.logger.Warn("credential changed but could not be read", "error", err)
					}
					continue
				}
				if token == current {
					continue
				}
				current = token
				select {
				case out <- token:
				case <-ctx.Done():
					return nil
				}
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if s.logger != nil {
			s.logger.Error("credential watcher stopped", "error", err)
		}
	}))
	return out, nil
}
