package remote

import (
	"context"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/notekeep/pkg/core"
)

// Repository is the authenticated implementation of core.Repository.
type Repository struct {
	client *Client

	mu       sync.Mutex
	requests int
	failures int
	lastErr  string
}

// NewRepository wraps client.
func NewRepository(client *Client) *Repository {
	return &Repository{client: client}
}

func (r *Repository) Mode() core.Mode {
	return core.ModeAuthenticated
}

// Initialize fails with core.ErrAuth when no token is configured.
func (r *Repository) Initialize(ctx context.Context) error {
	if !r.client.HasToken() {
		return core.ErrAuth
	}
	return nil
}

func (r *Repository) List(ctx context.Context) ([]core.Note, error) {
	notes, err := r.client.ListNotes(ctx)
	r.track(err)
	return notes, err
}

// Create posts n. The client id of the draft is kept when the server does
// not echo one.
func (r *Repository) Create(ctx context.Context, n core.Note) (core.Note, error) {
	created, err := r.client.CreateNote(ctx, n)
	r.track(err)
	if err != nil {
		return core.Note{}, err
	}
	if created.ID == "" {
		created.ID = n.ID
	}
	return created, nil
}

func (r *Repository) Update(ctx context.Context, n core.Note) (core.Note, error) {
	updated, err := r.client.UpdateNote(ctx, n)
	r.track(err)
	if err != nil {
		return core.Note{}, err
	}
	if updated.ID == "" {
		updated.ID = n.ID
	}
	return updated, nil
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	err := r.client.DeleteNote(ctx, key)
	r.track(err)
	return err
}

func (r *Repository) track(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests++
	if err != nil {
		r.failures++
		r.lastErr = err.Error()
	}
}

// RepositoryState is the introspection snapshot of a remote repository.
type RepositoryState struct {
	BaseURL   string `json:"base_url"`
	HasToken  bool   `json:"has_token"`
	Requests  int    `json:"requests"`
	Failures  int    `json:"failures"`
	LastError string `json:"last_error,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RepositoryState{
		BaseURL:   r.client.BaseURL(),
		HasToken:  r.client.HasToken(),
		Requests:  r.requests,
		Failures:  r.failures,
		LastError: r.lastErr,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "remote-repository"
}

var (
	_ core.Repository              = (*Repository)(nil)
	_ introspection.Introspectable = (*Repository)(nil)
	_ introspection.Component      = (*Repository)(nil)
)
