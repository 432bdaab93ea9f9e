package local

import "github.com/aretw0/introspection"

// RepositoryState is the introspection snapshot of a guest repository.
type RepositoryState struct {
	Key    string `json:"key"`
	Codec  string `json:"codec"`
	Loaded bool   `json:"loaded"`
	Seeded bool   `json:"seeded"`
	Notes  int    `json:"notes"`
	Writes int    `json:"writes"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()

	codec := "json"
	if r.config.Codec != nil {
		codec = r.config.Codec.Name()
	}
	return RepositoryState{
		Key:    StorageKey,
		Codec:  codec,
		Loaded: r.loaded,
		Seeded: r.seeded,
		Notes:  len(r.notes),
		Writes: r.writes,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "guest-repository"
}

var (
	_ introspection.Introspectable = (*Repository)(nil)
	_ introspection.Component      = (*Repository)(nil)
)
