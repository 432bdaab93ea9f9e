package app

import (
	"github.com/aretw0/introspection"

	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/view"
)

// AppState exposes internal state for observability.
type AppState struct {
	Mode           core.Mode  `json:"mode"`
	RepositoryType string     `json:"repository_type"`
	Repository     any        `json:"repository,omitempty"`
	View           view.State `json:"view"`
	Notes          int        `json:"notes"`
	Filtered       int        `json:"filtered"`
	DraftOpen      bool       `json:"draft_open"`
	DraftKey       string     `json:"draft_key,omitempty"`
	Pending        []Op       `json:"pending,omitempty"`
	Error          string     `json:"error,omitempty"`
	Load           LoadState  `json:"load"`
}

// State implements introspection.Introspectable.
func (a *App) State() any {
	var repoState any
	if intro, ok := a.repo.(introspection.Introspectable); ok {
		repoState = intro.State()
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	s := AppState{
		Mode:           a.repo.Mode(),
		RepositoryType: core.RepositoryType(a.repo),
		Repository:     repoState,
		View:           a.nav,
		Notes:          a.notes.Len(),
		Filtered:       len(a.notes.Filtered()),
		Pending:        a.pendingList(),
		Error:          a.errorLocked(),
		Load:           a.load,
	}
	if a.draft != nil && a.draft.Open() {
		s.DraftOpen = true
		s.DraftKey = a.draft.Key()
	}
	return s
}

// ComponentType implements introspection.Component.
func (a *App) ComponentType() string {
	return "app"
}

var (
	_ introspection.Introspectable = (*App)(nil)
	_ introspection.Component      = (*App)(nil)
)
