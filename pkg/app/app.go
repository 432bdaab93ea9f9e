// Package app holds the application state of one session: the note store,
// the navigation state and the open draft, plus the actions that move them
// forward through the persistence adapter.
//
// Every mutation is confirm-then-apply: the adapter call runs first and the
// in-memory state changes only when it succeeds. The App mutex is released
// while an adapter call is in flight; a second request for the same control
// fails with core.ErrBusy until the first one returns.
package app

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/draft"
	"github.com/aretw0/notekeep/pkg/store"
	"github.com/aretw0/notekeep/pkg/view"
)

var (
	// ErrNoDraft is returned by draft actions when no draft is open.
	ErrNoDraft = errors.New("no draft is open")
	// ErrNoSelection is returned by actions that need a selected note.
	ErrNoSelection = errors.New("no note selected")
)

// Component-scoped failure messages.
const (
	MsgSaveFailed    = "Failed to save note"
	MsgArchiveFailed = "Failed to archive note"
	MsgDeleteFailed  = "Failed to delete note"
	MsgFetchFailed   = "Failed to fetch notes"
	MsgNotAuthorized = "Not authenticated"
)

// Config configures an App.
type Config struct {
	Repository core.Repository
	Logger     *slog.Logger
	Now        func() time.Time
	NewID      func() string
}

// LoadState tracks the collection fetch.
type LoadState struct {
	Loaded     bool   `json:"loaded"`
	Loading    bool   `json:"loading"`
	Refetching bool   `json:"refetching"`
	Err        string `json:"error,omitempty"`
}

// App is the application state object. It is safe for concurrent use.
type App struct {
	repo   core.Repository
	logger *slog.Logger
	now    func() time.Time
	newID  func() string

	mu      sync.Mutex
	notes   *store.Store
	nav     view.State
	draft   *draft.Session
	errMsg  string
	load    LoadState
	pending map[Op]bool
}

// New returns an App over config.Repository with an empty store.
func New(config Config) (*App, error) {
	if config.Repository == nil {
		return nil, errors.New("app: repository is required")
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.NewID == nil {
		config.NewID = uuid.NewString
	}
	return &App{
		repo:    config.Repository,
		logger:  config.Logger,
		now:     config.Now,
		newID:   config.NewID,
		notes:   store.New(),
		nav:     view.Initial(),
		pending: make(map[Op]bool),
	}, nil
}

// Mode reports the session mode of the underlying repository.
func (a *App) Mode() core.Mode {
	return a.repo.Mode()
}

// Repository returns the persistence adapter.
func (a *App) Repository() core.Repository {
	return a.repo
}

// View returns the navigation state.
func (a *App) View() view.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nav
}

// Notes returns the whole collection.
func (a *App) Notes() []core.Note {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.notes.All()
}

// Visible returns the notes to render: filtered, narrowed by the query and
// in display order.
func (a *App) Visible() []core.Note {
	a.mu.Lock()
	defer a.mu.Unlock()
	return store.SortForDisplay(a.notes.Visible(a.nav.Query))
}

// Tags returns the distinct tags of the collection.
func (a *App) Tags() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.notes.Tags()
}

// Get returns a stored note.
func (a *App) Get(key string) (core.Note, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.notes.Get(key)
}

// Selected returns the selected note. An open draft shadows the stored note
// it edits.
func (a *App) Selected() (core.Note, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.nav.HasSelection() {
		return core.Note{}, false
	}
	if a.draft != nil && a.draft.Open() && a.draft.Note().HasKey(a.nav.SelectedID) {
		return a.draft.Note(), true
	}
	return a.notes.Get(a.nav.SelectedID)
}

// Draft returns the open draft, if any.
func (a *App) Draft() (core.Note, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.draft == nil || !a.draft.Open() {
		return core.Note{}, false
	}
	return a.draft.Note(), true
}

// Error returns the message shown to the user, or "". While a draft is
// open its own save error takes precedence.
func (a *App) Error() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.errorLocked()
}

func (a *App) errorLocked() string {
	if a.draft != nil && a.draft.Open() {
		if msg := a.draft.Err(); msg != "" {
			return msg
		}
	}
	return a.errMsg
}

// LoadState returns the state of the last fetch.
func (a *App) LoadState() LoadState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.load
}

// failureMessage maps err to the message shown next to the control.
func failureMessage(err error, fallback string) string {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, core.ErrAuth):
		return MsgNotAuthorized
	default:
		return fallback
	}
}

func (a *App) debug(msg string, args ...any) {
	if a.logger != nil {
		a.logger.Debug(msg, args...)
	}
}

func (a *App) fail(msg string, err error, args ...any) {
	if a.logger != nil {
		a.logger.Error(msg, append(args, "error", err)...)
	}
}
