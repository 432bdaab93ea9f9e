package app

import (
	"fmt"

	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/view"
)

// dispatchLocked applies action, keeps the store filter in step with the
// navigation state and drops a draft whose note is no longer selected.
// Callers hold a.mu.
func (a *App) dispatchLocked(action view.Action) {
	prev := a.nav
	a.nav = view.Reduce(a.nav, action)
	if a.nav.Filter != a.notes.Filter() {
		a.notes.SetFilter(a.nav.Filter)
	}
	if a.draft != nil && a.draft.Open() && !a.draft.Note().HasKey(a.nav.SelectedID) {
		a.debug("draft dropped", "key", a.draft.Key())
		a.draft.Discard()
		a.draft = nil
	}
	if prev.View != a.nav.View {
		a.debug("view changed", "from", prev.View, "to", a.nav.View)
	}
}

// Navigate runs the footer navigation for v. NoteDetail is entered by
// selecting a note, not by navigation.
func (a *App) Navigate(v view.View) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var action view.Action
	switch v {
	case view.Home:
		action = view.NavigateHome{}
	case view.Search:
		action = view.NavigateSearch{}
	case view.Archive:
		action = view.NavigateArchive{}
	case view.Tags:
		action = view.NavigateTags{FirstTag: a.notes.FirstTag()}
	case view.Settings:
		action = view.NavigateSettings{}
	default:
		return fmt.Errorf("cannot navigate to %q", v)
	}
	a.dispatchLocked(action)
	return nil
}

// CloseSearch closes the search pane.
func (a *App) CloseSearch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatchLocked(view.CloseSearch{})
}

// SetQuery narrows the visible notes.
func (a *App) SetQuery(q string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatchLocked(view.SetQuery{Query: q})
}

// SetFilter replaces the collection filter.
func (a *App) SetFilter(f core.Filter) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatchLocked(view.SetFilter{Filter: f})
}

// ClearSelection deselects the current note.
func (a *App) ClearSelection() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatchLocked(view.ClearSelection{})
}

// BackToSearch leaves the detail pane for the search view.
func (a *App) BackToSearch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatchLocked(view.BackToSearch{})
}

// BackFromTag leaves the detail pane for the unfiltered tags view.
func (a *App) BackFromTag() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatchLocked(view.BackFromTag{})
}
