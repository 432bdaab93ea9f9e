package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/draft"
	"github.com/aretw0/notekeep/pkg/view"
)

// CreateNote opens a fresh draft and selects it. Nothing is stored until
// SaveDraft succeeds.
func (a *App) CreateNote() (core.Note, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending[OpSave] {
		return core.Note{}, core.ErrBusy
	}

	d := draft.New(a.newID(), a.repo.Mode(), a.now())
	a.draft = d
	a.dispatchLocked(view.Select{ID: d.Key()})
	a.errMsg = ""
	a.debug("draft created", "key", d.Key())
	return d.Note(), nil
}

// EditNote opens a draft seeded from the stored note addressed by key.
func (a *App) EditNote(key string) (core.Note, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.pending[OpSave] {
		return core.Note{}, core.ErrBusy
	}

	n, ok := a.notes.Get(key)
	if !ok {
		return core.Note{}, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	d := draft.Edit(n)
	a.draft = d
	a.dispatchLocked(view.Select{ID: n.Key()})
	a.errMsg = ""
	return d.Note(), nil
}

func (a *App) withDraft(fn func(*draft.Session) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.draft == nil || !a.draft.Open() {
		return ErrNoDraft
	}
	return fn(a.draft)
}

func (a *App) SetTitle(title string) error {
	return a.withDraft(func(d *draft.Session) error { return d.SetTitle(title) })
}

func (a *App) SetContent(content string) error {
	return a.withDraft(func(d *draft.Session) error { return d.SetContent(content) })
}

func (a *App) SetTags(tags []string) error {
	return a.withDraft(func(d *draft.Session) error { return d.SetTags(tags) })
}

// SetTagsText parses a comma separated tag list into the draft.
func (a *App) SetTagsText(text string) error {
	return a.withDraft(func(d *draft.Session) error { return d.SetTagsText(text) })
}

// SaveDraft validates and persists the open draft. A fresh draft is created,
// an edited note is updated. On success the stored result is selected.
func (a *App) SaveDraft(ctx context.Context) (core.Note, error) {
	a.mu.Lock()
	d := a.draft
	if d == nil || !d.Open() {
		a.mu.Unlock()
		return core.Note{}, ErrNoDraft
	}
	if err := a.beginLocked(OpSave); err != nil {
		a.mu.Unlock()
		return core.Note{}, err
	}
	d.ClearErr()
	n, err := d.Validate(a.now())
	if err != nil {
		d.SetErr(failureMessage(err, MsgSaveFailed))
		a.endLocked(OpSave)
		a.mu.Unlock()
		return core.Note{}, err
	}
	fresh := d.IsNew()
	a.mu.Unlock()

	var saved core.Note
	if fresh {
		saved, err = a.repo.Create(ctx, n)
	} else {
		saved, err = a.repo.Update(ctx, n)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.endLocked(OpSave)
	if err != nil {
		msg := failureMessage(err, MsgSaveFailed)
		if a.draft == d {
			d.SetErr(msg)
		} else {
			a.errMsg = msg
		}
		a.fail("save note failed", err, "key", n.Key())
		return core.Note{}, err
	}

	a.notes.Upsert(saved)
	// A draft dropped by navigation while the request was in flight no
	// longer owns the selection.
	if a.draft == d {
		d.MarkSaved(saved)
		a.draft = nil
		a.dispatchLocked(view.Select{ID: saved.Key()})
	}
	a.errMsg = ""
	a.debug("note saved", "key", saved.Key(), "created", fresh)
	return saved, nil
}

// CancelDraft discards the open draft without touching storage. A fresh
// draft also gives up the selection.
func (a *App) CancelDraft() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.errMsg = ""
	d := a.draft
	if d == nil {
		return
	}
	key, fresh := d.Key(), d.IsNew()
	d.Discard()
	a.draft = nil
	if fresh && a.nav.SelectedID == key {
		a.dispatchLocked(view.ClearSelection{})
	}
}

// SelectNote selects a stored note. A stored placeholder that is currently
// selected is deleted first; if that fails the selection does not change.
// Selecting also closes the search pane, discards any draft and clears the
// error message. An empty key clears the selection.
func (a *App) SelectNote(ctx context.Context, key string) error {
	a.mu.Lock()
	if key == "" {
		a.dispatchLocked(view.ClearSelection{})
		a.mu.Unlock()
		return nil
	}
	if !a.notes.Contains(key) {
		a.mu.Unlock()
		return fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}

	current, stored := a.notes.Get(a.nav.SelectedID)
	if stored && current.IsPlaceholder() && !current.HasKey(key) {
		if err := a.beginLocked(OpSelect); err != nil {
			a.mu.Unlock()
			return err
		}
		a.mu.Unlock()

		err := a.repo.Delete(ctx, current.Key())

		a.mu.Lock()
		a.endLocked(OpSelect)
		if err != nil && !errors.Is(err, core.ErrNotFound) {
			a.errMsg = failureMessage(err, MsgDeleteFailed)
			a.fail("placeholder cleanup failed", err, "key", current.Key())
			a.mu.Unlock()
			return err
		}
		a.notes.Remove(current.Key())
		a.debug("placeholder removed", "key", current.Key())
	}
	defer a.mu.Unlock()

	if a.draft != nil {
		a.draft.Discard()
		a.draft = nil
	}
	a.dispatchLocked(view.Select{ID: key})
	a.dispatchLocked(view.CloseSearch{})
	a.errMsg = ""
	return nil
}

// selectedStoredLocked returns the selected note if it is in the store.
func (a *App) selectedStoredLocked() (core.Note, error) {
	if !a.nav.HasSelection() {
		return core.Note{}, ErrNoSelection
	}
	n, ok := a.notes.Get(a.nav.SelectedID)
	if !ok {
		return core.Note{}, fmt.Errorf("%w: %s", ErrNoSelection, a.nav.SelectedID)
	}
	return n, nil
}

// ToggleArchive flips the archived flag of the selected note.
func (a *App) ToggleArchive(ctx context.Context) (core.Note, error) {
	a.mu.Lock()
	n, err := a.selectedStoredLocked()
	if err == nil {
		err = a.beginLocked(OpArchive)
	}
	if err != nil {
		a.mu.Unlock()
		return core.Note{}, err
	}
	n.IsArchived = !n.IsArchived
	n.LastEdited = a.now()
	a.mu.Unlock()

	updated, err := a.repo.Update(ctx, n)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.endLocked(OpArchive)
	if err != nil {
		a.errMsg = failureMessage(err, MsgArchiveFailed)
		a.fail("archive note failed", err, "key", n.Key())
		return core.Note{}, err
	}
	a.notes.Upsert(updated)
	if a.draft != nil && !a.draft.IsNew() && a.draft.Note().HasKey(updated.Key()) {
		a.draft.Adopt(updated)
	}
	a.errMsg = ""
	a.debug("note archived", "key", updated.Key(), "archived", updated.IsArchived)
	return updated, nil
}

// DeleteSelected removes the selected note and clears the selection.
// Deleting an unsaved draft only discards it.
func (a *App) DeleteSelected(ctx context.Context) error {
	a.mu.Lock()
	if a.draft != nil && a.draft.IsNew() && a.draft.Key() == a.nav.SelectedID {
		a.draft.Discard()
		a.draft = nil
		a.dispatchLocked(view.ClearSelection{})
		a.errMsg = ""
		a.mu.Unlock()
		return nil
	}
	n, err := a.selectedStoredLocked()
	if err == nil {
		err = a.beginLocked(OpDelete)
	}
	if err != nil {
		a.mu.Unlock()
		return err
	}
	a.mu.Unlock()

	err = a.repo.Delete(ctx, n.Key())

	a.mu.Lock()
	defer a.mu.Unlock()
	a.endLocked(OpDelete)
	if err != nil {
		a.errMsg = failureMessage(err, MsgDeleteFailed)
		a.fail("delete note failed", err, "key", n.Key())
		return err
	}
	a.notes.Remove(n.Key())
	if a.nav.SelectedID != "" && n.HasKey(a.nav.SelectedID) {
		a.dispatchLocked(view.ClearSelection{})
	}
	a.errMsg = ""
	a.debug("note deleted", "key", n.Key())
	return nil
}
