package app

import "context"

// Load fetches the collection from the repository and replaces the store.
// On failure the store keeps its last known good contents.
func (a *App) Load(ctx context.Context) error {
	a.mu.Lock()
	if err := a.beginLocked(OpLoad); err != nil {
		a.mu.Unlock()
		return err
	}
	a.load.Err = ""
	if a.notes.Len() == 0 {
		a.load.Loading = true
	} else {
		a.load.Refetching = true
	}
	a.mu.Unlock()

	notes, err := a.repo.List(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.endLocked(OpLoad)
	a.load.Loading = false
	a.load.Refetching = false
	if err != nil {
		a.load.Err = failureMessage(err, MsgFetchFailed)
		a.fail("fetch notes failed", err)
		return err
	}
	a.notes.Load(notes)
	a.load.Loaded = true
	a.debug("notes loaded", "count", len(notes), "mode", a.repo.Mode())
	return nil
}
