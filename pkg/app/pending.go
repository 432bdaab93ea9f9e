package app

import "github.com/aretw0/notekeep/pkg/core"

// Op names a control whose request can be in flight.
type Op string

const (
	OpLoad    Op = "load"
	OpSave    Op = "save"
	OpArchive Op = "archive"
	OpDelete  Op = "delete"
	OpSelect  Op = "select"
)

// Pending reports whether op has a request in flight.
func (a *App) Pending(op Op) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending[op]
}

// beginLocked marks op in flight. Callers hold a.mu.
func (a *App) beginLocked(op Op) error {
	if a.pending[op] {
		return core.ErrBusy
	}
	a.pending[op] = true
	return nil
}

// endLocked clears op. Callers hold a.mu.
func (a *App) endLocked(op Op) {
	delete(a.pending, op)
}

func (a *App) pendingList() []Op {
	var ops []Op
	for _, op := range []Op{OpLoad, OpSave, OpArchive, OpDelete, OpSelect} {
		if a.pending[op] {
			ops = append(ops, op)
		}
	}
	return ops
}
