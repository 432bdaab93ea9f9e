// Package view implements the top-level view and selection state machine.
//
// State is a value; Reduce applies one Action and returns the next State.
// Every transition is listed in a single table so the effects of a navigation
// are applied together in one step.
package view

import "github.com/aretw0/notekeep/pkg/core"

// View is the active top-level screen.
type View string

const (
	Home       View = "home"
	Search     View = "search"
	Archive    View = "archive"
	Tags       View = "tags"
	Settings   View = "settings"
	NoteDetail View = "noteDetail"
)

// State is the full navigation state of a session.
type State struct {
	View         View        `json:"view"`
	SelectedID   string      `json:"selected_id,omitempty"`
	SearchOpen   bool        `json:"search_open"`
	SettingsOpen bool        `json:"settings_open"`
	Filter       core.Filter `json:"filter"`
	Query        string      `json:"query,omitempty"`
}

// Initial returns the state of a fresh session.
func Initial() State {
	return State{View: Home, Filter: core.FilterAll}
}

// HasSelection reports whether a note is selected.
func (s State) HasSelection() bool {
	return s.SelectedID != ""
}
