package view

import "github.com/aretw0/notekeep/pkg/core"

// Kind identifies an action in the transition table.
type Kind string

const (
	KindNavigateHome     Kind = "navigate_home"
	KindNavigateSearch   Kind = "navigate_search"
	KindNavigateArchive  Kind = "navigate_archive"
	KindNavigateTags     Kind = "navigate_tags"
	KindNavigateSettings Kind = "navigate_settings"
	KindSelect           Kind = "select"
	KindClearSelection   Kind = "clear_selection"
	KindCloseSearch      Kind = "close_search"
	KindSetQuery         Kind = "set_query"
	KindSetFilter        Kind = "set_filter"
	KindBackToSearch     Kind = "back_to_search"
	KindBackFromTag      Kind = "back_from_tag"
)

// Action is an input to Reduce.
type Action interface {
	Kind() Kind
}

type (
	NavigateHome    struct{}
	NavigateSearch  struct{}
	NavigateArchive struct{}
	// NavigateTags opens the tags view filtered by FirstTag, the first tag
	// of the collection ("" when no note has tags).
	NavigateTags struct{ FirstTag string }
	// NavigateSettings toggles the settings view.
	NavigateSettings struct{}
	// Select selects a note. An empty ID clears the selection.
	Select         struct{ ID string }
	ClearSelection struct{}
	CloseSearch    struct{}
	SetQuery       struct{ Query string }
	SetFilter      struct{ Filter core.Filter }
	// BackToSearch leaves the detail pane for the search view.
	BackToSearch struct{}
	// BackFromTag leaves the detail pane for the unfiltered tags view.
	BackFromTag struct{}
)

func (NavigateHome) Kind() Kind     { return KindNavigateHome }
func (NavigateSearch) Kind() Kind   { return KindNavigateSearch }
func (NavigateArchive) Kind() Kind  { return KindNavigateArchive }
func (NavigateTags) Kind() Kind     { return KindNavigateTags }
func (NavigateSettings) Kind() Kind { return KindNavigateSettings }
func (Select) Kind() Kind           { return KindSelect }
func (ClearSelection) Kind() Kind   { return KindClearSelection }
func (CloseSearch) Kind() Kind      { return KindCloseSearch }
func (SetQuery) Kind() Kind         { return KindSetQuery }
func (SetFilter) Kind() Kind        { return KindSetFilter }
func (BackToSearch) Kind() Kind     { return KindBackToSearch }
func (BackFromTag) Kind() Kind      { return KindBackFromTag }
