package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/notekeep/pkg/core"
	"github.com/aretw0/notekeep/pkg/view"
)

func TestReduce_Transitions(t *testing.T) {
	detail := view.State{View: view.NoteDetail, SelectedID: "n1", Filter: core.TagFilter("work"), Query: "foo"}
	searching := view.State{View: view.Search, SearchOpen: true, Filter: core.FilterAll, Query: "foo"}
	settings := view.State{View: view.Settings, SettingsOpen: true, Filter: core.FilterAll}

	tests := []struct {
		name   string
		from   view.State
		action view.Action
		want   view.State
	}{
		{
			name:   "home resets everything",
			from:   detail,
			action: view.NavigateHome{},
			want:   view.State{View: view.Home, Filter: core.FilterAll},
		},
		{
			name:   "search opens the search pane",
			from:   detail,
			action: view.NavigateSearch{},
			want:   view.State{View: view.Search, SearchOpen: true, Filter: core.FilterAll},
		},
		{
			name:   "archive filters archived",
			from:   searching,
			action: view.NavigateArchive{},
			want:   view.State{View: view.Archive, Filter: core.FilterArchived},
		},
		{
			name:   "tags with a first tag",
			from:   detail,
			action: view.NavigateTags{FirstTag: "travel"},
			want:   view.State{View: view.Tags, Filter: core.TagFilter("travel")},
		},
		{
			name:   "tags without tags falls back to all",
			from:   view.Initial(),
			action: view.NavigateTags{},
			want:   view.State{View: view.Tags, Filter: core.FilterAll},
		},
		{
			name:   "settings opens",
			from:   detail,
			action: view.NavigateSettings{},
			want:   view.State{View: view.Settings, SettingsOpen: true, Filter: core.TagFilter("work"), Query: "foo"},
		},
		{
			name:   "settings toggles closed",
			from:   settings,
			action: view.NavigateSettings{},
			want:   view.State{View: view.Home, Filter: core.FilterAll},
		},
		{
			name:   "settings closes when only the pane is open",
			from:   view.State{View: view.Archive, SettingsOpen: true, Filter: core.FilterArchived},
			action: view.NavigateSettings{},
			want:   view.State{View: view.Home, Filter: core.FilterAll},
		},
		{
			name:   "select forces detail",
			from:   searching,
			action: view.Select{ID: "n2"},
			want:   view.State{View: view.NoteDetail, SelectedID: "n2", SearchOpen: true, Filter: core.FilterAll, Query: "foo"},
		},
		{
			name:   "select empty clears",
			from:   detail,
			action: view.Select{},
			want:   view.State{View: view.Home, Filter: core.TagFilter("work"), Query: "foo"},
		},
		{
			name:   "clear selection outside detail keeps the view",
			from:   view.State{View: view.Archive, SelectedID: "n1", Filter: core.FilterArchived},
			action: view.ClearSelection{},
			want:   view.State{View: view.Archive, Filter: core.FilterArchived},
		},
		{
			name:   "close search from search goes home",
			from:   searching,
			action: view.CloseSearch{},
			want:   view.State{View: view.Home, Filter: core.FilterAll, Query: "foo"},
		},
		{
			name:   "close search elsewhere keeps the view",
			from:   view.State{View: view.NoteDetail, SelectedID: "n1", SearchOpen: true},
			action: view.CloseSearch{},
			want:   view.State{View: view.NoteDetail, SelectedID: "n1"},
		},
		{
			name:   "set query",
			from:   searching,
			action: view.SetQuery{Query: "bar"},
			want:   view.State{View: view.Search, SearchOpen: true, Filter: core.FilterAll, Query: "bar"},
		},
		{
			name:   "set filter",
			from:   view.Initial(),
			action: view.SetFilter{Filter: core.FilterArchived},
			want:   view.State{View: view.Home, Filter: core.FilterArchived},
		},
		{
			name:   "back to search",
			from:   detail,
			action: view.BackToSearch{},
			want:   view.State{View: view.Search, SearchOpen: true, Filter: core.TagFilter("work"), Query: "foo"},
		},
		{
			name:   "back from tag",
			from:   detail,
			action: view.BackFromTag{},
			want:   view.State{View: view.Tags, Filter: core.FilterAll},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, view.Reduce(tt.from, tt.action))
		})
	}
}

func TestReduce_NilActionIsNoop(t *testing.T) {
	s := view.Initial()
	assert.Equal(t, s, view.Reduce(s, nil))
}

func TestReduce_SelectThenClearReturnsHome(t *testing.T) {
	s := view.Reduce(view.Initial(), view.Select{ID: "x"})
	assert.True(t, s.HasSelection())
	assert.Equal(t, view.NoteDetail, s.View)

	s = view.Reduce(s, view.ClearSelection{})
	assert.False(t, s.HasSelection())
	assert.Equal(t, view.Home, s.View)
}
