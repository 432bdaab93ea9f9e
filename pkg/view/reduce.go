package view

import "github.com/aretw0/notekeep/pkg/core"

type transition func(State, Action) State

var transitions = map[Kind]transition{
	KindNavigateHome: func(s State, _ Action) State {
		return enter(s, Home, core.FilterAll)
	},
	KindNavigateSearch: func(s State, _ Action) State {
		return enter(s, Search, core.FilterAll)
	},
	KindNavigateArchive: func(s State, _ Action) State {
		return enter(s, Archive, core.FilterArchived)
	},
	KindNavigateTags: func(s State, a Action) State {
		f := core.FilterAll
		if tag := a.(NavigateTags).FirstTag; tag != "" {
			f = core.TagFilter(tag)
		}
		return enter(s, Tags, f)
	},
	KindNavigateSettings: func(s State, _ Action) State {
		if s.View == Settings || s.SettingsOpen {
			query := s.Query
			s = enter(s, Home, core.FilterAll)
			s.Query = query
			return s
		}
		s.View = Settings
		s.SelectedID = ""
		s.SearchOpen = false
		s.SettingsOpen = true
		return s
	},
	KindSelect: func(s State, a Action) State {
		id := a.(Select).ID
		if id == "" {
			return clearSelection(s)
		}
		s.SelectedID = id
		s.View = NoteDetail
		return s
	},
	KindClearSelection: func(s State, _ Action) State {
		return clearSelection(s)
	},
	KindCloseSearch: func(s State, _ Action) State {
		s.SearchOpen = false
		if s.View == Search {
			s.View = Home
		}
		return s
	},
	KindSetQuery: func(s State, a Action) State {
		s.Query = a.(SetQuery).Query
		return s
	},
	KindSetFilter: func(s State, a Action) State {
		s.Filter = a.(SetFilter).Filter
		return s
	},
	KindBackToSearch: func(s State, _ Action) State {
		s.SelectedID = ""
		s.View = Search
		s.SearchOpen = true
		return s
	},
	KindBackFromTag: func(s State, _ Action) State {
		return enter(s, Tags, core.FilterAll)
	},
}

// Reduce applies a to s. Unknown actions leave the state unchanged.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	t, ok := transitions[a.Kind()]
	if !ok {
		return s
	}
	return t(s, a)
}

// enter moves to a top-level view: selection cleared, query cleared, settings
// closed and the search pane open only for the search view.
func enter(s State, v View, f core.Filter) State {
	s.View = v
	s.SelectedID = ""
	s.Filter = f
	s.Query = ""
	s.SettingsOpen = false
	s.SearchOpen = v == Search
	return s
}

func clearSelection(s State) State {
	s.SelectedID = ""
	if s.View == NoteDetail {
		s.View = Home
	}
	return s
}
