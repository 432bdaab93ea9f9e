// Package store holds the in-memory note collection of a session and its
// derived views.
//
// A Store only reflects state that the persistence layer has already
// confirmed. It is owned by a single goroutine (the application state object)
// and is not safe for concurrent use.
package store

import (
	"slices"

	"github.com/aretw0/notekeep/pkg/core"
)

// Store is the authoritative in-memory collection for the current session.
type Store struct {
	notes    []core.Note
	filter   core.Filter
	filtered []core.Note
}

// New returns an empty store with FilterAll.
func New() *Store {
	return &Store{filter: core.FilterAll}
}

// Load replaces the whole collection.
func (s *Store) Load(notes []core.Note) {
	s.notes = make([]core.Note, 0, len(notes))
	for _, n := range notes {
		s.notes = append(s.notes, n.Clone())
	}
	s.recompute()
}

// Upsert inserts n if no note shares its key, otherwise replaces the existing
// entry in place.
func (s *Store) Upsert(n core.Note) {
	n = n.Clone()
	if i := s.index(n.Key()); i >= 0 {
		s.notes[i] = n
	} else if i := s.index(n.ID); i >= 0 {
		// The server assigned a storage id to a note we only knew by its
		// client id.
		s.notes[i] = n
	} else {
		s.notes = append(s.notes, n)
	}
	s.recompute()
}

// Remove deletes the note addressed by key. Absent keys are a no-op.
func (s *Store) Remove(key string) {
	if i := s.index(key); i >= 0 {
		s.notes = slices.Delete(s.notes, i, i+1)
	}
	s.recompute()
}

// SetFilter changes the active filter.
func (s *Store) SetFilter(f core.Filter) {
	s.filter = f
	s.recompute()
}

// Filter returns the active filter.
func (s *Store) Filter() core.Filter {
	return s.filter
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []core.Note {
	return cloneAll(s.notes)
}

// Filtered returns a copy of the filtered view.
func (s *Store) Filtered() []core.Note {
	return cloneAll(s.filtered)
}

// Visible returns the filtered view narrowed by query.
func (s *Store) Visible(query string) []core.Note {
	return Visible(s.Filtered(), query)
}

// Get returns the note addressed by key.
func (s *Store) Get(key string) (core.Note, bool) {
	if i := s.index(key); i >= 0 {
		return s.notes[i].Clone(), true
	}
	return core.Note{}, false
}

// Contains reports whether a note is addressed by key.
func (s *Store) Contains(key string) bool {
	return s.index(key) >= 0
}

// Len returns the collection size.
func (s *Store) Len() int {
	return len(s.notes)
}

// FirstTag returns the first non-empty tag found walking the collection in
// order, or "" if no note has tags.
func (s *Store) FirstTag() string {
	for _, n := range s.notes {
		for _, t := range n.Tags {
			if t != "" {
				return t
			}
		}
	}
	return ""
}

// Tags returns the distinct tags in first-seen order.
func (s *Store) Tags() []string {
	seen := make(map[string]bool)
	var out []string
	for _, n := range s.notes {
		for _, t := range n.Tags {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

func (s *Store) index(key string) int {
	return slices.IndexFunc(s.notes, func(n core.Note) bool { return n.HasKey(key) })
}

func (s *Store) recompute() {
	s.filtered = ApplyFilter(s.notes, s.filter)
}

func cloneAll(notes []core.Note) []core.Note {
	out := make([]core.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}
