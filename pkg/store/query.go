package store

import (
	"cmp"
	"slices"
	"strings"

	"github.com/aretw0/notekeep/pkg/core"
)

// ApplyFilter returns the notes passing f, keeping their relative order.
func ApplyFilter(notes []core.Note, f core.Filter) []core.Note {
	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if f.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// Visible narrows notes to those whose title, content or any tag contains
// query, ignoring case. A blank query returns notes unchanged.
func Visible(notes []core.Note, query string) []core.Note {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes
	}
	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if matches(n, q) {
			out = append(out, n)
		}
	}
	return out
}

func matches(n core.Note, q string) bool {
	if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	return slices.ContainsFunc(n.Tags, func(t string) bool {
		return strings.Contains(strings.ToLower(t), q)
	})
}

// SortForDisplay returns a copy ordered for rendering: placeholder notes
// first, then most recently edited first.
func SortForDisplay(notes []core.Note) []core.Note {
	out := slices.Clone(notes)
	slices.SortStableFunc(out, func(a, b core.Note) int {
		if a.IsPlaceholder() != b.IsPlaceholder() {
			if a.IsPlaceholder() {
				return -1
			}
			return 1
		}
		return cmp.Compare(b.LastEdited.UnixNano(), a.LastEdited.UnixNano())
	})
	return out
}
