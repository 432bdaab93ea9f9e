// Package draft manages the lifecycle of a note being edited before it is
// persisted.
package draft

import (
	"errors"
	"strings"
	"time"

	"github.com/aretw0/notekeep/pkg/core"
)

// ErrClosed is returned when a saved or discarded session is used.
var ErrClosed = errors.New("draft session is closed")

// Status is the lifecycle state of a Session.
type Status string

const (
	StatusDrafting  Status = "drafting"
	StatusSaved     Status = "saved"
	StatusDiscarded Status = "discarded"
)

// Validation messages.
const (
	MsgTitleEmpty   = "Title cannot be empty"
	MsgContentEmpty = "Content cannot be empty"
	MsgTagsEmpty    = "You must add at least one tag"
)

// Session holds one in-progress note.
type Session struct {
	note   core.Note
	fresh  bool
	status Status
	err    string
}

// New starts a session for a note that does not exist yet.
func New(id string, mode core.Mode, now time.Time) *Session {
	return &Session{
		note: core.Note{
			ID:         id,
			Title:      core.SentinelTitle,
			Tags:       []string{},
			LastEdited: now,
			IsDummy:    mode == core.ModeGuest,
		},
		fresh:  true,
		status: StatusDrafting,
	}
}

// Edit starts a session seeded from a stored note.
func Edit(n core.Note) *Session {
	return &Session{note: n.Clone(), status: StatusDrafting}
}

// Note returns the current draft contents.
func (s *Session) Note() core.Note {
	return s.note.Clone()
}

// Key returns the key of the note under edit.
func (s *Session) Key() string {
	return s.note.Key()
}

// IsNew reports whether the draft has never been persisted.
func (s *Session) IsNew() bool {
	return s.fresh
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	return s.status
}

// Open reports whether the session still accepts edits.
func (s *Session) Open() bool {
	return s.status == StatusDrafting
}

// SetTitle replaces the title. An empty title restores the sentinel.
func (s *Session) SetTitle(title string) error {
	if !s.Open() {
		return ErrClosed
	}
	if title == "" {
		title = core.SentinelTitle
	}
	s.note.Title = title
	return nil
}

func (s *Session) SetContent(content string) error {
	if !s.Open() {
		return ErrClosed
	}
	s.note.Content = content
	return nil
}

// SetTags replaces the tags with the trimmed, non-empty entries of tags.
func (s *Session) SetTags(tags []string) error {
	if !s.Open() {
		return ErrClosed
	}
	s.note.Tags = cleanTags(tags)
	return nil
}

// SetTagsText parses a comma separated tag list.
func (s *Session) SetTagsText(text string) error {
	return s.SetTags(strings.Split(text, ","))
}

// Validate checks the draft and returns the note ready for persistence,
// with its title and content trimmed and LastEdited set to now.
// Failures are *core.ValidationError.
func (s *Session) Validate(now time.Time) (core.Note, error) {
	if !s.Open() {
		return core.Note{}, ErrClosed
	}
	n := s.note.Clone()
	n.Title = strings.TrimSpace(n.Title)
	n.Content = strings.TrimSpace(n.Content)
	n.Tags = cleanTags(n.Tags)

	switch {
	case n.Title == "" || n.Title == core.SentinelTitle:
		return core.Note{}, &core.ValidationError{Field: "title", Message: MsgTitleEmpty}
	case n.Content == "":
		return core.Note{}, &core.ValidationError{Field: "content", Message: MsgContentEmpty}
	case len(n.Tags) == 0:
		return core.Note{}, &core.ValidationError{Field: "tags", Message: MsgTagsEmpty}
	}
	n.LastEdited = now
	return n, nil
}

// Adopt takes the stored state of a note changed outside the editor (its
// archived flag, last edit time and storage id) while keeping the pending
// title, content and tags.
func (s *Session) Adopt(stored core.Note) {
	if !s.Open() {
		return
	}
	s.note.IsArchived = stored.IsArchived
	s.note.LastEdited = stored.LastEdited
	if stored.StorageID != "" {
		s.note.StorageID = stored.StorageID
	}
}

// MarkSaved closes the session after a successful save.
func (s *Session) MarkSaved(saved core.Note) {
	s.note = saved.Clone()
	s.fresh = false
	s.status = StatusSaved
	s.err = ""
}

// Discard closes the session without saving.
func (s *Session) Discard() {
	if s.Open() {
		s.status = StatusDiscarded
	}
	s.err = ""
}

// Err returns the message shown next to the editor, if any.
func (s *Session) Err() string {
	return s.err
}

func (s *Session) SetErr(msg string) {
	s.err = msg
}

func (s *Session) ClearErr() {
	s.err = ""
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
