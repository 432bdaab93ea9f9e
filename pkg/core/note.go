package core

import (
	"slices"
	"time"
)

// SentinelTitle marks a note that was created but never given a real title.
const SentinelTitle = "Untitled Note"

// Note is the central entity of the domain.
//
// ID is generated by the client when the note is first drafted. StorageID is
// assigned by the server for notes persisted remotely; once present it is the
// identity used everywhere (see Key).
type Note struct {
	ID         string    `json:"id" yaml:"id"`
	StorageID  string    `json:"_id,omitempty" yaml:"_id,omitempty"`
	Title      string    `json:"title" yaml:"title"`
	Content    string    `json:"content" yaml:"content"`
	Tags       []string  `json:"tags" yaml:"tags"`
	IsArchived bool      `json:"isArchived" yaml:"isArchived"`
	LastEdited time.Time `json:"lastEdited" yaml:"lastEdited"`
	IsDummy    bool      `json:"isDummy,omitempty" yaml:"isDummy,omitempty"`
}

// Key returns the identifier used to address the note in stores and adapters.
func (n Note) Key() string {
	if n.StorageID != "" {
		return n.StorageID
	}
	return n.ID
}

// HasKey reports whether key addresses this note by either of its identifiers.
func (n Note) HasKey(key string) bool {
	if key == "" {
		return false
	}
	return n.ID == key || n.StorageID == key
}

// IsPlaceholder reports whether the note still carries the sentinel title.
func (n Note) IsPlaceholder() bool {
	return n.Title == SentinelTitle
}

// HasTag reports whether tag is one of the note's tags.
func (n Note) HasTag(tag string) bool {
	return slices.Contains(n.Tags, tag)
}

// Clone returns a copy that shares no slices with n.
func (n Note) Clone() Note {
	n.Tags = slices.Clone(n.Tags)
	return n
}
