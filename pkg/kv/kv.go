// Package kv provides the small durable key-value storage used for local
// session data: the guest note collection and the bearer credential.
//
// Three backends are available: one file per key (FileStore), a single
// SQLite database (SQLiteStore) and an in-process map (MemoryStore).
package kv

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrNotFound is returned by Get when the key was never set or was deleted.
	ErrNotFound = errors.New("key not found")
	// ErrInvalidKey is returned for keys that cannot be stored safely.
	ErrInvalidKey = errors.New("invalid key")
)

// Store is a byte-oriented key-value store. Set returns only after the value
// is durable.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Watchable is implemented by stores that can report external changes.
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// EventType is the kind of change observed on a key.
type EventType string

const (
	EventSet    EventType = "SET"
	EventDelete EventType = "DELETE"
)

// Event reports a change to a key.
type Event struct {
	Type      EventType
	Key       string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Key)
}

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateKey rejects keys that would escape a directory or collide with
// temporary files.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
