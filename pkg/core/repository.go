package core

import "context"

// Repository defines the contract for persisting notes.
// Both session modes implement it, so callers never branch on the mode.
//
// Every mutating method returns only after the change is durable in the
// backing store; on error the backing store is unchanged.
type Repository interface {
	// Initialize ensures the underlying storage is ready.
	Initialize(ctx context.Context) error

	// Create persists a new note and returns its canonical representation.
	Create(ctx context.Context, n Note) (Note, error)

	// Update replaces the note addressed by n.Key().
	// It returns ErrNotFound if no such note exists.
	Update(ctx context.Context, n Note) (Note, error)

	// Delete removes the note addressed by key.
	// It returns ErrNotFound if no such note exists.
	Delete(ctx context.Context, key string) error

	// List returns the whole collection.
	List(ctx context.Context) ([]Note, error)

	// Mode reports which session mode the repository serves.
	Mode() Mode
}
