// Package notekeep is the composition root of the notekeep client core.
//
// It connects the session state (pkg/app) with the persistence adapters
// (pkg/adapters/local for guests, pkg/adapters/remote for signed-in users)
// using the Hexagonal Architecture pattern.
//
// Features:
//
//   - **One adapter interface**: guest and authenticated sessions share
//     core.Repository; the mode is chosen once from the bearer token.
//   - **Confirm-then-apply**: the in-memory store changes only after the
//     adapter reports success.
//   - **Explicit navigation**: views and selection move through a pure
//     transition table (pkg/view).
//   - **Local storage**: file, SQLite or in-memory key-value backends.
//
// Usage:
//
//	a, err := notekeep.New(ctx,
//		notekeep.WithStore(store),
//		notekeep.WithBaseURL("https://notes.example/api"),
//	)
//
//	if err := a.Load(ctx); err != nil { ... }
//	a.CreateNote()
//	a.SetTitle("Groceries")
package notekeep
