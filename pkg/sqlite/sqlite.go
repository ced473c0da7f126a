// Package sqlite provides the public API for the bce grammar store.
// It exposes the factory function for opening a store while keeping the
// implementation internal.
package sqlite

import (
	"context"

	"github.com/mesh-intelligence/bce/internal/sqlite"
)

// Store is an open grammar database.
type Store = sqlite.Store

// SchemaVersion is the database schema version this module reads and writes.
const SchemaVersion = sqlite.SchemaVersion

// Open opens or creates the grammar database at path.
//
// Example:
//
//	store, err := sqlite.Open(ctx, "/home/me/.local/share/bce/completion.db")
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//	tree, err := store.LoadTree(ctx, "kubectl")
func Open(ctx context.Context, path string) (*Store, error) {
	return sqlite.Open(ctx, path, sqlite.Options{})
}
