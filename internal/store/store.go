// Package store persists the full tracker state between invocations.
//
// Every backend loads and saves the whole state at once. A missing data
// file or database is an empty state, never an error.
package store

import (
	"context"
	"fmt"

	"tusk/internal/models"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Store defines the interface for loading and saving tracker state.
type Store interface {
	// Load returns every persisted account, ordered by name.
	Load(ctx context.Context) ([]models.Account, error)

	// Save replaces the persisted state with accounts. It either fully
	// succeeds or leaves the previous state in place.
	Save(ctx context.Context, accounts []models.Account) error

	// Lifecycle
	Close() error
}

// Open returns the store for the named backend rooted at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendJSON, BackendYAML:
		return NewFileStore(path, backend)
	case BackendSQLite:
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s, %s or %s)", backend, BackendJSON, BackendYAML, BackendSQLite)
	}
}
