// Package openstate remembers which containers were left open, keyed by
// container URI, so a rebuilt tree comes back the way the user left it.
package openstate

import (
	"fmt"

	"github.com/pstuifzand/placestree/internal/projection"
)

// Store is an open-state store that may hold resources
type Store interface {
	projection.OpenStateStore
	Close() error
}

// Open creates the store for a backend name: "memory", "toml" or "sqlite".
// The path is ignored by the memory store.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "memory":
		return NewMemory(), nil
	case "toml", "":
		return NewTOMLStore(path)
	case "sqlite":
		return NewSQLiteStore(path)
	}
	return nil, fmt.Errorf("unknown open state backend %q", backend)
}
