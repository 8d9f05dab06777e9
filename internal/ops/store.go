package ops

import (
	"github.com/gsdenys/pdgen/internal/model"
)

// Store defines the persistence interface required by the registry.
// The concrete implementation is storage.Storage, but this interface allows
// alternative backends (in-memory for tests) to be substituted.
type Store interface {
	Read() (*model.Registry, error)
	AddConnection(c model.Connection) error
	RemoveConnection(name string) error
	SelectConnection(name string) error
	ListConnections() ([]model.Connection, error)
	ConfigFile() string
}
