// Package storage provides file system access to the pdgen connection store.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gsdenys/pdgen/internal/model"
	"github.com/mitchellh/go-homedir"
)

const (
	// defaultStoreFile is the store location when none is configured.
	defaultStoreFile = "~/.pdgen"

	// EnvConfig overrides the store location.
	EnvConfig = "PDGEN_CONFIG"
)

// ErrNotFound is returned when a named connection does not exist.
var ErrNotFound = errors.New("connection not found")

// Storage provides access to a single store file.
type Storage struct {
	path string // path to the store file
}

// Open returns a Storage for the given file.
// The file does not need to exist; it is created on the first write.
// A leading ~ is expanded to the user's home directory.
func Open(path string) (*Storage, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return &Storage{path: expanded}, nil
}

// DefaultPath returns $PDGEN_CONFIG if set, otherwise ~/.pdgen.
func DefaultPath() (string, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		path = defaultStoreFile
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve store location: %w", err)
	}
	return expanded, nil
}

// ConfigFile returns the path of the store file.
func (s *Storage) ConfigFile() string {
	return s.path
}

// Read loads the registry. A missing store file reads as an empty registry;
// any other failure (permissions, malformed YAML) is returned.
func (s *Storage) Read() (*model.Registry, error) {
	r, err := model.LoadRegistry(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewRegistry(), nil
		}
		return nil, err
	}
	return r, nil
}

// ReadRaw loads the store file as written, without restoring invariants.
// A missing store file reads as an empty registry.
func (s *Storage) ReadRaw() (*model.Registry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewRegistry(), nil
		}
		return nil, fmt.Errorf("failed to read registry file %s: %w", s.path, err)
	}
	return model.DecodeRegistry(data)
}

// write saves the registry, creating the parent directory if needed.
func (s *Storage) write(r *model.Registry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(s.path), err)
	}
	return model.SaveRegistry(s.path, r)
}

// AddConnection stores c. An existing connection with the same name has its
// URL replaced.
func (s *Storage) AddConnection(c model.Connection) error {
	r, err := s.Read()
	if err != nil {
		return err
	}
	r.Put(c)
	return s.write(r)
}

// RemoveConnection deletes the named connection.
// Name lookup is case-insensitive. Returns ErrNotFound if absent.
func (s *Storage) RemoveConnection(name string) error {
	r, err := s.Read()
	if err != nil {
		return err
	}
	if _, ok := r.Delete(name); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, model.NormalizeName(name))
	}
	return s.write(r)
}

// SelectConnection marks the named connection as selected and unselects
// all others. Returns ErrNotFound if absent.
func (s *Storage) SelectConnection(name string) error {
	r, err := s.Read()
	if err != nil {
		return err
	}
	if _, ok := r.Select(name); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, model.NormalizeName(name))
	}
	return s.write(r)
}

// ListConnections returns all connections sorted by name.
func (s *Storage) ListConnections() ([]model.Connection, error) {
	r, err := s.Read()
	if err != nil {
		return nil, err
	}
	return r.Connections, nil
}
