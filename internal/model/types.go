// Package model defines the core data structures for pdgen connections.
package model

import (
	"sort"
	"strings"
)

// DefaultName is the connection name used when none is given.
const DefaultName = "DEFAULT"

// CurrentVersion is the store file format version written by pdgen.
const CurrentVersion = 1

// Connection is a named database endpoint.
type Connection struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Selected bool   `yaml:"selected,omitempty"`
}

// Registry is the full set of stored connections.
type Registry struct {
	Version     int          `yaml:"version"`
	Connections []Connection `yaml:"connections,omitempty"`
}

// NormalizeName trims and uppercases a connection name.
// An empty name becomes DefaultName.
func NormalizeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return DefaultName
	}
	return name
}

// NewRegistry returns an empty registry at the current format version.
func NewRegistry() *Registry {
	return &Registry{Version: CurrentVersion}
}

// Len returns the number of connections.
func (r *Registry) Len() int {
	return len(r.Connections)
}

// index returns the position of the named connection, or -1.
func (r *Registry) index(name string) int {
	name = NormalizeName(name)
	for i := range r.Connections {
		if r.Connections[i].Name == name {
			return i
		}
	}
	return -1
}

// Get returns the named connection. Lookup is case-insensitive.
func (r *Registry) Get(name string) (Connection, bool) {
	i := r.index(name)
	if i < 0 {
		return Connection{}, false
	}
	return r.Connections[i], true
}

// Has reports whether a connection with the given name exists.
func (r *Registry) Has(name string) bool {
	return r.index(name) >= 0
}

// Put inserts c, or replaces the URL of an existing connection with the
// same name. The selected flag of an existing entry is kept.
func (r *Registry) Put(c Connection) Connection {
	c.Name = NormalizeName(c.Name)
	if i := r.index(c.Name); i >= 0 {
		r.Connections[i].URL = c.URL
		return r.Connections[i]
	}
	c.Selected = false
	r.Connections = append(r.Connections, c)
	r.Sort()
	return c
}

// Delete removes the named connection and reports whether it existed.
func (r *Registry) Delete(name string) (Connection, bool) {
	i := r.index(name)
	if i < 0 {
		return Connection{}, false
	}
	c := r.Connections[i]
	r.Connections = append(r.Connections[:i], r.Connections[i+1:]...)
	return c, true
}

// Select marks the named connection as selected and clears the flag on
// every other connection. Returns false if the name is unknown, in which
// case the registry is left untouched.
func (r *Registry) Select(name string) (Connection, bool) {
	i := r.index(name)
	if i < 0 {
		return Connection{}, false
	}
	for j := range r.Connections {
		r.Connections[j].Selected = j == i
	}
	return r.Connections[i], true
}

// Selected returns the selected connection, if any.
func (r *Registry) Selected() (Connection, bool) {
	for _, c := range r.Connections {
		if c.Selected {
			return c, true
		}
	}
	return Connection{}, false
}

// Names returns all connection names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.Connections))
	for _, c := range r.Connections {
		names = append(names, c.Name)
	}
	sort.Strings(names)
	return names
}

// Sort orders connections by name.
func (r *Registry) Sort() {
	sort.Slice(r.Connections, func(i, j int) bool {
		return r.Connections[i].Name < r.Connections[j].Name
	})
}
