// Package ops provides the business logic for managing pdgen connections.
package ops

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/gsdenys/pdgen/internal/model"
	"github.com/gsdenys/pdgen/internal/probe"
	"github.com/gsdenys/pdgen/internal/storage"
	"github.com/sirupsen/logrus"
)

// Registry is the only writer of connection records. All mutation of the
// store goes through its methods.
type Registry struct {
	store   Store
	checker probe.Checker
	log     logrus.FieldLogger
}

// NewRegistry returns a Registry over the given store and checker.
// A nil logger discards log output.
func NewRegistry(s Store, c probe.Checker, log logrus.FieldLogger) *Registry {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel)
		log = l
	}
	return &Registry{store: s, checker: c, log: log}
}

// Add validates and probes rawURL, then stores it under name.
// An empty name is stored as DEFAULT. An existing connection with the same
// name has its URL replaced.
func (r *Registry) Add(ctx context.Context, rawURL, name string) (model.Connection, error) {
	name = model.NormalizeName(name)
	rawURL = strings.TrimSpace(rawURL)
	log := r.log.WithFields(logrus.Fields{"op": "add", "name": name})

	if rawURL == "" {
		return model.Connection{}, &ValidationError{Field: "url", Message: "url is required"}
	}
	if _, err := url.Parse(rawURL); err != nil {
		return model.Connection{}, &ValidationError{Field: "url", Value: rawURL, Message: err.Error()}
	}

	if err := r.checker.Check(ctx, rawURL); err != nil {
		log.WithError(err).Debug("url unreachable")
		return model.Connection{}, &UnreachableError{URL: rawURL, Err: err}
	}

	c := model.Connection{Name: name, URL: rawURL}
	if err := r.store.AddConnection(c); err != nil {
		log.WithError(err).Warn("failed to store connection")
		return model.Connection{}, r.storeError("add", err)
	}

	log.Debug("connection added")
	return c, nil
}

// Remove deletes the named connection. Lookup is case-insensitive.
func (r *Registry) Remove(name string) (model.Connection, error) {
	name = model.NormalizeName(name)
	log := r.log.WithFields(logrus.Fields{"op": "remove", "name": name})

	reg, err := r.store.Read()
	if err != nil {
		log.WithError(err).Warn("failed to read store")
		return model.Connection{}, r.storeError("remove", err)
	}

	c, err := lookup(reg, name)
	if err != nil {
		return model.Connection{}, err
	}

	if err := r.store.RemoveConnection(name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Connection{}, &NotFoundError{Name: name}
		}
		log.WithError(err).Warn("failed to remove connection")
		return model.Connection{}, &UnknownError{Operation: "remove", Err: err}
	}

	log.Debug("connection removed")
	return c, nil
}

// List returns every connection sorted by name.
func (r *Registry) List() ([]model.Connection, error) {
	conns, err := r.store.ListConnections()
	if err != nil {
		r.log.WithError(err).Warn("failed to list connections")
		return nil, r.storeError("list", err)
	}
	return conns, nil
}

// Select makes the named connection the only selected one.
func (r *Registry) Select(name string) (model.Connection, error) {
	name = model.NormalizeName(name)
	log := r.log.WithFields(logrus.Fields{"op": "select", "name": name})

	reg, err := r.store.Read()
	if err != nil {
		log.WithError(err).Warn("failed to read store")
		return model.Connection{}, r.storeError("select", err)
	}

	c, err := lookup(reg, name)
	if err != nil {
		return model.Connection{}, err
	}

	if err := r.store.SelectConnection(name); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Connection{}, &NotFoundError{Name: name}
		}
		log.WithError(err).Warn("failed to select connection")
		return model.Connection{}, r.storeError("select", err)
	}

	c.Selected = true
	log.Debug("connection selected")
	return c, nil
}

// Selected returns the selected connection. The bool is false when no
// connection is selected.
func (r *Registry) Selected() (model.Connection, bool, error) {
	reg, err := r.store.Read()
	if err != nil {
		r.log.WithError(err).Warn("failed to read store")
		return model.Connection{}, false, r.storeError("read", err)
	}
	c, ok := reg.Selected()
	return c, ok, nil
}

// Names returns all connection names, for shell completion.
func (r *Registry) Names() ([]string, error) {
	reg, err := r.store.Read()
	if err != nil {
		return nil, r.storeError("read", err)
	}
	return reg.Names(), nil
}

func (r *Registry) storeError(op string, err error) error {
	return &StoreError{Operation: op, Location: r.store.ConfigFile(), Err: err}
}

// lookup distinguishes an empty registry from a missing name.
func lookup(reg *model.Registry, name string) (model.Connection, error) {
	if reg.Len() == 0 {
		return model.Connection{}, &NotFoundError{Name: name, Empty: true}
	}
	c, ok := reg.Get(name)
	if !ok {
		return model.Connection{}, &NotFoundError{Name: name}
	}
	return c, nil
}
