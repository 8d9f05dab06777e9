package ops

import (
	"errors"
	"fmt"
)

// ErrorKind classifies registry failures for presentation.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindStore
	KindNotFound
	KindUnknown
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindStore:
		return "store"
	case KindNotFound:
		return "not-found"
	case KindUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ValidationError indicates input that was rejected before any mutation.
type ValidationError struct {
	Field   string // the field that failed validation
	Value   string // the rejected value
	Message string // what went wrong
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// UnreachableError indicates the reachability probe failed for a URL.
type UnreachableError struct {
	URL string
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("unable to connect to %s: %v", e.URL, e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// StoreError indicates the config store could not be read or written.
type StoreError struct {
	Operation string // "add", "remove", "select" or "list"
	Location  string // path of the store file
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("cannot %s connection in %s: %v", e.Operation, e.Location, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NotFoundError indicates the named connection does not exist.
// Empty is set when the registry holds no connections at all.
type NotFoundError struct {
	Name  string
	Empty bool
}

func (e *NotFoundError) Error() string {
	if e.Empty {
		return "no connections defined"
	}
	return fmt.Sprintf("connection %s not found", e.Name)
}

// UnknownError wraps a store failure that fits no other kind.
type UnknownError struct {
	Operation string
	Err       error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a registry error. Unreachable URLs count as
// validation failures. Errors not produced by this package are KindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var (
		validation  *ValidationError
		unreachable *UnreachableError
		store       *StoreError
		notFound    *NotFoundError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &unreachable):
		return KindValidation
	case errors.As(err, &notFound):
		return KindNotFound
	case errors.As(err, &store):
		return KindStore
	default:
		return KindUnknown
	}
}
