// Package cli provides the presentation layer for pdgen: user-facing
// messages, colors and tables.
package cli

import (
	"errors"
	"fmt"

	"github.com/gsdenys/pdgen/internal/ops"
)

// listHint points the user at the list command.
const listHint = "Use 'pdgen connection list' to list all connections."

// Message renders a registry error as the text shown to the user.
// op names the attempted operation ("add", "remove", "select", "list" or
// "read") and appears in store failure messages.
func Message(op string, err error) string {
	switch ops.KindOf(err) {
	case ops.KindNone:
		return ""
	case ops.KindValidation:
		var unreachable *ops.UnreachableError
		if errors.As(err, &unreachable) {
			return fmt.Sprintf("Unable to connect using the provided URL.\nurl=%s", unreachable.URL)
		}
		return fmt.Sprintf("Unable to %s a connection: %s", op, err.Error())
	case ops.KindNotFound:
		var notFound *ops.NotFoundError
		errors.As(err, &notFound)
		if notFound.Empty {
			return "There are no connection defined."
		}
		return fmt.Sprintf("There's no connection named '%s'.\n%s", notFound.Name, listHint)
	case ops.KindStore:
		var store *ops.StoreError
		errors.As(err, &store)
		return storeMessage(op, store.Location)
	default:
		return "Sorry, some unknown error happened"
	}
}

// storeMessage reports a store the user cannot read or write.
func storeMessage(op, location string) string {
	if op == "read" {
		return fmt.Sprintf("Unable to read the connection store. "+
			"It looks like a permission problem at the .pdgen file.\n%s", location)
	}
	return fmt.Sprintf("Unable to %s a connection with URL and Name provided. "+
		"It looks like a permission problem at the .pdgen file.\n%s", op, location)
}

// FormatError returns a user-friendly error message.
// It prefixes the error with "error: " for consistent CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}
