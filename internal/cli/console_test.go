package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gsdenys/pdgen/internal/model"
	"github.com/gsdenys/pdgen/internal/ops"
	"github.com/gsdenys/pdgen/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChecker fails for every URL in down.
type stubChecker map[string]bool

func (s stubChecker) Check(_ context.Context, rawURL string) error {
	if s[rawURL] {
		return errors.New("connection refused")
	}
	return nil
}

// brokenStore fails every operation with a permission error.
type brokenStore struct{}

func (brokenStore) Read() (*model.Registry, error) { return nil, os.ErrPermission }
func (brokenStore) AddConnection(model.Connection) error { return os.ErrPermission }
func (brokenStore) RemoveConnection(string) error { return os.ErrPermission }
func (brokenStore) SelectConnection(string) error { return os.ErrPermission }
func (brokenStore) ListConnections() ([]model.Connection, error) { return nil, os.ErrPermission }
func (brokenStore) ConfigFile() string { return "/root/.pdgen" }

func setupConsole(t *testing.T, down ...string) (*Console, *storage.Storage) {
	t.Helper()
	SetColorEnabled(false)

	s, err := storage.Open(filepath.Join(t.TempDir(), ".pdgen"))
	require.NoError(t, err)

	checker := stubChecker{}
	for _, u := range down {
		checker[u] = true
	}
	return NewConsole(ops.NewRegistry(s, checker, nil)), s
}

func TestConsoleAdd(t *testing.T) {
	c, s := setupConsole(t)

	msg := c.Add(context.Background(), "http://x.test:9000", "local")
	assert.Equal(t, "Connection created successfully.\n(name:LOCAL, url:http://x.test:9000)", msg)

	conns, err := s.ListConnections()
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, "LOCAL", conns[0].Name)

	out := c.List()
	assert.Contains(t, out, "LOCAL")
	assert.Contains(t, out, "http://x.test:9000")
}

func TestConsoleAddDefaultName(t *testing.T) {
	c, _ := setupConsole(t)

	msg := c.Add(context.Background(), "postgres://localhost/db", "")
	assert.Contains(t, msg, "name:DEFAULT")
}

func TestConsoleAddUnreachable(t *testing.T) {
	c, s := setupConsole(t, "http://down:1")

	msg := c.Add(context.Background(), "http://down:1", "x")
	assert.Equal(t, "Unable to connect using the provided URL.\nurl=http://down:1", msg)

	conns, err := s.ListConnections()
	require.NoError(t, err)
	assert.Empty(t, conns)
}

func TestConsoleAddInvalid(t *testing.T) {
	c, _ := setupConsole(t)

	msg := c.Add(context.Background(), "", "x")
	assert.Equal(t, "Unable to add a connection: invalid url: url is required", msg)
}

func TestConsoleRemove(t *testing.T) {
	c, _ := setupConsole(t)

	assert.Equal(t, "There are no connection defined.", c.Remove("prod"))

	c.Add(context.Background(), "http://a:1", "dev")

	msg := c.Remove("prod")
	assert.Equal(t, "There's no connection named 'PROD'.\nUse 'pdgen connection list' to list all connections.", msg)
	assert.Contains(t, strings.ToLower(msg), "no connection named")

	msg = c.Remove("Dev")
	assert.Equal(t, "Connection removed successfully.\nUse 'pdgen connection list' to list all connections.", msg)
	assert.Equal(t, "There is no added connection.", c.List())
}

func TestConsoleList(t *testing.T) {
	c, _ := setupConsole(t)

	assert.Equal(t, "There is no added connection.", c.List())

	c.Add(context.Background(), "http://a:1", "alpha")
	c.Add(context.Background(), "http://b:1", "beta")
	c.Use("beta")

	out := c.List()
	assert.True(t, strings.HasPrefix(out, "\n"))
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "URL")
	assert.Contains(t, out, "Selected")
	assert.NotContains(t, out, "SELECTED")

	var betaLine, alphaLine string
	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.Contains(line, "BETA"):
			betaLine = line
		case strings.Contains(line, "ALPHA"):
			alphaLine = line
		}
	}
	assert.Contains(t, betaLine, "*")
	assert.NotContains(t, alphaLine, "*")
}

func TestConsoleUse(t *testing.T) {
	c, _ := setupConsole(t)

	assert.Equal(t, "There are no connection defined.", c.Use("prod"))

	c.Add(context.Background(), "http://a:1", "prod")

	assert.Equal(t, "The connection named 'PROD' was selected to use.", c.Use("prod"))
	assert.Equal(t, "The connection named 'PROD' was selected to use.", c.Use("PROD"))
	assert.Contains(t, c.Use("nope"), "There's no connection named 'NOPE'.")
}

func TestConsoleCurrent(t *testing.T) {
	c, _ := setupConsole(t)

	assert.Contains(t, c.Current(), "There is no selected connection.")

	c.Add(context.Background(), "http://a:1", "prod")
	c.Use("prod")

	assert.Equal(t, "PROD (http://a:1)", c.Current())
}

func TestConsolePermissionErrors(t *testing.T) {
	SetColorEnabled(false)
	c := NewConsole(ops.NewRegistry(brokenStore{}, stubChecker{}, nil))

	tests := []struct {
		name string
		got  string
		op   string
	}{
		{"add", c.Add(context.Background(), "http://a:1", "x"), "add"},
		{"remove", c.Remove("x"), "remove"},
		{"use", c.Use("x"), "select"},
		{"list", c.List(), "list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := "Unable to " + tt.op + " a connection with URL and Name provided. " +
				"It looks like a permission problem at the .pdgen file.\n/root/.pdgen"
			assert.Equal(t, want, tt.got)
		})
	}
}

func TestConsoleCurrentReadFailure(t *testing.T) {
	c := NewConsole(ops.NewRegistry(brokenStore{}, stubChecker{}, nil))

	assert.Equal(t, "Unable to read the connection store. "+
		"It looks like a permission problem at the .pdgen file.\n/root/.pdgen", c.Current())
}

func TestMessageUsesErrorKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"unreachable",
			fmt.Errorf("wrapped: %w", &ops.UnreachableError{URL: "http://a:1", Err: errors.New("refused")}),
			"Unable to connect using the provided URL.\nurl=http://a:1",
		},
		{
			"validation",
			&ops.ValidationError{Field: "url", Message: "url is required"},
			"Unable to add a connection: invalid url: url is required",
		},
		{
			"empty registry",
			&ops.NotFoundError{Empty: true},
			"There are no connection defined.",
		},
		{
			"not found",
			fmt.Errorf("wrapped: %w", &ops.NotFoundError{Name: "PROD"}),
			"There's no connection named 'PROD'.\n" + listHint,
		},
		{
			"store",
			&ops.StoreError{Operation: "add", Location: "/f", Err: os.ErrPermission},
			"Unable to add a connection with URL and Name provided. " +
				"It looks like a permission problem at the .pdgen file.\n/f",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Message("add", tt.err))
		})
	}
}

func TestMessageUnknown(t *testing.T) {
	assert.Equal(t, "Sorry, some unknown error happened",
		Message("remove", &ops.UnknownError{Operation: "remove", Err: errors.New("boom")}))
	assert.Equal(t, "Sorry, some unknown error happened", Message("remove", errors.New("other")))
	assert.Equal(t, "", Message("remove", nil))
}

func TestFormatError(t *testing.T) {
	assert.Equal(t, "", FormatError(nil))
	assert.Equal(t, "error: boom", FormatError(errors.New("boom")))
}
