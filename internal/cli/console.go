package cli

import (
	"context"
	"fmt"

	"github.com/gsdenys/pdgen/internal/ops"
)

// Console exposes the connection registry as plain-string operations.
// Every method returns a single message, either a confirmation or an
// explanation of what went wrong; no error crosses this boundary.
type Console struct {
	Registry *ops.Registry
}

// NewConsole returns a Console over r.
func NewConsole(r *ops.Registry) *Console {
	return &Console{Registry: r}
}

// Add probes url and stores it under name (DEFAULT when empty).
func (c *Console) Add(ctx context.Context, url, name string) string {
	conn, err := c.Registry.Add(ctx, url, name)
	if err != nil {
		return Message("add", err)
	}
	return fmt.Sprintf("Connection created successfully.\n(name:%s, url:%s)", conn.Name, conn.URL)
}

// Remove deletes the named connection.
func (c *Console) Remove(name string) string {
	if _, err := c.Registry.Remove(name); err != nil {
		return Message("remove", err)
	}
	return "Connection removed successfully.\n" + listHint
}

// List renders all connections as a table surrounded by blank lines.
func (c *Console) List() string {
	conns, err := c.Registry.List()
	if err != nil {
		return Message("list", err)
	}
	if len(conns) == 0 {
		return "There is no added connection."
	}

	rows := make([][]string, 0, len(conns))
	for _, conn := range conns {
		marker := ""
		if conn.Selected {
			marker = Green("*")
		}
		rows = append(rows, []string{conn.Name, conn.URL, marker})
	}

	table, err := RenderTable([]string{"Name", "URL", "Selected"}, rows)
	if err != nil {
		return Message("list", err)
	}
	return "\n" + table + "\n"
}

// Use selects the named connection.
func (c *Console) Use(name string) string {
	conn, err := c.Registry.Select(name)
	if err != nil {
		return Message("select", err)
	}
	return fmt.Sprintf("The connection named '%s' was selected to use.", conn.Name)
}

// Current describes the selected connection.
func (c *Console) Current() string {
	conn, ok, err := c.Registry.Selected()
	if err != nil {
		return Message("read", err)
	}
	if !ok {
		return "There is no selected connection.\nUse 'pdgen connection use <name>' to select one."
	}
	return fmt.Sprintf("%s (%s)", conn.Name, conn.URL)
}
