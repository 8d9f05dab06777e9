package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRegistry loads a registry file from the given path.
// Names are normalized and connections sorted after parsing, so hand-edited
// files behave the same as files written by SaveRegistry.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry file %s: %w", path, err)
	}
	return ParseRegistry(data)
}

// DecodeRegistry decodes registry YAML exactly as written, without
// normalizing names. Empty input yields an empty registry.
func DecodeRegistry(data []byte) (*Registry, error) {
	r := NewRegistry()
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	return r, nil
}

// ParseRegistry decodes registry YAML and restores the registry invariants:
// names are normalized, duplicate names keep their first entry, only the
// first selected entry stays selected, and connections are sorted.
func ParseRegistry(data []byte) (*Registry, error) {
	raw, err := DecodeRegistry(data)
	if err != nil {
		return nil, err
	}

	r := &Registry{Version: raw.Version}
	seen := make(map[string]bool)
	selected := false
	for _, c := range raw.Connections {
		c.Name = NormalizeName(c.Name)
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true

		if c.Selected {
			if selected {
				c.Selected = false
			}
			selected = true
		}
		r.Connections = append(r.Connections, c)
	}
	r.Sort()

	return r, nil
}

// SaveRegistry writes a registry to the given path.
// Connections are sorted by name and false selected flags are omitted.
// The file is created with mode 0600 because URLs may embed passwords.
func SaveRegistry(path string, r *Registry) error {
	data, err := MarshalRegistry(r)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write registry file %s: %w", path, err)
	}
	// WriteFile only applies the mode to new files.
	if err := os.Chmod(path, 0600); err != nil {
		return fmt.Errorf("failed to restrict registry file %s: %w", path, err)
	}

	return nil
}

// MarshalRegistry encodes a registry as YAML.
func MarshalRegistry(r *Registry) ([]byte, error) {
	r.Sort()

	data, err := yaml.Marshal(buildRegistryNode(r))
	if err != nil {
		return nil, fmt.Errorf("failed to encode registry: %w", err)
	}
	return data, nil
}

// buildRegistryNode creates a yaml.Node tree for a Registry with stable key order.
func buildRegistryNode(r *Registry) *yaml.Node {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	version := r.Version
	if version == 0 {
		version = CurrentVersion
	}
	addIntField(doc, "version", version)

	if len(r.Connections) > 0 {
		conns := &yaml.Node{Kind: yaml.SequenceNode}
		for _, c := range r.Connections {
			conns.Content = append(conns.Content, buildConnectionNode(c))
		}
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: "connections"},
			conns,
		)
	}

	return doc
}

func buildConnectionNode(c Connection) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}

	addStringField(node, "name", c.Name)
	addStringField(node, "url", c.URL)
	if c.Selected {
		addBoolField(node, "selected", true)
	}

	return node
}

// Helper functions for building yaml.Node

func addStringField(node *yaml.Node, key, value string) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value, Tag: "!!str"},
	)
}

func addIntField(node *yaml.Node, key string, value int) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%d", value), Tag: "!!int"},
	)
}

func addBoolField(node *yaml.Node, key string, value bool) {
	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprintf("%t", value), Tag: "!!bool"},
	)
}
