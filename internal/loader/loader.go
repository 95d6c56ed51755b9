// Package loader reads graph seed files and action scripts from disk.
package loader

import (
	"fmt"
	"os"

	"flowstate/internal/codec"
	"flowstate/internal/domain"
	"flowstate/internal/store"
)

// LoadFragment loads a graph from a JSON or YAML file, chosen by extension
func LoadFragment(path string) (*domain.GraphFragment, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	fragment, err := c.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return fragment, nil
}

// LoadScript loads an ordered list of actions from a JSON or YAML file
func LoadScript(path string) ([]store.Action, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer f.Close()

	actions, err := c.ParseScript(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return actions, nil
}

// ReplaceActions returns the setNodes and setEdges actions that swap the
// current graph for fragment
func ReplaceActions(fragment *domain.GraphFragment) ([]store.Action, error) {
	setNodes, err := store.NewAction(store.ActionSetNodes, nonNil(fragment.Nodes))
	if err != nil {
		return nil, err
	}
	setEdges, err := store.NewAction(store.ActionSetEdges, nonNil(fragment.Edges))
	if err != nil {
		return nil, err
	}
	return []store.Action{setNodes, setEdges}, nil
}

// nonNil keeps an empty graph encoding as [] rather than null
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
