package domain

import "fmt"

// EdgeType represents the renderer used for an edge
type EdgeType string

const (
	EdgeTypeCustom EdgeType = "custom"
)

// Edge represents a directed connection between two nodes
type Edge struct {
	ID       string   `json:"id" yaml:"id"`
	Source   string   `json:"source" yaml:"source"`
	Target   string   `json:"target" yaml:"target"`
	Type     EdgeType `json:"type" yaml:"type"`
	Selected bool     `json:"selected,omitempty" yaml:"selected,omitempty"`
}

// NewEdge creates a custom edge with the editor's "e<source>-<target>" id
func NewEdge(source, target string) Edge {
	return Edge{
		ID:     EdgeID(source, target),
		Source: source,
		Target: target,
		Type:   EdgeTypeCustom,
	}
}

// EdgeID builds the conventional edge id for a source/target pair
func EdgeID(source, target string) string {
	return fmt.Sprintf("e%s-%s", source, target)
}

// RecordID returns the edge identity
func (e Edge) RecordID() string {
	return e.ID
}

// IndexOfEdge returns the index of the edge with id, or -1
func IndexOfEdge(edges []Edge, id string) int {
	for i := range edges {
		if edges[i].ID == id {
			return i
		}
	}
	return -1
}
