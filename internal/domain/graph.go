package domain

import (
	"encoding/json"
	"slices"
)

// Selection tracks selected and hovered ids. An empty string means none.
type Selection struct {
	SelectedNodeID string `json:"selectedNodeId,omitempty" yaml:"selectedNodeId,omitempty"`
	HoveredNodeID  string `json:"hoveredNodeId,omitempty" yaml:"hoveredNodeId,omitempty"`
	SelectedEdgeID string `json:"selectedEdgeId,omitempty" yaml:"selectedEdgeId,omitempty"`
	HoveredEdgeID  string `json:"hoveredEdgeId,omitempty" yaml:"hoveredEdgeId,omitempty"`
}

// State is the composed editor snapshot
type State struct {
	Nodes    []Node   `json:"nodes" yaml:"nodes"`
	Edges    []Edge   `json:"edges" yaml:"edges"`
	Viewport Viewport `json:"viewport" yaml:"viewport"`

	Selection `yaml:",inline"`

	Minimalistic bool `json:"minimalistic" yaml:"minimalistic"`
	LightTheme   bool `json:"lightTheme" yaml:"lightTheme"`
	IsSheetOpen  bool `json:"isSheetOpen" yaml:"isSheetOpen"`
}

// MarshalJSON writes the selection ids as null when empty so the four keys
// are always present
func (s State) MarshalJSON() ([]byte, error) {
	type plain State
	return json.Marshal(struct {
		plain
		SelectedNodeID *string `json:"selectedNodeId"`
		HoveredNodeID  *string `json:"hoveredNodeId"`
		SelectedEdgeID *string `json:"selectedEdgeId"`
		HoveredEdgeID  *string `json:"hoveredEdgeId"`
	}{
		plain:          plain(s),
		SelectedNodeID: nullable(s.SelectedNodeID),
		HoveredNodeID:  nullable(s.HoveredNodeID),
		SelectedEdgeID: nullable(s.SelectedEdgeID),
		HoveredEdgeID:  nullable(s.HoveredEdgeID),
	})
}

func nullable(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// InitialState returns the session seed: a three node triangle
func InitialState() State {
	return State{
		Nodes:    SeedNodes(),
		Edges:    SeedEdges(),
		Viewport: DefaultViewport(),
	}
}

// SeedNodes returns the fixed nodes every session starts with
func SeedNodes() []Node {
	return []Node{
		{
			ID:       "1",
			Type:     NodeTypeCustom,
			Position: Position{X: 100, Y: 100},
			Data: NodeData{
				Label:        "Start",
				Color:        "rgb(34 197 94)",
				SourceHandle: true,
				TargetHandle: false,
				Icon:         "Play",
			},
		},
		{
			ID:       "2",
			Type:     NodeTypeCustom,
			Position: Position{X: 400, Y: 200},
			Data: NodeData{
				Label:        "Node 2",
				Color:        "rgb(234 179 8)",
				SourceHandle: true,
				TargetHandle: true,
				Icon:         "Activity",
			},
		},
		{
			ID:       "3",
			Type:     NodeTypeCustom,
			Position: Position{X: 700, Y: 100},
			Data: NodeData{
				Label:        "End",
				Color:        "rgb(239 68 68)",
				SourceHandle: false,
				TargetHandle: true,
				Icon:         "Square",
			},
		},
	}
}

// SeedEdges returns the fixed edges every session starts with
func SeedEdges() []Edge {
	return []Edge{
		NewEdge("1", "2"),
		NewEdge("2", "3"),
		NewEdge("1", "3"),
	}
}

// Clone returns a deep copy of s
func (s State) Clone() State {
	s.Nodes = slices.Clone(s.Nodes)
	for i := range s.Nodes {
		if m := s.Nodes[i].Measured; m != nil {
			s.Nodes[i] = s.Nodes[i].WithMeasured(*m)
		}
	}
	s.Edges = slices.Clone(s.Edges)
	return s
}

// Node looks up a node by id
func (s State) Node(id string) (Node, bool) {
	if i := IndexOfNode(s.Nodes, id); i >= 0 {
		return s.Nodes[i], true
	}
	return Node{}, false
}

// Edge looks up an edge by id
func (s State) Edge(id string) (Edge, bool) {
	if i := IndexOfEdge(s.Edges, id); i >= 0 {
		return s.Edges[i], true
	}
	return Edge{}, false
}

// DanglingKind classifies an unresolved reference
type DanglingKind string

const (
	DanglingEdgeSource   DanglingKind = "edge_source"
	DanglingEdgeTarget   DanglingKind = "edge_target"
	DanglingSelectedNode DanglingKind = "selected_node"
	DanglingHoveredNode  DanglingKind = "hovered_node"
	DanglingSelectedEdge DanglingKind = "selected_edge"
	DanglingHoveredEdge  DanglingKind = "hovered_edge"
)

// DanglingRef is a reference to a record that is not in the snapshot.
// ID is the referring record (the edge id for edge refs, empty for selection).
type DanglingRef struct {
	Kind DanglingKind `json:"kind" yaml:"kind"`
	ID   string       `json:"id,omitempty" yaml:"id,omitempty"`
	Ref  string       `json:"ref" yaml:"ref"`
}

// DanglingReferences reports edges and selection ids that no longer resolve.
// It is diagnostic only; the engine tolerates dangling references.
func (s State) DanglingReferences() []DanglingRef {
	nodeIDs := make(map[string]struct{}, len(s.Nodes))
	for _, n := range s.Nodes {
		nodeIDs[n.ID] = struct{}{}
	}
	edgeIDs := make(map[string]struct{}, len(s.Edges))
	for _, e := range s.Edges {
		edgeIDs[e.ID] = struct{}{}
	}

	var refs []DanglingRef
	for _, e := range s.Edges {
		if _, ok := nodeIDs[e.Source]; !ok {
			refs = append(refs, DanglingRef{Kind: DanglingEdgeSource, ID: e.ID, Ref: e.Source})
		}
		if _, ok := nodeIDs[e.Target]; !ok {
			refs = append(refs, DanglingRef{Kind: DanglingEdgeTarget, ID: e.ID, Ref: e.Target})
		}
	}

	check := func(kind DanglingKind, id string, known map[string]struct{}) {
		if id == "" {
			return
		}
		if _, ok := known[id]; !ok {
			refs = append(refs, DanglingRef{Kind: kind, Ref: id})
		}
	}
	check(DanglingSelectedNode, s.SelectedNodeID, nodeIDs)
	check(DanglingHoveredNode, s.HoveredNodeID, nodeIDs)
	check(DanglingSelectedEdge, s.SelectedEdgeID, edgeIDs)
	check(DanglingHoveredEdge, s.HoveredEdgeID, edgeIDs)

	return refs
}
