package domain

import "slices"

// GraphFragment is a node/edge payload used to seed a container
type GraphFragment struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// NewGraphFragment creates an empty graph fragment
func NewGraphFragment() *GraphFragment {
	return &GraphFragment{
		Nodes: make([]Node, 0),
		Edges: make([]Edge, 0),
	}
}

// AddNode adds a node to the fragment
func (g *GraphFragment) AddNode(node Node) {
	g.Nodes = append(g.Nodes, node)
}

// AddEdge adds an edge to the fragment
func (g *GraphFragment) AddEdge(edge Edge) {
	g.Edges = append(g.Edges, edge)
}

// State returns a fresh snapshot holding copies of the fragment's records
func (g *GraphFragment) State() State {
	s := InitialState()
	s.Nodes = slices.Clone(g.Nodes)
	s.Edges = slices.Clone(g.Edges)
	if s.Nodes == nil {
		s.Nodes = []Node{}
	}
	if s.Edges == nil {
		s.Edges = []Edge{}
	}
	return s
}
