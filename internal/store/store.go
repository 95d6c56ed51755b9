package store

import (
	"fmt"
	"log/slog"
	"slices"

	"flowstate/internal/change"
	"flowstate/internal/domain"
	"flowstate/internal/idgen"
	"flowstate/internal/logging"
)

// ZoomStep is the zoom delta applied by ZoomIn and ZoomOut
const ZoomStep = 0.1

type zoomBounds struct {
	lo, hi float64
	set    bool
}

func (b zoomBounds) clamp(z float64) float64 {
	if !b.set {
		return z
	}
	return min(max(z, b.lo), b.hi)
}

type observer struct {
	id int
	fn func(domain.State)
}

// Store holds the editor state and applies mutations to it
type Store struct {
	state     domain.State
	version   uint64
	ids       idgen.Generator
	placement Placement
	zoom      zoomBounds
	logger    *slog.Logger

	observers []observer
	nextObsID int
}

// New creates a store seeded with the initial editor state
func New(opts ...Option) *Store {
	s := &Store{
		state:  domain.InitialState(),
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.ids == nil {
		s.ids = idgen.NewSequence(uint64(len(s.state.Nodes)))
	}
	if s.placement == nil {
		s.placement = NewRandomPlacement(DefaultPlacementWidth, DefaultPlacementHeight, 0)
	}
	s.state.Viewport.Zoom = s.zoom.clamp(s.state.Viewport.Zoom)

	return s
}

// Snapshot returns the current state. The returned value shares nothing
// mutable with the store.
func (s *Store) Snapshot() domain.State {
	return s.state.Clone()
}

// Version returns the number of mutations applied so far
func (s *Store) Version() uint64 {
	return s.version
}

// Subscribe registers fn to be called with the new state after every
// mutation. Observers run synchronously in subscription order and must not
// modify the state they receive. The returned function removes fn.
func (s *Store) Subscribe(fn func(domain.State)) (cancel func()) {
	s.nextObsID++
	id := s.nextObsID
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		s.observers = slices.DeleteFunc(slices.Clone(s.observers), func(o observer) bool {
			return o.id == id
		})
	}
}

// commit installs next as the current state and notifies observers
func (s *Store) commit(op string, next domain.State) {
	s.state = next
	s.version++
	s.logger.Debug("state updated", "op", op, "version", s.version,
		"nodes", len(next.Nodes), "edges", len(next.Edges))

	if len(s.observers) == 0 {
		return
	}
	snapshot := s.state.Clone()
	for _, o := range s.observers {
		o.fn(snapshot)
	}
}

// ToggleMinimalistic flips the minimalistic display flag
func (s *Store) ToggleMinimalistic() {
	next := s.state
	next.Minimalistic = !next.Minimalistic
	s.commit("toggleMinimalistic", next)
}

// ToggleLightTheme flips the light theme flag
func (s *Store) ToggleLightTheme() {
	next := s.state
	next.LightTheme = !next.LightTheme
	s.commit("toggleLightTheme", next)
}

// SetSelectedNodeID selects a node and clears any edge selection.
// An empty id clears the node selection.
func (s *Store) SetSelectedNodeID(id string) {
	next := s.state
	next.SelectedNodeID = id
	next.SelectedEdgeID = ""
	s.commit("setSelectedNodeId", next)
}

// SetHoveredNodeID sets the hovered node
func (s *Store) SetHoveredNodeID(id string) {
	next := s.state
	next.HoveredNodeID = id
	s.commit("setHoveredNodeId", next)
}

// SetSelectedEdgeID selects an edge and clears any node selection.
// An empty id clears the edge selection.
func (s *Store) SetSelectedEdgeID(id string) {
	next := s.state
	next.SelectedEdgeID = id
	next.SelectedNodeID = ""
	s.commit("setSelectedEdgeId", next)
}

// SetHoveredEdgeID sets the hovered edge
func (s *Store) SetHoveredEdgeID(id string) {
	next := s.state
	next.HoveredEdgeID = id
	s.commit("setHoveredEdgeId", next)
}

// SetNodes replaces the node collection with a copy of nodes
func (s *Store) SetNodes(nodes []domain.Node) {
	next := s.state
	next.Nodes = cloneOrEmpty(nodes)
	s.commit("setNodes", next)
}

// SetEdges replaces the edge collection with a copy of edges
func (s *Store) SetEdges(edges []domain.Edge) {
	next := s.state
	next.Edges = cloneOrEmpty(edges)
	s.commit("setEdges", next)
}

// UpdateNodes applies a batch of node changes. On error the state is left
// untouched and the error is a *change.BatchError.
func (s *Store) UpdateNodes(changes []change.NodeChange) error {
	nodes, err := change.ApplyNodeChanges(changes, s.state.Nodes)
	if err != nil {
		s.logger.Debug("node batch rejected", "error", err)
		return err
	}
	next := s.state
	next.Nodes = nodes
	s.commit("updateNodes", next)
	return nil
}

// UpdateEdges applies a batch of edge changes. On error the state is left
// untouched and the error is a *change.BatchError.
func (s *Store) UpdateEdges(changes []change.EdgeChange) error {
	edges, err := change.ApplyEdgeChanges(changes, s.state.Edges)
	if err != nil {
		s.logger.Debug("edge batch rejected", "error", err)
		return err
	}
	next := s.state
	next.Edges = edges
	s.commit("updateEdges", next)
	return nil
}

// SetZoom replaces the zoom factor
func (s *Store) SetZoom(zoom float64) {
	s.setZoom("setZoom", zoom)
}

// ZoomIn increases zoom by ZoomStep
func (s *Store) ZoomIn() {
	s.setZoom("zoomIn", s.state.Viewport.Zoom+ZoomStep)
}

// ZoomOut decreases zoom by ZoomStep
func (s *Store) ZoomOut() {
	s.setZoom("zoomOut", s.state.Viewport.Zoom-ZoomStep)
}

func (s *Store) setZoom(op string, zoom float64) {
	next := s.state
	next.Viewport.Zoom = s.zoom.clamp(zoom)
	s.commit(op, next)
}

// SetViewport merges the present fields of patch into the viewport
func (s *Store) SetViewport(patch domain.ViewportPatch) {
	next := s.state
	next.Viewport = next.Viewport.Merge(patch)
	next.Viewport.Zoom = s.zoom.clamp(next.Viewport.Zoom)
	s.commit("setViewport", next)
}

// SetIsSheetOpen sets the side sheet visibility
func (s *Store) SetIsSheetOpen(open bool) {
	next := s.state
	next.IsSheetOpen = open
	s.commit("setIsSheetOpen", next)
}

// AddNewNode appends a template node with a fresh id and returns it
func (s *Store) AddNewNode() domain.Node {
	label := fmt.Sprintf("Node %d", len(s.state.Nodes)+1)
	node := domain.NewNode(s.nextNodeID(), label, s.placement.Place())

	next := s.state
	next.Nodes = append(slices.Clip(next.Nodes), node)
	s.commit("addNewNode", next)
	return node
}

// nextNodeID asks the generator for candidates until one is free. A
// generator of distinct ids finds one within len(nodes)+1 attempts.
func (s *Store) nextNodeID() string {
	for range len(s.state.Nodes) + 1 {
		id := s.ids.Next()
		if domain.IndexOfNode(s.state.Nodes, id) < 0 {
			return id
		}
	}

	id := idgen.UUID{}.Next()
	s.logger.Warn("id generator exhausted, falling back to uuid", "id", id)
	return id
}

func cloneOrEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return slices.Clone(items)
}
