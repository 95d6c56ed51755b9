package change

import "flowstate/internal/domain"

// Kind is the tag of a change operation
type Kind string

const (
	KindAdd        Kind = "add"
	KindRemove     Kind = "remove"
	KindReplace    Kind = "replace"
	KindPosition   Kind = "position"   // nodes only
	KindDimensions Kind = "dimensions" // nodes only
	KindSelect     Kind = "select"
)

// NodeChange is one operation against the node collection.
// Which fields are meaningful depends on Kind.
type NodeChange struct {
	Kind       Kind               `json:"type"`
	ID         string             `json:"id,omitempty"`
	Item       *domain.Node       `json:"item,omitempty"`
	Index      *int               `json:"index,omitempty"`
	Position   *domain.Position   `json:"position,omitempty"`
	Dragging   bool               `json:"dragging,omitempty"`
	Dimensions *domain.Dimensions `json:"dimensions,omitempty"`
	Selected   bool               `json:"selected,omitempty"`
}

// EdgeChange is one operation against the edge collection
type EdgeChange struct {
	Kind     Kind         `json:"type"`
	ID       string       `json:"id,omitempty"`
	Item     *domain.Edge `json:"item,omitempty"`
	Index    *int         `json:"index,omitempty"`
	Selected bool         `json:"selected,omitempty"`
}

// TargetID returns the id the change operates on
func (c NodeChange) TargetID() string {
	if c.Kind == KindAdd && c.Item != nil {
		return c.Item.ID
	}
	return c.ID
}

// TargetID returns the id the change operates on
func (c EdgeChange) TargetID() string {
	if c.Kind == KindAdd && c.Item != nil {
		return c.Item.ID
	}
	return c.ID
}

// AddNode appends a node
func AddNode(n domain.Node) NodeChange {
	return NodeChange{Kind: KindAdd, ID: n.ID, Item: &n}
}

// InsertNode inserts a node at index
func InsertNode(n domain.Node, index int) NodeChange {
	return NodeChange{Kind: KindAdd, ID: n.ID, Item: &n, Index: &index}
}

// RemoveNode deletes the node with id
func RemoveNode(id string) NodeChange {
	return NodeChange{Kind: KindRemove, ID: id}
}

// ReplaceNode overwrites the node with id, keeping its place in the sequence
func ReplaceNode(id string, n domain.Node) NodeChange {
	return NodeChange{Kind: KindReplace, ID: id, Item: &n}
}

// MoveNode sets a node's position and drag state
func MoveNode(id string, pos domain.Position, dragging bool) NodeChange {
	return NodeChange{Kind: KindPosition, ID: id, Position: &pos, Dragging: dragging}
}

// DragEnd clears the drag state without moving the node
func DragEnd(id string) NodeChange {
	return NodeChange{Kind: KindPosition, ID: id}
}

// ResizeNode records a node's measured size
func ResizeNode(id string, dims domain.Dimensions) NodeChange {
	return NodeChange{Kind: KindDimensions, ID: id, Dimensions: &dims}
}

// SelectNode sets a node's own selection flag
func SelectNode(id string, selected bool) NodeChange {
	return NodeChange{Kind: KindSelect, ID: id, Selected: selected}
}

// AddEdge appends an edge
func AddEdge(e domain.Edge) EdgeChange {
	return EdgeChange{Kind: KindAdd, ID: e.ID, Item: &e}
}

// InsertEdge inserts an edge at index
func InsertEdge(e domain.Edge, index int) EdgeChange {
	return EdgeChange{Kind: KindAdd, ID: e.ID, Item: &e, Index: &index}
}

// RemoveEdge deletes the edge with id
func RemoveEdge(id string) EdgeChange {
	return EdgeChange{Kind: KindRemove, ID: id}
}

// ReplaceEdge overwrites the edge with id, keeping its place in the sequence
func ReplaceEdge(id string, e domain.Edge) EdgeChange {
	return EdgeChange{Kind: KindReplace, ID: id, Item: &e}
}

// SelectEdge sets an edge's own selection flag
func SelectEdge(id string, selected bool) EdgeChange {
	return EdgeChange{Kind: KindSelect, ID: id, Selected: selected}
}
