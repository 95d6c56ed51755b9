package domain

// NodeType represents the renderer used for a node
type NodeType string

const (
	NodeTypeCustom NodeType = "custom"
)

// Template values used for nodes created through the editor toolbar
const (
	DefaultNodeColor = "rgb(107 114 128)"
	DefaultNodeIcon  = "Circle"
)

// NodeData holds the display metadata of a node
type NodeData struct {
	Label        string `json:"label" yaml:"label"`
	Color        string `json:"color" yaml:"color"`
	SourceHandle bool   `json:"sourceHandle" yaml:"sourceHandle"`
	TargetHandle bool   `json:"targetHandle" yaml:"targetHandle"`
	Icon         string `json:"icon" yaml:"icon"`
}

// Node represents a diagram vertex
type Node struct {
	ID       string      `json:"id" yaml:"id"`
	Type     NodeType    `json:"type" yaml:"type"`
	Position Position    `json:"position" yaml:"position"`
	Data     NodeData    `json:"data" yaml:"data"`
	Measured *Dimensions `json:"measured,omitempty" yaml:"measured,omitempty"` // set by dimensions changes
	Selected bool        `json:"selected,omitempty" yaml:"selected,omitempty"`
	Dragging bool        `json:"dragging,omitempty" yaml:"dragging,omitempty"`
}

// NewNode creates a custom node with both handles enabled
func NewNode(id, label string, pos Position) Node {
	return Node{
		ID:       id,
		Type:     NodeTypeCustom,
		Position: pos,
		Data: NodeData{
			Label:        label,
			Color:        DefaultNodeColor,
			SourceHandle: true,
			TargetHandle: true,
			Icon:         DefaultNodeIcon,
		},
	}
}

// RecordID returns the node identity
func (n Node) RecordID() string {
	return n.ID
}

// WithPosition returns a copy of the node moved to pos
func (n Node) WithPosition(pos Position) Node {
	n.Position = pos
	return n
}

// WithMeasured returns a copy of the node carrying its own Dimensions value
func (n Node) WithMeasured(dims Dimensions) Node {
	n.Measured = &dims
	return n
}

// IndexOfNode returns the index of the node with id, or -1
func IndexOfNode(nodes []Node, id string) int {
	for i := range nodes {
		if nodes[i].ID == id {
			return i
		}
	}
	return -1
}
