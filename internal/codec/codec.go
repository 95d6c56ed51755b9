package codec

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"flowstate/internal/domain"
	"flowstate/internal/store"
)

// ErrUnknownFormat is returned for a format or file extension with no codec
var ErrUnknownFormat = errors.New("unknown format")

// Importer interface for importing graph data from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.GraphFragment, error)
	Format() string
}

// Exporter interface for exporting graph data to various formats
type Exporter interface {
	Export(fragment *domain.GraphFragment, w io.Writer) error
	Format() string
}

// Codec reads and writes every document the editor exchanges: seed graphs,
// action scripts and state snapshots
type Codec interface {
	Importer
	Exporter
	ParseScript(r io.Reader) ([]store.Action, error)
	EncodeState(state domain.State, w io.Writer) error
}

// ForFormat returns the codec for a format name ("json", "yaml" or "yml")
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ForPath picks a codec from a file extension
func ForPath(path string) (Codec, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("%w: %s has no extension", ErrUnknownFormat, path)
	}
	return ForFormat(ext)
}

// fragmentDoc is the on-disk graph shape. Omitted node fields take the
// toolbar template values and omitted edge ids are derived from the endpoints.
type fragmentDoc struct {
	Nodes []nodeDoc `json:"nodes" yaml:"nodes"`
	Edges []edgeDoc `json:"edges" yaml:"edges"`
}

type nodeDoc struct {
	ID       string             `json:"id" yaml:"id"`
	Type     string             `json:"type,omitempty" yaml:"type,omitempty"`
	Position domain.Position    `json:"position" yaml:"position"`
	Data     nodeDataDoc        `json:"data" yaml:"data"`
	Measured *domain.Dimensions `json:"measured,omitempty" yaml:"measured,omitempty"`
}

type nodeDataDoc struct {
	Label        string `json:"label" yaml:"label"`
	Color        string `json:"color,omitempty" yaml:"color,omitempty"`
	SourceHandle *bool  `json:"sourceHandle,omitempty" yaml:"sourceHandle,omitempty"`
	TargetHandle *bool  `json:"targetHandle,omitempty" yaml:"targetHandle,omitempty"`
	Icon         string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

type edgeDoc struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
}

func (d *fragmentDoc) toFragment() (*domain.GraphFragment, error) {
	fragment := domain.NewGraphFragment()

	// Convert nodes
	for i, nd := range d.Nodes {
		if nd.ID == "" {
			return nil, fmt.Errorf("node %d: missing id", i)
		}
		node := domain.NewNode(nd.ID, nd.Data.Label, nd.Position)
		if nd.Type != "" {
			node.Type = domain.NodeType(nd.Type)
		}
		if nd.Data.Color != "" {
			node.Data.Color = nd.Data.Color
		}
		if nd.Data.Icon != "" {
			node.Data.Icon = nd.Data.Icon
		}
		if nd.Data.SourceHandle != nil {
			node.Data.SourceHandle = *nd.Data.SourceHandle
		}
		if nd.Data.TargetHandle != nil {
			node.Data.TargetHandle = *nd.Data.TargetHandle
		}
		if nd.Measured != nil {
			node = node.WithMeasured(*nd.Measured)
		}
		fragment.AddNode(node)
	}

	// Convert edges
	for i, ed := range d.Edges {
		if ed.Source == "" || ed.Target == "" {
			return nil, fmt.Errorf("edge %d: source and target are required", i)
		}
		edge := domain.NewEdge(ed.Source, ed.Target)
		if ed.ID != "" {
			edge.ID = ed.ID
		}
		if ed.Type != "" {
			edge.Type = domain.EdgeType(ed.Type)
		}
		fragment.AddEdge(edge)
	}

	return fragment, nil
}

func newFragmentDoc(fragment *domain.GraphFragment) fragmentDoc {
	doc := fragmentDoc{
		Nodes: make([]nodeDoc, 0, len(fragment.Nodes)),
		Edges: make([]edgeDoc, 0, len(fragment.Edges)),
	}
	for _, n := range fragment.Nodes {
		doc.Nodes = append(doc.Nodes, nodeDoc{
			ID:       n.ID,
			Type:     string(n.Type),
			Position: n.Position,
			Data: nodeDataDoc{
				Label:        n.Data.Label,
				Color:        n.Data.Color,
				SourceHandle: &n.Data.SourceHandle,
				TargetHandle: &n.Data.TargetHandle,
				Icon:         n.Data.Icon,
			},
			Measured: n.Measured,
		})
	}
	for _, e := range fragment.Edges {
		doc.Edges = append(doc.Edges, edgeDoc{
			ID:     e.ID,
			Source: e.Source,
			Target: e.Target,
			Type:   string(e.Type),
		})
	}
	return doc
}

func validateScript(actions []store.Action) error {
	for i, a := range actions {
		if a.Type == "" {
			return fmt.Errorf("action %d: missing type", i)
		}
	}
	return nil
}
