package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialState(t *testing.T) {
	t.Run("seeds triangle graph", func(t *testing.T) {
		s := InitialState()

		require.Len(t, s.Nodes, 3)
		for i, id := range []string{"1", "2", "3"} {
			assert.Equal(t, id, s.Nodes[i].ID, "node %d", i)
		}

		require.Len(t, s.Edges, 3)
		for i, id := range []string{"e1-2", "e2-3", "e1-3"} {
			assert.Equal(t, id, s.Edges[i].ID, "edge %d", i)
		}
	})

	t.Run("starts with default viewport and cleared flags", func(t *testing.T) {
		s := InitialState()

		assert.Equal(t, DefaultViewport(), s.Viewport)
		assert.False(t, s.Minimalistic)
		assert.False(t, s.LightTheme)
		assert.False(t, s.IsSheetOpen)
		assert.Equal(t, Selection{}, s.Selection)
	})

	t.Run("start and end handles", func(t *testing.T) {
		s := InitialState()
		start, _ := s.Node("1")
		end, _ := s.Node("3")

		assert.False(t, start.Data.TargetHandle, "start node has no target handle")
		assert.False(t, end.Data.SourceHandle, "end node has no source handle")
	})

	t.Run("returns independent seeds", func(t *testing.T) {
		a := InitialState()
		b := InitialState()
		a.Nodes[0].Data.Label = "Changed"

		assert.Equal(t, "Start", b.Nodes[0].Data.Label)
	})
}

func TestStateClone(t *testing.T) {
	s := InitialState()
	c := s.Clone()
	c.Nodes[1].Position = Position{X: -1, Y: -1}
	c.Edges[0].Target = "3"

	assert.Equal(t, Position{X: 400, Y: 200}, s.Nodes[1].Position)
	assert.Equal(t, "2", s.Edges[0].Target)
}

func TestStateCloneMeasured(t *testing.T) {
	s := InitialState()
	s.Nodes[0] = s.Nodes[0].WithMeasured(Dimensions{Width: 10, Height: 20})

	c := s.Clone()
	c.Nodes[0].Measured.Width = 99

	assert.Equal(t, 10.0, s.Nodes[0].Measured.Width)
}

func TestStateLookup(t *testing.T) {
	s := InitialState()

	_, ok := s.Node("2")
	assert.True(t, ok)
	_, ok = s.Node("9")
	assert.False(t, ok)

	e, ok := s.Edge("e1-3")
	require.True(t, ok)
	assert.Equal(t, "3", e.Target)
}

func TestStateJSON(t *testing.T) {
	t.Run("empty selection ids are null", func(t *testing.T) {
		raw, err := json.Marshal(InitialState())
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(raw, &fields))
		for _, key := range []string{"selectedNodeId", "hoveredNodeId", "selectedEdgeId", "hoveredEdgeId"} {
			v, ok := fields[key]
			assert.True(t, ok, "%s key present", key)
			assert.Nil(t, v, key)
		}
		assert.Contains(t, string(raw), `"selectedNodeId":null`)
	})

	t.Run("set ids are strings", func(t *testing.T) {
		s := InitialState()
		s.SelectedEdgeID = "e1-2"
		s.HoveredNodeID = "3"

		raw, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `"selectedEdgeId":"e1-2"`)
		assert.Contains(t, string(raw), `"hoveredNodeId":"3"`)
		assert.Contains(t, string(raw), `"selectedNodeId":null`)
	})

	t.Run("round trips", func(t *testing.T) {
		s := InitialState()
		s.SelectedNodeID = "2"
		s.LightTheme = true

		raw, err := json.Marshal(s)
		require.NoError(t, err)

		var got State
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, s, got)
	})

	t.Run("pointer marshals the same", func(t *testing.T) {
		s := InitialState()
		a, err := json.Marshal(s)
		require.NoError(t, err)
		b, err := json.Marshal(&s)
		require.NoError(t, err)
		assert.JSONEq(t, string(a), string(b))
	})
}

func TestDanglingReferences(t *testing.T) {
	t.Run("seed graph is consistent", func(t *testing.T) {
		assert.Empty(t, InitialState().DanglingReferences())
	})

	t.Run("reports edges to removed node", func(t *testing.T) {
		s := InitialState()
		s.Nodes = s.Nodes[:2] // drop node 3

		refs := s.DanglingReferences()
		require.Len(t, refs, 2)
		for _, ref := range refs {
			assert.Equal(t, DanglingEdgeTarget, ref.Kind)
			assert.Equal(t, "3", ref.Ref)
		}
	})

	t.Run("reports unresolved selection and hover", func(t *testing.T) {
		s := InitialState()
		s.SelectedNodeID = "7"
		s.HoveredEdgeID = "e9-9"
		s.HoveredNodeID = "1"

		refs := s.DanglingReferences()
		require.Len(t, refs, 2)
		assert.Equal(t, DanglingRef{Kind: DanglingSelectedNode, Ref: "7"}, refs[0])
		assert.Equal(t, DanglingRef{Kind: DanglingHoveredEdge, Ref: "e9-9"}, refs[1])
	})
}

func TestGraphFragmentState(t *testing.T) {
	t.Run("replaces seed graph", func(t *testing.T) {
		fragment := NewGraphFragment()
		fragment.AddNode(NewNode("a", "A", Position{}))
		fragment.AddNode(NewNode("b", "B", Position{X: 10}))
		fragment.AddEdge(NewEdge("a", "b"))

		s := fragment.State()
		require.Len(t, s.Nodes, 2)
		require.Len(t, s.Edges, 1)
		assert.Equal(t, DefaultViewport(), s.Viewport)

		fragment.Nodes[0].ID = "changed"
		assert.Equal(t, "a", s.Nodes[0].ID, "state holds copies of fragment nodes")
	})

	t.Run("empty fragment yields empty non-nil collections", func(t *testing.T) {
		s := (&GraphFragment{}).State()
		assert.NotNil(t, s.Nodes)
		assert.NotNil(t, s.Edges)
	})
}
