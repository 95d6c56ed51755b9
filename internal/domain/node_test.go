package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNode(t *testing.T) {
	t.Run("creates node with template defaults", func(t *testing.T) {
		node := NewNode("test-id", "Test Node", Position{X: 10, Y: 20})

		assert.Equal(t, "test-id", node.ID)
		assert.Equal(t, NodeTypeCustom, node.Type)
		assert.Equal(t, "Test Node", node.Data.Label)
		assert.Equal(t, DefaultNodeColor, node.Data.Color)
		assert.Equal(t, DefaultNodeIcon, node.Data.Icon)
		assert.True(t, node.Data.SourceHandle)
		assert.True(t, node.Data.TargetHandle)
		assert.Nil(t, node.Measured)
	})
}

func TestNodeWithPosition(t *testing.T) {
	t.Run("returns moved copy", func(t *testing.T) {
		node := NewNode("n", "N", Position{X: 1, Y: 2})
		moved := node.WithPosition(Position{X: 5, Y: 6})

		assert.Equal(t, Position{X: 5, Y: 6}, moved.Position)
		assert.Equal(t, Position{X: 1, Y: 2}, node.Position)
	})
}

func TestNodeWithMeasured(t *testing.T) {
	t.Run("copies do not share dimensions", func(t *testing.T) {
		node := NewNode("n", "N", Position{})
		a := node.WithMeasured(Dimensions{Width: 100, Height: 40})
		b := a.WithMeasured(Dimensions{Width: 200, Height: 80})

		require.NotNil(t, a.Measured)
		require.NotNil(t, b.Measured)
		assert.Equal(t, 100.0, a.Measured.Width)
		assert.Equal(t, 200.0, b.Measured.Width)
		assert.Nil(t, node.Measured)
	})
}

func TestIndexOfNode(t *testing.T) {
	nodes := SeedNodes()

	tests := []struct {
		name string
		id   string
		want int
	}{
		{"first", "1", 0},
		{"last", "3", 2},
		{"missing", "42", -1},
		{"empty id", "", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IndexOfNode(nodes, tt.id))
		})
	}
}
