// Package domain defines the core value types of the flowstate diagram editor.
//
// This package contains the records the editor tracks (nodes and edges), the
// viewport transform, the selection/hover tracker and the composed State
// snapshot observed by callers after every mutation.
//
// # Core Types
//
// Node is a diagram vertex with a position and display metadata (label,
// color, icon and handle flags).
//
// Edge is a directed connection between two node ids. The engine does not
// require Source and Target to resolve; see DanglingReferences.
//
// Viewport is the pan/zoom transform applied to the canvas. ViewportPatch
// carries a partial update where absent fields are nil.
//
// State composes the graph, the viewport, the selection tracker and the UI
// flags into one snapshot value.
//
// # Seed Graph
//
// InitialState returns the fixed session seed: three nodes forming a triangle
// (1→2, 2→3, 1→3) at the default viewport.
//
// # Design Principles
//
// - Snapshots are values; slices are never written in place once shared
// - No I/O or external dependencies
// - Pointer fields (Node.Measured) are replaced, never written through
package domain
