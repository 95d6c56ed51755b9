// Package change implements the batch reducer of the flowstate graph engine.
//
// A batch is an ordered slice of change operations applied to one collection
// (nodes or edges). ApplyNodeChanges and ApplyEdgeChanges walk the batch once,
// in array order, over a private copy of the collection and return the new
// sequence. The input slice is never written to, so any snapshot still holding
// it stays observably unchanged.
//
// # Operations
//
//   - add: append the item, or insert it at Index (clamped) when set. An add
//     whose id already exists overwrites that record in place so ids stay unique.
//   - remove: delete the record with that id; absent ids are a no-op.
//   - replace: substitute the record value at its current index; absent ids are
//     a no-op, so a removed record never reappears.
//   - position (nodes only): set Position when present and always set Dragging.
//   - dimensions (nodes only): set the measured size.
//   - select: set the record's own Selected flag.
//
// # Errors
//
// Batches fail fast. The first change with an unknown kind (or a node-only
// kind sent to edges) stops the batch with ErrUnsupportedChangeKind; an add or
// replace without an item, or a dimensions change without a size, stops it
// with ErrMalformedChange. Both arrive wrapped in a *BatchError carrying the
// offending index, and no partial result is returned.
package change
