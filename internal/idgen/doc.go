// Package idgen provides node id strategies for the editor.
//
// A Generator only proposes ids. The store asks for the next candidate until
// it finds one not already present in the node collection, so strategies do
// not need to know about the graph.
//
// Three strategies are available:
//   - Sequence: decimal counter ("4", "5", ...), the editor default
//   - UUID: random RFC 4122 identifiers
//   - Hashed: short blake2b digests of a salt and a counter, stable across runs
package idgen
