// Package store implements the editor state container.
//
// A Store holds the current domain.State and exposes one method per editor
// operation (toggles, selection and hover, graph replacement and batched
// changes, viewport, node creation). Every successful mutation installs a new
// snapshot, bumps Version and notifies observers registered with Subscribe.
// Snapshots handed out earlier are never modified.
//
// The same operations can be addressed by name through Dispatch, which is how
// the HTTP API and action scripts drive a store.
//
// A Store is not safe for concurrent use. Hosts that mutate from several
// goroutines should go through service.EditorService.
package store
