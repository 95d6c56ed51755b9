// Package service coordinates the editor store with its hosts.
//
// EditorService owns a store.Store and runs every read and mutation on a
// single goroutine (Run), so HTTP handlers and other concurrent callers can
// share one editor session. Mutations are addressed as store.Action values and
// are applied in arrival order; a list of actions is applied as one unit that
// stops at the first failure.
//
// # Event System
//
// Every successful mutation publishes EventStateChanged with the new version
// and snapshot. Rejected actions publish EventActionRejected. The HTTP server
// forwards these to connected clients via Server-Sent Events (SSE).
//
// # Journal
//
// When a repository.Journal is configured, every dispatched action is recorded
// with its resulting version and error. The journal is for diagnostics only.
package service
