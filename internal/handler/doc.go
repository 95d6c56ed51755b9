// Package handler implements the HTTP API of the flowstate editor.
//
// EditorHandler exposes an EditorService over JSON:
//
//	GET  /api/state        current state and version
//	POST /api/actions      one action object or an array of actions
//	GET  /api/diagnostics  dangling edge references
//	GET  /api/journal      recently dispatched actions (?limit=N)
//	GET  /healthz          liveness
//
// Errors are returned as JSON with an {error, details} body. Malformed
// request bodies get 400, actions the store rejects get 422 and a stopped
// service gets 503.
//
// Middleware provides panic recovery, CORS and request logging.
package handler
