package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"flowstate/internal/change"
	"flowstate/internal/logging"
	"flowstate/internal/service"
	"flowstate/internal/store"
)

// maxBodyBytes caps the size of an action request
const maxBodyBytes = 4 << 20

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// ActionsResponse is returned by PostActions
type ActionsResponse struct {
	service.BatchResult
	Error string `json:"error,omitempty"`
}

// HealthResponse is returned by Health
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	Version   uint64    `json:"version"`
}

// EditorHandler handles editor API requests
type EditorHandler struct {
	svc     *service.EditorService
	logger  *slog.Logger
	started time.Time
}

// NewEditorHandler creates a new editor handler
func NewEditorHandler(svc *service.EditorService, logger *slog.Logger) *EditorHandler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &EditorHandler{svc: svc, logger: logger, started: time.Now()}
}

// Register mounts the API routes on mux
func (h *EditorHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/state", h.GetState)
	mux.HandleFunc("POST /api/actions", h.PostActions)
	mux.HandleFunc("GET /api/diagnostics", h.GetDiagnostics)
	mux.HandleFunc("GET /api/journal", h.GetJournal)
	mux.HandleFunc("GET /healthz", h.Health)
}

// GetState returns the current state and version
func (h *EditorHandler) GetState(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Snapshot(r.Context())
	if err != nil {
		h.writeServiceError(w, "Failed to get state", err)
		return
	}
	h.writeJSON(w, res, http.StatusOK)
}

// PostActions dispatches one action or an ordered list of actions. A list
// stops at the first rejected action; earlier actions stay applied.
func (h *EditorHandler) PostActions(w http.ResponseWriter, r *http.Request) {
	actions, err := decodeActions(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}
	if len(actions) == 0 {
		h.writeError(w, "Invalid request body", "no actions", http.StatusBadRequest)
		return
	}

	res, err := h.svc.DispatchAll(r.Context(), actions)
	switch {
	case err == nil:
		h.writeJSON(w, ActionsResponse{BatchResult: res}, http.StatusOK)
	case isRejection(err):
		h.writeJSON(w, ActionsResponse{BatchResult: res, Error: err.Error()}, http.StatusUnprocessableEntity)
	default:
		h.writeServiceError(w, "Failed to dispatch actions", err)
	}
}

// GetDiagnostics returns the dangling edge references of the current state
func (h *EditorHandler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	refs, err := h.svc.Diagnostics(r.Context())
	if err != nil {
		h.writeServiceError(w, "Failed to get diagnostics", err)
		return
	}
	h.writeJSON(w, refs, http.StatusOK)
}

// GetJournal returns journal entries, newest first
func (h *EditorHandler) GetJournal(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, "Invalid limit", raw, http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := h.svc.Journal(r.Context(), limit)
	if err != nil {
		h.writeServiceError(w, "Failed to list journal", err)
		return
	}
	h.writeJSON(w, entries, http.StatusOK)
}

// Health reports liveness and the current state version
func (h *EditorHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Service:   "flowstate",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.started).Round(time.Second).String(),
	}

	res, err := h.svc.Snapshot(ctx)
	if err != nil {
		resp.Status = "unavailable"
		h.writeJSON(w, resp, http.StatusServiceUnavailable)
		return
	}
	resp.Version = res.Version
	h.writeJSON(w, resp, http.StatusOK)
}

// decodeActions accepts a single action object or an array of them
func decodeActions(body io.Reader) ([]store.Action, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)

	if len(raw) > 0 && raw[0] == '[' {
		var actions []store.Action
		if err := json.Unmarshal(raw, &actions); err != nil {
			return nil, err
		}
		return actions, nil
	}

	var action store.Action
	if err := json.Unmarshal(raw, &action); err != nil {
		return nil, err
	}
	return []store.Action{action}, nil
}

// isRejection reports whether err came from the store refusing an action
func isRejection(err error) bool {
	var batchErr *change.BatchError
	return errors.Is(err, store.ErrUnknownAction) ||
		errors.Is(err, store.ErrInvalidPayload) ||
		errors.As(err, &batchErr)
}

func (h *EditorHandler) writeServiceError(w http.ResponseWriter, msg string, err error) {
	if errors.Is(err, service.ErrStopped) {
		h.writeError(w, msg, err.Error(), http.StatusServiceUnavailable)
		return
	}
	h.logger.Error(msg, "error", err)
	h.writeError(w, msg, err.Error(), http.StatusInternalServerError)
}

func (h *EditorHandler) writeJSON(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON", "error", err)
	}
}

func (h *EditorHandler) writeError(w http.ResponseWriter, msg, details string, statusCode int) {
	h.writeJSON(w, ErrorResponse{Error: msg, Details: details}, statusCode)
}
