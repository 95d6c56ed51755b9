package service

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"flowstate/internal/domain"
	"flowstate/internal/logging"
	"flowstate/internal/repository"
	"flowstate/internal/store"
)

// Service errors
var (
	ErrStopped        = errors.New("editor service stopped")
	ErrAlreadyRunning = errors.New("editor service already running")
)

// Result is the store state after a request was served
type Result struct {
	Version uint64       `json:"version"`
	State   domain.State `json:"state"`
}

// BatchResult reports how far a list of actions got
type BatchResult struct {
	Result
	Applied int `json:"applied"`
}

type request struct {
	fn   func(*store.Store)
	done chan struct{}
}

// EditorService serializes access to a store.Store. All reads and writes run
// on the goroutine executing Run, in the order they were accepted.
type EditorService struct {
	store    *store.Store
	eventBus *EventBus
	journal  repository.Journal
	logger   *slog.Logger

	requests chan request
	stopped  chan struct{}
	running  atomic.Bool

	// action being dispatched; only touched on the Run goroutine
	current string
}

// NewEditorService creates a service owning st. journal may be nil.
func NewEditorService(st *store.Store, eventBus *EventBus, journal repository.Journal, logger *slog.Logger) *EditorService {
	if logger == nil {
		logger = logging.Discard()
	}
	if eventBus == nil {
		eventBus = NewEventBus()
	}

	s := &EditorService{
		store:    st,
		eventBus: eventBus,
		journal:  journal,
		logger:   logger,
		requests: make(chan request),
		stopped:  make(chan struct{}),
	}
	st.Subscribe(s.onStateChanged)
	return s
}

// Run serves requests until ctx is done. It may be called once.
func (s *EditorService) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer close(s.stopped)

	s.logger.Info("editor service started", "version", s.store.Version())
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("editor service stopped", "version", s.store.Version())
			return nil
		case req := <-s.requests:
			req.fn(s.store)
			close(req.done)
		}
	}
}

// do runs fn on the writer goroutine and waits for it. If ctx ends after
// fn was accepted, fn still runs to completion.
func (s *EditorService) do(ctx context.Context, fn func(*store.Store)) error {
	req := request{fn: fn, done: make(chan struct{})}

	select {
	case s.requests <- req:
	case <-s.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-req.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns the current state and version
func (s *EditorService) Snapshot(ctx context.Context) (Result, error) {
	var res Result
	err := s.do(ctx, func(st *store.Store) {
		res = Result{Version: st.Version(), State: st.Snapshot()}
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// Dispatch applies one action. A rejected action leaves the state unchanged;
// its error is returned along with the current state.
func (s *EditorService) Dispatch(ctx context.Context, action store.Action) (Result, error) {
	batch, err := s.DispatchAll(ctx, []store.Action{action})
	return batch.Result, err
}

// DispatchAll applies actions in order and stops at the first failure. The
// whole list is applied without interleaving other requests.
func (s *EditorService) DispatchAll(ctx context.Context, actions []store.Action) (BatchResult, error) {
	var (
		res         BatchResult
		dispatchErr error
	)

	err := s.do(ctx, func(st *store.Store) {
		for _, action := range actions {
			if dispatchErr = s.apply(ctx, st, action); dispatchErr != nil {
				break
			}
			res.Applied++
		}
		res.Version = st.Version()
		res.State = st.Snapshot()
	})
	if err != nil {
		return BatchResult{}, err
	}
	return res, dispatchErr
}

func (s *EditorService) apply(ctx context.Context, st *store.Store, action store.Action) error {
	s.current = string(action.Type)
	defer func() { s.current = "" }()

	err := st.Dispatch(action)
	s.record(ctx, action, st.Version(), err)

	if err != nil {
		s.logger.Warn("action rejected", "action", action.Type, "error", err)
		s.eventBus.Publish(Event{
			Type:    EventActionRejected,
			Payload: ActionRejected{Action: string(action.Type), Error: err.Error()},
		})
	}
	return err
}

// onStateChanged runs synchronously inside store mutations
func (s *EditorService) onStateChanged(state domain.State) {
	s.eventBus.Publish(Event{
		Type: EventStateChanged,
		Payload: StateChanged{
			Action:  s.current,
			Version: s.store.Version(),
			State:   state,
		},
	})
}

func (s *EditorService) record(ctx context.Context, action store.Action, version uint64, dispatchErr error) {
	if s.journal == nil {
		return
	}

	entry := &repository.Entry{
		Action:  string(action.Type),
		Payload: action.Payload,
		Version: version,
	}
	if dispatchErr != nil {
		entry.Error = dispatchErr.Error()
	}

	if err := s.journal.Record(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Error("failed to journal action", "action", action.Type, "error", err)
	}
}

// Journal returns recent journal entries, newest first
func (s *EditorService) Journal(ctx context.Context, limit int) ([]repository.Entry, error) {
	if s.journal == nil {
		return []repository.Entry{}, nil
	}
	return s.journal.List(ctx, limit)
}

// Diagnostics reports dangling references in the current state
func (s *EditorService) Diagnostics(ctx context.Context) ([]domain.DanglingRef, error) {
	res, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	refs := res.State.DanglingReferences()
	if refs == nil {
		refs = []domain.DanglingRef{}
	}
	return refs, nil
}

// Events returns the bus the service publishes to
func (s *EditorService) Events() *EventBus {
	return s.eventBus
}
