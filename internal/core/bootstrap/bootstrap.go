// Package bootstrap assembles an editor session from configuration.
//
// Run works in phases: load the seed graph, build the id generator, set up
// placement and zoom bounds, open the journal and finally create the
// EditorService that owns the store. Each phase is logged.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"flowstate/internal/config"
	"flowstate/internal/domain"
	"flowstate/internal/idgen"
	"flowstate/internal/loader"
	"flowstate/internal/logging"
	"flowstate/internal/repository"
	"flowstate/internal/repository/sqlite"
	"flowstate/internal/service"
	"flowstate/internal/store"
)

// Session is a ready-to-run editor
type Session struct {
	Store    *store.Store
	Service  *service.EditorService
	Events   *service.EventBus
	Journal  repository.Journal // nil when disabled
	SeedFile string             // empty when the built-in seed was used

	Timestamp time.Time
	Duration  time.Duration
}

// Close releases the journal
func (s *Session) Close() error {
	if s.Journal == nil {
		return nil
	}
	return s.Journal.Close()
}

// Run builds a full session: store, journal and editor service. The
// service is not started; callers run Session.Service.Run themselves.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	start := time.Now()
	logger.Info("bootstrap: starting")

	st, seedFile, err := NewStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Phase 4: journal
	var journal repository.Journal
	if cfg.Journal.Enabled {
		logger.Info("bootstrap: phase 4, opening journal", "path", cfg.Journal.Path)
		j, err := sqlite.New(cfg.Journal.Path)
		if err != nil {
			return nil, fmt.Errorf("open journal: %w", err)
		}
		journal = j
	} else {
		logger.Info("bootstrap: phase 4, journal disabled")
	}

	if err := ctx.Err(); err != nil {
		if journal != nil {
			journal.Close()
		}
		return nil, err
	}

	// Phase 5: service
	logger.Info("bootstrap: phase 5, creating editor service")
	bus := service.NewEventBus()
	svc := service.NewEditorService(st, bus, journal, logger.With("component", "editor"))

	session := &Session{
		Store:     st,
		Service:   svc,
		Events:    bus,
		Journal:   journal,
		SeedFile:  seedFile,
		Timestamp: time.Now(),
		Duration:  time.Since(start),
	}

	logger.Info("bootstrap: complete",
		"duration", session.Duration,
		"nodes", len(st.Snapshot().Nodes),
		"id_strategy", cfg.Editor.IDStrategy,
		"journal", journal != nil,
	)
	return session, nil
}

// NewStore runs the store phases only: seed, ids, placement and zoom. It
// returns the seed file that was loaded, if any.
func NewStore(cfg *config.Config, logger *slog.Logger) (*store.Store, string, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	editor := cfg.Editor

	// Phase 1: seed graph
	fragment, err := LoadSeed(editor.SeedFile)
	if err != nil {
		return nil, "", err
	}
	logPhase(logger, 1, "seed graph", "source", seedSource(editor.SeedFile), "nodes", len(fragment.Nodes), "edges", len(fragment.Edges))

	// Phase 2: id generator, counting on from the seed size
	ids, err := idgen.New(editor.IDStrategy, uint64(len(fragment.Nodes)), editor.IDSalt)
	if err != nil {
		return nil, "", err
	}
	logPhase(logger, 2, "id generator", "strategy", editor.IDStrategy)

	// Phase 3: placement and zoom
	opts := []store.Option{
		store.WithInitialGraph(fragment),
		store.WithIDGenerator(ids),
		store.WithPlacement(store.NewRandomPlacement(editor.Placement.Width, editor.Placement.Height, editor.Placement.Seed)),
		store.WithLogger(logger.With("component", "store")),
	}
	if editor.Zoom.Bounded() {
		opts = append(opts, store.WithZoomBounds(editor.Zoom.Min, editor.Zoom.Max))
	}
	logPhase(logger, 3, "placement",
		"width", editor.Placement.Width,
		"height", editor.Placement.Height,
		"seeded", editor.Placement.Seed != 0,
		"zoom_bounded", editor.Zoom.Bounded(),
	)

	return store.New(opts...), editor.SeedFile, nil
}

// LoadSeed loads the graph in path, or the built-in triangle when path is
// empty
func LoadSeed(path string) (*domain.GraphFragment, error) {
	if path == "" {
		return &domain.GraphFragment{Nodes: domain.SeedNodes(), Edges: domain.SeedEdges()}, nil
	}
	fragment, err := loader.LoadFragment(path)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	return fragment, nil
}

func seedSource(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}

func logPhase(logger *slog.Logger, n int, name string, args ...any) {
	logger.Info(fmt.Sprintf("bootstrap: phase %d, %s", n, name), args...)
}
