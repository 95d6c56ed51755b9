package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"flowstate/internal/config"
	"flowstate/internal/core/bootstrap"
	"flowstate/internal/handler"
	"flowstate/internal/hub"
	"flowstate/internal/loader"
	"flowstate/internal/logging"
	"flowstate/internal/service"
	"flowstate/internal/watcher"
)

func main() {
	configPath := flag.String("config", "", "Config file path (default: search FLOWSTATE_CONFIG, ./flowstate.yaml, ...)")
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	seed := flag.String("seed", "", "Seed graph file (overrides config)")
	flag.Parse()

	if err := run(*configPath, *addr, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "flowstate: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, addr, seed string) error {
	cfg, path, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if seed != "" {
		cfg.Editor.SeedFile = seed
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(logger)
	logger.Info("starting flowstate server", "config", configSource(path))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	session, err := bootstrap.Run(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer session.Close()

	var wg sync.WaitGroup
	runCtx, cancelRun := context.WithCancel(context.Background())
	defer func() {
		cancelRun()
		wg.Wait()
	}()

	// Initialize SSE hub
	sseHub := hub.New(logger.With("component", "hub")).WithKeepalive(cfg.Server.Keepalive.Duration())
	wg.Add(1)
	go func() {
		defer wg.Done()
		sseHub.Run(runCtx)
	}()

	// Connect event bus to SSE hub
	eventChan := make(chan service.Event, 100)
	session.Events.Subscribe(eventChan)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case event := <-eventChan:
				sseHub.Broadcast(event)
			case <-runCtx.Done():
				return
			}
		}
	}()

	// Editor service owns the store from here on
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := session.Service.Run(runCtx); err != nil {
			logger.Error("editor service failed", "error", err)
		}
	}()

	if cfg.Editor.WatchSeed && session.SeedFile != "" {
		w := watcher.New(session.SeedFile, reloadSeed(runCtx, session.Service, logger)).
			WithLogger(logger.With("component", "watcher"))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := w.Watch(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("seed watcher stopped", "error", err)
			}
		}()
	}

	mux := http.NewServeMux()
	handler.NewEditorHandler(session.Service, logger.With("component", "http")).Register(mux)
	mux.Handle("GET /events", sseHub)

	finalHandler := handler.Chain(mux,
		handler.Recover(logger),
		handler.CORS(""),
		handler.Logger(logger),
	)

	// SSE streams are long-lived, so no WriteTimeout
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           finalHandler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration())
	defer cancel()

	// Close SSE streams first so Shutdown is not held open by them
	cancelRun()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func configSource(path string) string {
	if path == "" {
		return "defaults"
	}
	return path
}

// reloadSeed replaces the graph with the seed file's contents
func reloadSeed(ctx context.Context, svc *service.EditorService, logger *slog.Logger) func(string) {
	return func(path string) {
		fragment, err := loader.LoadFragment(path)
		if err != nil {
			logger.Warn("seed reload skipped", "path", path, "error", err)
			return
		}
		actions, err := loader.ReplaceActions(fragment)
		if err != nil {
			logger.Warn("seed reload skipped", "path", path, "error", err)
			return
		}
		res, err := svc.DispatchAll(ctx, actions)
		if err != nil {
			logger.Warn("seed reload failed", "path", path, "error", err)
			return
		}
		logger.Info("seed reloaded", "path", path, "nodes", len(fragment.Nodes), "version", res.Version)
	}
}
