package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"taskkeep/internal/board"
	"taskkeep/internal/cache"
	"taskkeep/internal/config"
	"taskkeep/internal/mutate"
	"taskkeep/internal/service"
	"taskkeep/internal/syncer"
	"taskkeep/internal/taskerr"
)

// env bundles the board, cache, and coordinators a command works with.
// A command opens one env, runs, and closes it.
type env struct {
	board   *board.Board
	store   *cache.Store // nil in network-only mode
	syncer  *syncer.Coordinator
	mutator *mutate.Coordinator
	logger  *slog.Logger
}

// openEnv opens the local cache and wires the coordinators. If the
// cache cannot be opened the command degrades to network-only mode
// with a warning instead of failing.
func openEnv(cfg *config.Config, svc service.Service, errOut io.Writer) *env {
	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))

	store, err := cache.Open(cfg.CachePath())
	if err != nil {
		if errors.Is(err, taskerr.ErrStorageUnavailable) {
			logger.Warn("local cache unavailable, running network-only", "error", err)
			store = nil
		} else {
			logger.Warn("local cache unavailable", "error", err)
			store = nil
		}
	}

	b := board.New()
	return &env{
		board:   b,
		store:   store,
		syncer:  syncer.New(svc, store, b, logger),
		mutator: mutate.New(svc, store, b, logger),
		logger:  logger,
	}
}

// load fills the board from the cached snapshot.
func (e *env) load(ctx context.Context) error {
	return e.syncer.Load(ctx)
}

// close releases the cache.
func (e *env) close() {
	if e.store != nil {
		e.store.Close()
	}
}

// requireSnapshot loads the cache and reports a friendly error when it
// is empty, which means sync has never run.
func (e *env) requireSnapshot(ctx context.Context, errOut io.Writer) bool {
	if err := e.load(ctx); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return false
	}
	if len(e.board.Tasks()) == 0 && len(e.board.Lists()) == 0 {
		fmt.Fprintln(errOut, "error: local cache is empty (run: taskkeep sync)")
		return false
	}
	return true
}
