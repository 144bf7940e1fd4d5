// Package syncer orchestrates the full refresh of the cached snapshot
// from the remote provider.
package syncer

import (
	"context"
	"log/slog"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"taskkeep/internal/board"
	"taskkeep/internal/cache"
	"taskkeep/internal/service"
	"taskkeep/internal/taskerr"
)

// Stats reports what a successful refresh brought in.
type Stats struct {
	Lists int `json:"task_lists"`
	Tasks int `json:"tasks"`
}

// Coordinator performs full refreshes: fetch everything, rebuild the
// membership map, replace the cache, update the board.
type Coordinator struct {
	svc      service.Service
	store    *cache.Store // nil in network-only mode
	board    *board.Board
	logger   *slog.Logger
	inFlight atomic.Bool
}

// New creates a sync coordinator. store may be nil when local storage
// is unavailable; syncing then only updates the in-memory board.
func New(svc service.Service, store *cache.Store, b *board.Board, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{svc: svc, store: store, board: b, logger: logger}
}

// Refresh fetches all lists, fans out one task fetch per list, waits
// for the barrier, and only then replaces the cached snapshot. Any
// fetch failure aborts the whole refresh with the prior snapshot left
// untouched. A refresh while another is in flight is rejected with
// ErrSyncInFlight, never interleaved.
func (c *Coordinator) Refresh(ctx context.Context) (Stats, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Stats{}, taskerr.ErrSyncInFlight
	}
	defer c.inFlight.Store(false)

	lists, err := c.svc.ListLists(ctx)
	if err != nil {
		return Stats{}, &taskerr.SyncError{Cause: err}
	}

	perList := make([][]service.Task, len(lists))
	g, gctx := errgroup.WithContext(ctx)
	for i, l := range lists {
		i, l := i, l
		g.Go(func() error {
			tasks, err := c.svc.ListTasks(gctx, l.ID)
			if err != nil {
				return err
			}
			perList[i] = tasks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, &taskerr.SyncError{Cause: err}
	}

	// A task belongs to exactly the list it was returned under.
	var all []service.Task
	membership := make(map[string]string)
	for i, l := range lists {
		for _, t := range perList[i] {
			membership[t.ID] = l.ID
			all = append(all, t)
		}
	}

	c.board.ReplaceAll(all, lists, membership)

	if c.store != nil {
		if err := c.persist(ctx, all, lists, membership); err != nil {
			// Degrade to network-only mode; the fetch itself succeeded.
			c.logger.Warn("cache write failed, continuing without offline cache", "error", err)
		}
	}

	c.logger.Debug("sync complete", "lists", len(lists), "tasks", len(all))
	return Stats{Lists: len(lists), Tasks: len(all)}, nil
}

// persist clears the store and writes the fresh snapshot. Clearing
// first keeps stale and fresh data from mixing.
func (c *Coordinator) persist(ctx context.Context, tasks []service.Task, lists []service.TaskList, membership map[string]string) error {
	if err := c.store.ClearAll(ctx); err != nil {
		return err
	}
	if err := c.store.PutTaskLists(ctx, lists); err != nil {
		return err
	}
	if err := c.store.PutTasks(ctx, tasks); err != nil {
		return err
	}
	return c.store.PutMembership(ctx, membership)
}

// Load reads the cached snapshot into the board, the startup path for
// offline viewing. With no store it is a no-op.
func (c *Coordinator) Load(ctx context.Context) error {
	if c.store == nil {
		return nil
	}
	tasks, err := c.store.GetAllTasks(ctx)
	if err != nil {
		return err
	}
	lists, err := c.store.GetAllTaskLists(ctx)
	if err != nil {
		return err
	}
	membership, err := c.store.GetMembership(ctx)
	if err != nil {
		return err
	}
	c.board.ReplaceAll(tasks, lists, membership)
	return nil
}
