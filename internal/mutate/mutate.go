// Package mutate applies user-initiated edits with an optimistic local
// update and eventual remote consistency. The lifecycle per mutation is
// snapshot, optimistic apply, remote call, then confirm or roll back.
package mutate

import (
	"context"
	"log/slog"

	"taskkeep/internal/board"
	"taskkeep/internal/cache"
	"taskkeep/internal/service"
	"taskkeep/internal/taskerr"
)

// Coordinator funnels all task mutations through the board's single
// update path and keeps the cache consistent on success.
type Coordinator struct {
	svc    service.Service
	store  *cache.Store // nil in network-only mode
	board  *board.Board
	logger *slog.Logger
}

// New creates a mutation coordinator. store may be nil.
func New(svc service.Service, store *cache.Store, b *board.Board, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{svc: svc, store: store, board: b, logger: logger}
}

// Update applies a partial edit. The board is patched immediately; on
// remote success the authoritative entity replaces the optimistic copy
// and is persisted, on failure the pre-optimistic snapshot is restored
// and the cache is left untouched.
func (c *Coordinator) Update(ctx context.Context, taskID string, patch service.TaskPatch) (service.Task, error) {
	listID, ok := c.board.ListFor(taskID)
	if !ok {
		return service.Task{}, taskerr.ErrOwningListUnknown
	}
	prev, ok := c.board.Task(taskID)
	if !ok {
		return service.Task{}, taskerr.ErrTaskNotFound
	}

	c.board.ReplaceTask(patch.Apply(prev))

	updated, err := c.svc.UpdateTask(ctx, listID, taskID, patch)
	if err != nil {
		c.board.ReplaceTask(prev)
		c.logger.Debug("update rolled back", "task", taskID, "error", err)
		return service.Task{}, err
	}

	c.board.ReplaceTask(updated)
	c.persistTask(ctx, updated)
	return updated, nil
}

// ToggleComplete flips a task's completion status.
func (c *Coordinator) ToggleComplete(ctx context.Context, taskID string) (service.Task, error) {
	t, ok := c.board.Task(taskID)
	if !ok {
		return service.Task{}, taskerr.ErrTaskNotFound
	}
	status := service.StatusCompleted
	if t.IsCompleted() {
		status = service.StatusNeedsAction
	}
	return c.Update(ctx, taskID, service.TaskPatch{Status: service.String(status)})
}

// Delete removes a task. There is no optimistic phase: on success the
// task disappears from board and cache, on failure nothing was removed.
func (c *Coordinator) Delete(ctx context.Context, taskID string) error {
	listID, ok := c.board.ListFor(taskID)
	if !ok {
		return taskerr.ErrOwningListUnknown
	}
	if err := c.svc.DeleteTask(ctx, listID, taskID); err != nil {
		return err
	}

	c.board.RemoveTask(taskID)
	if c.store != nil {
		if err := c.store.DeleteTask(ctx, taskID); err != nil {
			c.logger.Warn("cache delete failed", "task", taskID, "error", err)
		}
	}
	c.persistMembership(ctx)
	return nil
}

// Create adds a task to a list via the remote provider and records the
// stored entity locally. Creation is never purely local.
func (c *Coordinator) Create(ctx context.Context, listID string, task service.Task) (service.Task, error) {
	created, err := c.svc.CreateTask(ctx, listID, task)
	if err != nil {
		return service.Task{}, err
	}

	c.board.UpsertTask(created, listID)
	c.persistTask(ctx, created)
	c.persistMembership(ctx)
	return created, nil
}

func (c *Coordinator) persistTask(ctx context.Context, t service.Task) {
	if c.store == nil {
		return
	}
	if err := c.store.PutTasks(ctx, []service.Task{t}); err != nil {
		c.logger.Warn("cache write failed", "task", t.ID, "error", err)
	}
}

// persistMembership rewrites the cached membership map after a create
// or delete changed it. The map is replaced as a single value.
func (c *Coordinator) persistMembership(ctx context.Context) {
	if c.store == nil {
		return
	}
	if err := c.store.PutMembership(ctx, c.board.Membership()); err != nil {
		c.logger.Warn("cache membership write failed", "error", err)
	}
}
