// Package board holds the in-memory task collection shared by the sync
// and mutation coordinators and by every read-side view. Readers get
// snapshots; the only write paths are ReplaceAll (sync), ReplaceTask,
// UpsertTask, and RemoveTask (mutations). No partial in-place field
// mutation happens anywhere.
package board

import (
	"sync"

	"taskkeep/internal/service"
)

// Board is the single shared mutable collection of tasks, lists, and
// the task-to-list membership map.
type Board struct {
	mu         sync.RWMutex
	tasks      []service.Task
	lists      []service.TaskList
	membership map[string]string
}

// New returns an empty board.
func New() *Board {
	return &Board{membership: make(map[string]string)}
}

// ReplaceAll swaps in a complete snapshot, the sync path.
func (b *Board) ReplaceAll(tasks []service.Task, lists []service.TaskList, membership map[string]string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tasks = append([]service.Task(nil), tasks...)
	b.lists = append([]service.TaskList(nil), lists...)
	b.membership = make(map[string]string, len(membership))
	for k, v := range membership {
		b.membership[k] = v
	}
}

// Tasks returns a copy of the current task collection.
func (b *Board) Tasks() []service.Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]service.Task(nil), b.tasks...)
}

// Lists returns a copy of the current task lists.
func (b *Board) Lists() []service.TaskList {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]service.TaskList(nil), b.lists...)
}

// Membership returns a copy of the membership map.
func (b *Board) Membership() map[string]string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m := make(map[string]string, len(b.membership))
	for k, v := range b.membership {
		m[k] = v
	}
	return m
}

// Task looks up a task by id.
func (b *Board) Task(id string) (service.Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, t := range b.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// ListFor resolves the owning list for a task id via the membership
// map. The second return is false when the membership is unknown.
func (b *Board) ListFor(taskID string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	listID, ok := b.membership[taskID]
	return listID, ok
}

// ReplaceTask replaces the entry with the same id in full. Unknown ids
// are ignored.
func (b *Board) ReplaceTask(task service.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, t := range b.tasks {
		if t.ID == task.ID {
			b.tasks[i] = task
			return
		}
	}
}

// UpsertTask replaces the entry with the same id, or appends it, and
// records its owning list in the membership map.
func (b *Board) UpsertTask(task service.Task, listID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.membership[task.ID] = listID
	for i, t := range b.tasks {
		if t.ID == task.ID {
			b.tasks[i] = task
			return
		}
	}
	b.tasks = append(b.tasks, task)
}

// RemoveTask removes a task and its membership entry.
func (b *Board) RemoveTask(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.membership, id)
	for i, t := range b.tasks {
		if t.ID == id {
			b.tasks = append(b.tasks[:i], b.tasks[i+1:]...)
			return
		}
	}
}
