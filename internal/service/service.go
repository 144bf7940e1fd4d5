// Package service defines the backend-agnostic interface for the remote
// task provider.
package service

import "context"

// Service defines the interface for remote task provider operations.
// All Google Tasks API calls go through this interface.
// Coordinators and commands never import the Google SDK directly.
type Service interface {
	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ListTasks returns every task in a list, completed and hidden
	// included, across all pages. Results are in API order.
	ListTasks(ctx context.Context, listID string) ([]Task, error)

	// CreateTask creates a new task in the specified list and returns
	// the entity as stored by the provider.
	CreateTask(ctx context.Context, listID string, task Task) (Task, error)

	// UpdateTask applies a partial update; only non-nil patch fields
	// change remotely. The returned entity is authoritative.
	UpdateTask(ctx context.Context, listID, taskID string, patch TaskPatch) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, listID, taskID string) error
}
