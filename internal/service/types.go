// Package service defines the backend-agnostic interface for the remote
// task provider.
package service

// Status values used by the remote provider.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task represents a single task item as returned by the remote provider.
// Timestamps are kept as the provider's RFC 3339 strings; Position is an
// opaque string whose lexicographic order encodes manual sibling order.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Notes     string `json:"notes,omitempty"`
	Status    string `json:"status"`
	Due       string `json:"due,omitempty"`
	Updated   string `json:"updated,omitempty"`
	Completed string `json:"completed,omitempty"`
	Parent    string `json:"parent,omitempty"`
	Position  string `json:"position,omitempty"`
}

// IsCompleted reports whether the task has been marked done.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// TaskList represents a task list.
type TaskList struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Updated string `json:"updated,omitempty"`
}

// TaskPatch holds the fields of a partial task update. Nil fields are
// left untouched remotely.
type TaskPatch struct {
	Title  *string `json:"title,omitempty"`
	Notes  *string `json:"notes,omitempty"`
	Status *string `json:"status,omitempty"`
	Due    *string `json:"due,omitempty"`
}

// IsZero reports whether the patch carries no fields.
func (p TaskPatch) IsZero() bool {
	return p.Title == nil && p.Notes == nil && p.Status == nil && p.Due == nil
}

// Apply overlays the patch onto a copy of the given task and returns it.
// Used for the optimistic local update before the remote call settles.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Notes != nil {
		t.Notes = *p.Notes
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Due != nil {
		t.Due = *p.Due
	}
	return t
}

// String returns a pointer to s, for building patches inline.
func String(s string) *string { return &s }
