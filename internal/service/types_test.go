package service

import "testing"

func TestTaskPatchApply(t *testing.T) {
	base := Task{
		ID: "t1", Title: "Original", Notes: "keep", Status: StatusNeedsAction,
		Due: "2026-01-15T00:00:00Z", Position: "1",
	}

	got := TaskPatch{Title: String("Renamed")}.Apply(base)
	if got.Title != "Renamed" || got.Notes != "keep" || got.Due != base.Due {
		t.Errorf("Apply = %+v", got)
	}
	if base.Title != "Original" {
		t.Error("Apply mutated its input")
	}

	// An explicit empty string clears the field; a nil pointer leaves
	// it alone.
	got = TaskPatch{Notes: String(""), Due: String("")}.Apply(base)
	if got.Notes != "" || got.Due != "" {
		t.Errorf("Apply = %+v, want cleared notes and due", got)
	}
	if got.Title != "Original" {
		t.Errorf("title changed: %+v", got)
	}
}

func TestTaskPatchIsZero(t *testing.T) {
	if !(TaskPatch{}).IsZero() {
		t.Error("empty patch should be zero")
	}
	if (TaskPatch{Status: String(StatusCompleted)}).IsZero() {
		t.Error("patch with a field should not be zero")
	}
}

func TestIsCompleted(t *testing.T) {
	if (Task{Status: StatusNeedsAction}).IsCompleted() {
		t.Error("needsAction should not be completed")
	}
	if !(Task{Status: StatusCompleted}).IsCompleted() {
		t.Error("completed should be completed")
	}
}
