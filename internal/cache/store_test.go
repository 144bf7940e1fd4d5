package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"taskkeep/internal/service"
	"taskkeep/internal/taskerr"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskkeep.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTasksRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	tasks := []service.Task{
		{ID: "t1", Title: "First", Notes: "some notes", Status: "needsAction",
			Due: "2026-01-15T00:00:00Z", Updated: "2026-01-01T10:00:00Z",
			Parent: "", Position: "00000000000000000001"},
		{ID: "t2", Title: "Second", Status: "completed",
			Completed: "2026-01-02T12:00:00Z", Parent: "t1", Position: "00000000000000000002"},
	}
	if err := s.PutTasks(ctx, tasks); err != nil {
		t.Fatalf("PutTasks: %v", err)
	}

	got, err := s.GetAllTasks(ctx)
	if err != nil {
		t.Fatalf("GetAllTasks: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d tasks, want 2", len(got))
	}

	byID := make(map[string]service.Task)
	for _, g := range got {
		byID[g.ID] = g
	}
	if byID["t1"] != tasks[0] {
		t.Errorf("t1 = %+v, want %+v", byID["t1"], tasks[0])
	}
	if byID["t2"] != tasks[1] {
		t.Errorf("t2 = %+v, want %+v", byID["t2"], tasks[1])
	}
}

func TestPutTasksUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutTasks(ctx, []service.Task{{ID: "t1", Title: "Before"}}); err != nil {
		t.Fatalf("PutTasks: %v", err)
	}
	if err := s.PutTasks(ctx, []service.Task{{ID: "t1", Title: "After", Notes: "edited"}}); err != nil {
		t.Fatalf("PutTasks again: %v", err)
	}

	got, err := s.GetAllTasks(ctx)
	if err != nil {
		t.Fatalf("GetAllTasks: %v", err)
	}
	if len(got) != 1 || got[0].Title != "After" || got[0].Notes != "edited" {
		t.Errorf("got %+v, want single updated row", got)
	}
}

func TestDeleteTask(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutTasks(ctx, []service.Task{{ID: "t1", Title: "Doomed"}}); err != nil {
		t.Fatalf("PutTasks: %v", err)
	}
	if err := s.DeleteTask(ctx, "t1"); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if err := s.DeleteTask(ctx, "never-existed"); err != nil {
		t.Fatalf("DeleteTask missing id: %v", err)
	}

	got, err := s.GetAllTasks(ctx)
	if err != nil {
		t.Fatalf("GetAllTasks: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d tasks, want 0", len(got))
	}
}

func TestTaskListsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	lists := []service.TaskList{
		{ID: "l1", Title: "My Tasks", Updated: "2026-01-01T00:00:00Z"},
		{ID: "l2", Title: "Groceries", Updated: "2026-02-01T00:00:00Z"},
	}
	if err := s.PutTaskLists(ctx, lists); err != nil {
		t.Fatalf("PutTaskLists: %v", err)
	}

	got, err := s.GetAllTaskLists(ctx)
	if err != nil {
		t.Fatalf("GetAllTaskLists: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d lists, want 2", len(got))
	}
}

func TestMembershipRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Nothing stored yet.
	m, err := s.GetMembership(ctx)
	if err != nil {
		t.Fatalf("GetMembership: %v", err)
	}
	if m != nil {
		t.Errorf("got %v, want nil before first write", m)
	}

	if err := s.PutMembership(ctx, map[string]string{"t1": "l1", "t2": "l2"}); err != nil {
		t.Fatalf("PutMembership: %v", err)
	}

	// A second write replaces the map entirely.
	if err := s.PutMembership(ctx, map[string]string{"t3": "l1"}); err != nil {
		t.Fatalf("PutMembership replace: %v", err)
	}

	m, err = s.GetMembership(ctx)
	if err != nil {
		t.Fatalf("GetMembership: %v", err)
	}
	if len(m) != 1 || m["t3"] != "l1" {
		t.Errorf("got %v, want map[t3:l1]", m)
	}
}

func TestClearAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutTasks(ctx, []service.Task{{ID: "t1", Title: "A"}}); err != nil {
		t.Fatalf("PutTasks: %v", err)
	}
	if err := s.PutTaskLists(ctx, []service.TaskList{{ID: "l1", Title: "L"}}); err != nil {
		t.Fatalf("PutTaskLists: %v", err)
	}
	if err := s.PutMembership(ctx, map[string]string{"t1": "l1"}); err != nil {
		t.Fatalf("PutMembership: %v", err)
	}

	if err := s.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll: %v", err)
	}

	tasks, _ := s.GetAllTasks(ctx)
	lists, _ := s.GetAllTaskLists(ctx)
	m, _ := s.GetMembership(ctx)
	if len(tasks) != 0 || len(lists) != 0 || m != nil {
		t.Errorf("tasks=%d lists=%d membership=%v after ClearAll, want all empty",
			len(tasks), len(lists), m)
	}
}

func TestOpenSecondInstanceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskkeep.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	second, err := Open(path)
	if err == nil {
		second.Close()
		t.Fatal("second Open succeeded, want lock error")
	}
	if !errors.Is(err, taskerr.ErrStorageUnavailable) {
		t.Errorf("err = %v, want ErrStorageUnavailable", err)
	}
}

func TestOpenPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskkeep.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.PutTasks(ctx, []service.Task{{ID: "t1", Title: "Durable"}}); err != nil {
		t.Fatalf("PutTasks: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.GetAllTasks(ctx)
	if err != nil {
		t.Fatalf("GetAllTasks: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Durable" {
		t.Errorf("got %+v after reopen", got)
	}
}
