package tree

import (
	"testing"

	"taskkeep/internal/service"
)

func task(id, parent, title string) service.Task {
	return service.Task{ID: id, Parent: parent, Title: title, Status: service.StatusNeedsAction}
}

func ids(tasks []service.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func equalIDs(t *testing.T, got []service.Task, want ...string) {
	t.Helper()
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("got %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("got %v, want %v", g, want)
		}
	}
}

func TestBuildNestsChildrenUnderParents(t *testing.T) {
	tasks := []service.Task{
		task("a", "", "Plan trip"),
		task("b", "a", "Book flights"),
		task("c", "a", "Book hotel"),
		task("d", "", "Buy groceries"),
	}

	f := Build(tasks)

	equalIDs(t, f.TopLevel, "a", "d")
	equalIDs(t, f.Children("a"), "b", "c")
	if got := f.Children("d"); got != nil {
		t.Errorf("Children(d) = %v, want nil", ids(got))
	}
}

func TestBuildDanglingParentBecomesTopLevel(t *testing.T) {
	tasks := []service.Task{
		task("a", "", "Parent"),
		task("b", "gone", "Orphan"),
	}

	f := Build(tasks)

	equalIDs(t, f.TopLevel, "a", "b")
	if len(f.ChildrenByParent) != 0 {
		t.Errorf("ChildrenByParent = %v, want empty", f.ChildrenByParent)
	}
}

func TestBuildFilteredSubsetStaysConnected(t *testing.T) {
	// A child whose parent was filtered out of the collection renders
	// at the top level instead of disappearing.
	tasks := []service.Task{
		task("child", "parent-not-here", "Survivor"),
		task("grandchild", "child", "Attached"),
	}

	f := Build(tasks)

	equalIDs(t, f.TopLevel, "child")
	equalIDs(t, f.Children("child"), "grandchild")
}

func TestBuildEmptyInput(t *testing.T) {
	f := Build(nil)
	if len(f.TopLevel) != 0 || len(f.ChildrenByParent) != 0 {
		t.Errorf("Build(nil) = %+v, want empty forest", f)
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	tasks := []service.Task{
		task("b", "", "Second"),
		task("a", "", "First"),
	}
	Build(tasks)
	if tasks[0].ID != "b" || tasks[1].ID != "a" {
		t.Errorf("input order changed: %v", ids(tasks))
	}
}

func TestPartition(t *testing.T) {
	done := task("x", "", "Done")
	done.Status = service.StatusCompleted
	tasks := []service.Task{
		task("a", "", "Open"),
		done,
		task("b", "", "Also open"),
	}

	pending, completed := Partition(tasks)
	equalIDs(t, pending, "a", "b")
	equalIDs(t, completed, "x")
}

func TestFilterByList(t *testing.T) {
	tasks := []service.Task{
		task("a", "", "In work"),
		task("b", "", "In home"),
		task("c", "", "Unknown list"),
	}
	membership := map[string]string{"a": "work", "b": "home"}

	t.Run("specific list", func(t *testing.T) {
		equalIDs(t, FilterByList(tasks, membership, "work"), "a")
	})
	t.Run("all keeps everything", func(t *testing.T) {
		equalIDs(t, FilterByList(tasks, membership, AllLists), "a", "b", "c")
	})
	t.Run("empty keeps everything", func(t *testing.T) {
		equalIDs(t, FilterByList(tasks, membership, ""), "a", "b", "c")
	})
	t.Run("unknown membership dropped", func(t *testing.T) {
		if got := FilterByList(tasks, membership, "home"); len(got) != 1 || got[0].ID != "b" {
			t.Errorf("got %v, want [b]", ids(got))
		}
	})
}
