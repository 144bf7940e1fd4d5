package tree

import (
	"testing"

	"taskkeep/internal/service"
)

func TestSortStateSelect(t *testing.T) {
	st := DefaultSortState()
	if st.Criterion != ByPosition || st.Direction != Asc {
		t.Fatalf("default = %+v", st)
	}

	st.Select(ByDate)
	if st.Criterion != ByDate || st.Direction != Asc {
		t.Errorf("after selecting date: %+v, want date asc", st)
	}

	st.Select(ByDate)
	if st.Direction != Desc {
		t.Errorf("reselecting date should flip to desc, got %+v", st)
	}

	st.Select(ByDate)
	if st.Direction != Asc {
		t.Errorf("reselecting date again should flip back to asc, got %+v", st)
	}

	st.Select(ByAlpha)
	if st.Criterion != ByAlpha || st.Direction != Asc {
		t.Errorf("switching criterion should reset to asc, got %+v", st)
	}
}

func TestParseCriterion(t *testing.T) {
	tests := []struct {
		in   string
		want Criterion
		ok   bool
	}{
		{"position", ByPosition, true},
		{"pos", ByPosition, true},
		{"date", ByDate, true},
		{"due", ByDate, true},
		{"alpha", ByAlpha, true},
		{"title", ByAlpha, true},
		{"  Date ", ByDate, true},
		{"bogus", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCriterion(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCriterion(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSortByPosition(t *testing.T) {
	tasks := []service.Task{
		{ID: "a", Title: "Third", Position: "00000000000000000003"},
		{ID: "b", Title: "First", Position: "00000000000000000001"},
		{ID: "c", Title: "Second", Position: "00000000000000000002"},
	}

	got := SortTasks(tasks, SortState{ByPosition, Asc}, false)
	equalIDs(t, got, "b", "c", "a")
}

func TestSortByAlphaIgnoresCase(t *testing.T) {
	tasks := []service.Task{
		{ID: "1", Title: "banana"},
		{ID: "2", Title: "Apple"},
		{ID: "3", Title: "cherry"},
	}

	got := SortTasks(tasks, SortState{ByAlpha, Asc}, false)
	equalIDs(t, got, "2", "1", "3")
}

func TestSortByDatePending(t *testing.T) {
	tasks := []service.Task{
		{ID: "nodates", Title: "No timestamps at all"},
		{ID: "late", Title: "Due later", Due: "2026-03-01T00:00:00Z"},
		{ID: "early", Title: "Due soon", Due: "2026-01-15T00:00:00Z"},
		{ID: "updated", Title: "No due date", Updated: "2026-02-01T10:00:00Z"},
	}

	got := SortTasks(tasks, SortState{ByDate, Asc}, false)

	// Due date first, updated as fallback, missing-everything last.
	equalIDs(t, got, "early", "updated", "late", "nodates")
}

func TestSortByDateCompletedInverted(t *testing.T) {
	tasks := []service.Task{
		{ID: "old", Title: "Finished long ago", Status: service.StatusCompleted, Due: "2025-01-01T00:00:00Z"},
		{ID: "recent", Title: "Finished yesterday", Status: service.StatusCompleted, Due: "2026-08-31T00:00:00Z"},
		{ID: "blank", Title: "No timestamps", Status: service.StatusCompleted},
	}

	// Ascending in the completed partition means most recent first;
	// missing timestamps sort as oldest, so they land last.
	got := SortTasks(tasks, SortState{ByDate, Asc}, true)
	equalIDs(t, got, "recent", "old", "blank")
}

func TestSortDirectionFlipIsExactReverse(t *testing.T) {
	tasks := []service.Task{
		{ID: "a", Title: "Same", Due: "2026-01-01T00:00:00Z", Position: "2"},
		{ID: "b", Title: "Same", Due: "2026-01-01T00:00:00Z", Position: "2"},
		{ID: "c", Title: "Other", Due: "2026-02-01T00:00:00Z", Position: "1"},
		{ID: "d", Title: "Same", Position: "3"},
	}

	for _, crit := range []Criterion{ByPosition, ByDate, ByAlpha} {
		asc := SortTasks(tasks, SortState{crit, Asc}, false)
		desc := SortTasks(tasks, SortState{crit, Desc}, false)
		for i := range asc {
			if asc[i].ID != desc[len(desc)-1-i].ID {
				t.Errorf("%s: desc is not the reverse of asc:\nasc  %v\ndesc %v",
					crit, ids(asc), ids(desc))
				break
			}
		}
	}
}

func TestSortIsIdempotent(t *testing.T) {
	tasks := []service.Task{
		{ID: "b", Title: "Beta", Position: "2"},
		{ID: "a", Title: "Alpha", Position: "1"},
		{ID: "c", Title: "Gamma", Position: "3"},
	}

	st := SortState{ByAlpha, Asc}
	once := SortTasks(tasks, st, false)
	twice := SortTasks(once, st, false)
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("resort changed order: %v vs %v", ids(once), ids(twice))
		}
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	tasks := []service.Task{
		{ID: "b", Title: "Beta", Position: "2"},
		{ID: "a", Title: "Alpha", Position: "1"},
	}
	SortTasks(tasks, SortState{ByPosition, Asc}, false)
	if tasks[0].ID != "b" {
		t.Errorf("input mutated: %v", ids(tasks))
	}
}
