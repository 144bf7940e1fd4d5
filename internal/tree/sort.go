package tree

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"taskkeep/internal/service"
)

// Criterion selects the sort key.
type Criterion string

const (
	ByPosition Criterion = "position"
	ByDate     Criterion = "date"
	ByAlpha    Criterion = "alpha"
)

// Direction selects ascending or descending order.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState tracks the active criterion and direction. Reselecting the
// active criterion flips direction; selecting a new one resets to
// ascending.
type SortState struct {
	Criterion Criterion
	Direction Direction
}

// DefaultSortState is position ascending, the provider's manual order.
func DefaultSortState() SortState {
	return SortState{Criterion: ByPosition, Direction: Asc}
}

// Select applies a criterion selection to the state.
func (s *SortState) Select(c Criterion) {
	if s.Criterion == c {
		if s.Direction == Asc {
			s.Direction = Desc
		} else {
			s.Direction = Asc
		}
		return
	}
	s.Criterion = c
	s.Direction = Asc
}

// ParseCriterion maps a user-supplied name to a Criterion.
func ParseCriterion(name string) (Criterion, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "position", "pos":
		return ByPosition, true
	case "date", "due":
		return ByDate, true
	case "alpha", "alphabetical", "title":
		return ByAlpha, true
	}
	return "", false
}

// farFuture is the date-sort key for a pending task with neither due
// nor updated set; it sorts last in ascending order.
var farFuture = time.Unix(1<<62, 0)

// SortTasks returns a sorted copy of tasks. The completed flag selects
// the completed-partition date semantics: missing timestamps sort as
// epoch zero and the date comparison is inverted so most-recently
// completed comes first by default.
func SortTasks(tasks []service.Task, st SortState, completed bool) []service.Task {
	out := make([]service.Task, len(tasks))
	copy(out, tasks)

	cl := collate.New(language.English, collate.IgnoreCase)

	less := func(a, b service.Task) bool {
		c := compareTasks(cl, a, b, st.Criterion, completed)
		if st.Direction == Desc {
			c = -c
		}
		return c < 0
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// compareTasks is a total order: every comparator falls through to the
// task id, so reversing direction yields the exact reverse order.
func compareTasks(cl *collate.Collator, a, b service.Task, crit Criterion, completed bool) int {
	switch crit {
	case ByDate:
		ka, kb := dateKey(a, completed), dateKey(b, completed)
		c := ka.Compare(kb)
		if completed {
			c = -c
		}
		if c != 0 {
			return c
		}
		if c := compareTitles(cl, a, b); c != 0 {
			return c
		}
	case ByAlpha:
		if c := compareTitles(cl, a, b); c != 0 {
			return c
		}
	default: // ByPosition
		if c := strings.Compare(a.Position, b.Position); c != 0 {
			return c
		}
	}
	return strings.Compare(a.ID, b.ID)
}

func compareTitles(cl *collate.Collator, a, b service.Task) int {
	return cl.CompareString(a.Title, b.Title)
}

// dateKey returns the comparison timestamp for date sort: due if
// present, else updated, else a sentinel depending on the partition.
func dateKey(t service.Task, completed bool) time.Time {
	if ts, ok := parseTime(t.Due); ok {
		return ts
	}
	if ts, ok := parseTime(t.Updated); ok {
		return ts
	}
	if completed {
		return time.Unix(0, 0)
	}
	return farFuture
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
