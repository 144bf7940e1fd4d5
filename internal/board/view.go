package board

import (
	"taskkeep/internal/service"
	"taskkeep/internal/tree"
)

// Query selects the view to compute: an optional search query, an
// optional list tab, and the active sort.
type Query struct {
	// Search is the substring query; empty means no search.
	Search string

	// ListID restricts top-level tasks to one list; empty or "all"
	// shows everything.
	ListID string

	// Sort is the active criterion and direction.
	Sort tree.SortState
}

// View is the derived, render-ready structure: top-level tasks split
// into pending and completed partitions, each sorted, plus sorted child
// lists keyed by parent id.
type View struct {
	Pending   []service.Task
	Completed []service.Task
	Children  map[string][]service.Task
}

// View computes a fresh view from the board's current snapshot. The
// pipeline is search expansion, forest rebuild, tab filter, partition,
// then per-partition and per-parent sorting. Children are sorted by the
// same criterion as every other sibling list.
func (b *Board) View(q Query) View {
	collection := b.Tasks()
	membership := b.Membership()

	collection = tree.Search(collection, q.Search)
	forest := tree.Build(collection)

	topLevel := tree.FilterByList(forest.TopLevel, membership, q.ListID)
	pending, completed := tree.Partition(topLevel)

	v := View{
		Pending:   tree.SortTasks(pending, q.Sort, false),
		Completed: tree.SortTasks(completed, q.Sort, true),
		Children:  make(map[string][]service.Task, len(forest.ChildrenByParent)),
	}
	for parent, children := range forest.ChildrenByParent {
		v.Children[parent] = tree.SortTasks(children, q.Sort, false)
	}
	return v
}
