// Package tree holds the pure transforms over in-memory task
// collections: forest reconstruction, sorting, filtering, and search.
// Nothing in this package mutates its input; every call computes a
// fresh derived structure.
package tree

import "taskkeep/internal/service"

// Forest is the display structure rebuilt from a flat task collection:
// the top-level tasks plus per-parent child lists.
type Forest struct {
	TopLevel         []service.Task
	ChildrenByParent map[string][]service.Task
}

// Build reconstructs the forest from a flat collection in a single
// pass. A task whose declared parent does not resolve within the input
// set is treated as top-level, so a filtered collection still renders
// connectedly.
func Build(tasks []service.Task) Forest {
	index := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		index[t.ID] = struct{}{}
	}

	f := Forest{
		ChildrenByParent: make(map[string][]service.Task),
	}
	for _, t := range tasks {
		if t.Parent != "" {
			if _, ok := index[t.Parent]; ok {
				f.ChildrenByParent[t.Parent] = append(f.ChildrenByParent[t.Parent], t)
				continue
			}
		}
		f.TopLevel = append(f.TopLevel, t)
	}
	return f
}

// Children returns the child list for a parent id, or nil.
func (f Forest) Children(parentID string) []service.Task {
	return f.ChildrenByParent[parentID]
}
