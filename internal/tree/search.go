package tree

import (
	"strings"

	"taskkeep/internal/service"
)

// Search finds tasks whose title or notes contain the query substring
// (case-insensitive), then expands the result set to keep the forest
// connected: every ancestor of a match is included, and then every
// descendant of anything already included, transitively.
//
// The result preserves the input collection's order and is meant to be
// fed back through Build as if it were the complete collection. An
// empty or whitespace-only query clears search and returns the input
// unchanged.
func Search(tasks []service.Task, query string) []service.Task {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return tasks
	}

	byID := make(map[string]service.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	included := make(map[string]struct{})

	// Direct matches.
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Notes), query) {
			included[t.ID] = struct{}{}
		}
	}

	// Walk up: a matched child reveals its lineage. The visited set
	// guards against a cyclic parent chain in bad data.
	for id := range included {
		visited := map[string]struct{}{id: {}}
		cur := byID[id]
		for cur.Parent != "" {
			parent, ok := byID[cur.Parent]
			if !ok {
				break
			}
			if _, seen := visited[parent.ID]; seen {
				break
			}
			visited[parent.ID] = struct{}{}
			included[parent.ID] = struct{}{}
			cur = parent
		}
	}

	// Walk down: anything whose parent is included joins the set,
	// repeated until a fixpoint.
	for {
		added := false
		for _, t := range tasks {
			if _, ok := included[t.ID]; ok {
				continue
			}
			if t.Parent == "" {
				continue
			}
			if _, ok := included[t.Parent]; ok {
				included[t.ID] = struct{}{}
				added = true
			}
		}
		if !added {
			break
		}
	}

	out := make([]service.Task, 0, len(included))
	for _, t := range tasks {
		if _, ok := included[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out
}
