package tree

import "taskkeep/internal/service"

// AllLists is the tab value that shows every top-level task.
const AllLists = "all"

// FilterByList keeps the tasks whose membership entry equals listID.
// An empty or "all" listID keeps everything. Tasks with no membership
// entry are dropped from list-specific views (unknown list).
func FilterByList(tasks []service.Task, membership map[string]string, listID string) []service.Task {
	if listID == "" || listID == AllLists {
		return tasks
	}
	var out []service.Task
	for _, t := range tasks {
		if membership[t.ID] == listID {
			out = append(out, t)
		}
	}
	return out
}

// Partition splits tasks into pending and completed. The split is
// deterministic: order within each partition follows the input.
func Partition(tasks []service.Task) (pending, completed []service.Task) {
	for _, t := range tasks {
		if t.IsCompleted() {
			completed = append(completed, t)
		} else {
			pending = append(pending, t)
		}
	}
	return pending, completed
}
