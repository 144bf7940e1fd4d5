package commands

import (
	"errors"
	"fmt"
	"strings"

	"taskkeep/internal/board"
	"taskkeep/internal/service"
)

// ErrTaskRefRequired is returned when no task reference was given.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrTaskRefAmbiguous is returned when a title reference matches more
// than one task.
var ErrTaskRefAmbiguous = errors.New("ambiguous task reference")

// ErrTaskRefNotFound is returned when nothing matches the reference.
var ErrTaskRefNotFound = errors.New("no task matches reference")

// resolveTaskRef resolves a user-supplied task reference against the
// board: first an exact id match, then a unique case-insensitive
// substring match on titles.
func resolveTaskRef(b *board.Board, args []string) (service.Task, error) {
	ref := strings.TrimSpace(strings.Join(args, " "))
	if ref == "" {
		return service.Task{}, ErrTaskRefRequired
	}

	if t, ok := b.Task(ref); ok {
		return t, nil
	}

	needle := strings.ToLower(ref)
	var matches []service.Task
	for _, t := range b.Tasks() {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			matches = append(matches, t)
		}
	}

	switch len(matches) {
	case 0:
		return service.Task{}, fmt.Errorf("%w: %s", ErrTaskRefNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return service.Task{}, fmt.Errorf("%w: %s (%d matches)", ErrTaskRefAmbiguous, ref, len(matches))
	}
}

// resolveListRef finds a list by title (case-insensitive, trimmed) or
// by exact id.
func resolveListRef(b *board.Board, name string) (service.TaskList, error) {
	name = strings.TrimSpace(name)
	nameLower := strings.ToLower(name)

	var matches []service.TaskList
	for _, l := range b.Lists() {
		if l.ID == name {
			return l, nil
		}
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, fmt.Errorf("list not found: %s", name)
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, fmt.Errorf("ambiguous list name: %s", name)
	}
}
