// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskkeep/internal/service"
)

const (
	// ListSeparator is the separator line for section headers.
	ListSeparator = "------------"

	// indent is the per-depth indentation for nested tasks.
	indent = "    "
)

// FormatSectionHeader formats a section header (a list title or a
// pending/completed heading).
func FormatSectionHeader(w io.Writer, title string) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, normalizeTitle(title))
	fmt.Fprintln(w, ListSeparator)
}

// FormatTask formats one task line at the given nesting depth.
// Format: "{indent}[x] {TITLE}  ({due...})".
func FormatTask(w io.Writer, depth int, task service.Task) {
	mark := "[ ]"
	if task.IsCompleted() {
		mark = "[x]"
	}

	line := strings.Repeat(indent, depth) + mark + " " + normalizeTitle(task.Title)
	if due := formatDue(task); due != "" {
		line += "  (" + due + ")"
	}
	fmt.Fprintln(w, line)
}

// WriteTree writes the given top-level tasks and, recursively, their
// children in the provided per-parent order.
func WriteTree(w io.Writer, topLevel []service.Task, children map[string][]service.Task) {
	for _, t := range topLevel {
		writeSubtree(w, t, children, 0)
	}
}

func writeSubtree(w io.Writer, task service.Task, children map[string][]service.Task, depth int) {
	FormatTask(w, depth, task)
	for _, child := range children[task.ID] {
		writeSubtree(w, child, children, depth+1)
	}
}

// FormatListName formats a list line for the lists command.
func FormatListName(w io.Writer, list service.TaskList) {
	fmt.Fprintln(w, normalizeTitle(list.Title))
}

// formatDue renders the due date, flagging overdue pending tasks.
func formatDue(task service.Task) string {
	if task.Due == "" {
		return ""
	}
	due, err := time.Parse(time.RFC3339, task.Due)
	if err != nil {
		return "due " + task.Due
	}
	s := "due " + due.Format("2006-01-02")
	if !task.IsCompleted() && due.Before(time.Now()) {
		s += ", overdue"
	}
	return s
}

// normalizeTitle normalizes a title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
