package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskkeep/internal/config"
	"taskkeep/internal/exitcode"
	"taskkeep/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd creates a task via the remote provider. Creation is never
// purely local; the stored entity lands in the board and cache after
// the round-trip succeeds.
type AddCmd struct {
	listName string
	notes    string
	due      string
	parent   string
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskkeep add [--list <list-name>] [--notes <n>] [--due <rfc3339>] [--parent <task-id>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.notes, "notes", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.parent, "parent", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: task title required")
		return exitcode.UserError
	}

	env := openEnv(cfg, svc, errOut)
	defer env.close()

	if !env.requireSnapshot(ctx, errOut) {
		return exitcode.UserError
	}

	var listID string
	if c.listName != "" {
		list, err := resolveListRef(env.board, c.listName)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		listID = list.ID
	} else {
		lists := env.board.Lists()
		if len(lists) == 0 {
			fmt.Fprintln(errOut, "error: no task lists in cache (run: taskkeep sync)")
			return exitcode.UserError
		}
		listID = lists[0].ID
	}

	created, err := env.mutator.Create(ctx, listID, service.Task{
		Title:  title,
		Notes:  c.notes,
		Due:    c.due,
		Parent: c.parent,
	})
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created %s\n", created.ID)
	}
	return exitcode.Success
}
