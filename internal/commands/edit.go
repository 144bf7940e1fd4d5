package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskkeep/internal/config"
	"taskkeep/internal/exitcode"
	"taskkeep/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd applies a partial edit to a task: title, notes, or due date.
// The local view updates immediately; a failed remote call visibly
// reverts it.
type EditCmd struct {
	title    string
	notes    string
	due      string
	setTitle bool
	setNotes bool
	setDue   bool
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task's title, notes, or due date" }
func (c *EditCmd) Usage() string {
	return "taskkeep edit [--title <t>] [--notes <n>] [--due <rfc3339>] <task-id-or-title>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("title", "", func(v string) error { c.title, c.setTitle = v, true; return nil })
	fs.Func("notes", "", func(v string) error { c.notes, c.setNotes = v, true; return nil })
	fs.Func("due", "", func(v string) error { c.due, c.setDue = v, true; return nil })
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	patch := service.TaskPatch{}
	if c.setTitle {
		patch.Title = service.String(c.title)
	}
	if c.setNotes {
		patch.Notes = service.String(c.notes)
	}
	if c.setDue {
		patch.Due = service.String(c.due)
	}
	if patch.IsZero() {
		fmt.Fprintln(errOut, "error: nothing to edit (provide --title, --notes, or --due)")
		return exitcode.UserError
	}

	env := openEnv(cfg, svc, errOut)
	defer env.close()

	if !env.requireSnapshot(ctx, errOut) {
		return exitcode.UserError
	}

	task, err := resolveTaskRef(env.board, args)
	if err != nil {
		return reportRefError(errOut, err)
	}

	if _, err := env.mutator.Update(ctx, task.ID, patch); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
