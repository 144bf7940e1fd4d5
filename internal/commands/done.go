package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskkeep/internal/config"
	"taskkeep/internal/exitcode"
	"taskkeep/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd toggles a task's completion status, optimistically.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "taskkeep done <task-id-or-title>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	env := openEnv(cfg, svc, errOut)
	defer env.close()

	if !env.requireSnapshot(ctx, errOut) {
		return exitcode.UserError
	}

	task, err := resolveTaskRef(env.board, args)
	if err != nil {
		return reportRefError(errOut, err)
	}

	updated, err := env.mutator.ToggleComplete(ctx, task.ID)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		if updated.IsCompleted() {
			fmt.Fprintln(out, "completed")
		} else {
			fmt.Fprintln(out, "reopened")
		}
	}
	return exitcode.Success
}

// reportRefError prints task reference resolution failures.
func reportRefError(errOut io.Writer, err error) int {
	if errors.Is(err, ErrTaskRefRequired) {
		fmt.Fprintln(errOut, "error: task reference required")
	} else {
		fmt.Fprintf(errOut, "error: %v\n", err)
	}
	return exitcode.UserError
}
