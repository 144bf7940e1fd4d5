package commands

import (
	"context"
	"flag"
	"io"

	"taskkeep/internal/config"
	"taskkeep/internal/exitcode"
	"taskkeep/internal/output"
	"taskkeep/internal/service"
)

func init() {
	Register(&ListsCmd{})
}

// ListsCmd prints the cached task lists.
type ListsCmd struct{}

func (c *ListsCmd) Name() string      { return "lists" }
func (c *ListsCmd) Aliases() []string { return nil }
func (c *ListsCmd) Synopsis() string  { return "Show cached task lists" }
func (c *ListsCmd) Usage() string     { return "taskkeep lists [common flags]" }
func (c *ListsCmd) NeedsAuth() bool   { return false }

func (c *ListsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	env := openEnv(cfg, svc, errOut)
	defer env.close()

	if !env.requireSnapshot(ctx, errOut) {
		return exitcode.UserError
	}

	for _, list := range env.board.Lists() {
		output.FormatListName(out, list)
	}
	return exitcode.Success
}
