package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskkeep/internal/board"
	"taskkeep/internal/config"
	"taskkeep/internal/exitcode"
	"taskkeep/internal/output"
	"taskkeep/internal/service"
	"taskkeep/internal/tree"
)

func init() {
	Register(&SearchCmd{})
}

// SearchCmd searches title and notes in the cached snapshot and prints
// the connected subtree around each match.
type SearchCmd struct {
	sortName string
	desc     bool
}

func (c *SearchCmd) Name() string      { return "search" }
func (c *SearchCmd) Aliases() []string { return []string{"find"} }
func (c *SearchCmd) Synopsis() string  { return "Search cached tasks" }
func (c *SearchCmd) Usage() string     { return "taskkeep search [--sort <criterion>] [--desc] <query...>" }
func (c *SearchCmd) NeedsAuth() bool   { return false }

func (c *SearchCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.sortName, "sort", "", "")
	fs.BoolVar(&c.desc, "desc", false, "")
}

func (c *SearchCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		fmt.Fprintln(errOut, "error: search query required")
		return exitcode.UserError
	}

	st := tree.DefaultSortState()
	if c.sortName != "" {
		crit, ok := tree.ParseCriterion(c.sortName)
		if !ok {
			fmt.Fprintf(errOut, "error: unknown sort criterion: %s\n", c.sortName)
			return exitcode.UserError
		}
		st.Criterion = crit
	}
	if c.desc {
		st.Direction = tree.Desc
	}

	env := openEnv(cfg, svc, errOut)
	defer env.close()

	if !env.requireSnapshot(ctx, errOut) {
		return exitcode.UserError
	}

	view := env.board.View(board.Query{Search: query, Sort: st})

	if len(view.Pending) == 0 && len(view.Completed) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.WriteTree(out, view.Pending, view.Children)
	if len(view.Completed) > 0 {
		output.FormatSectionHeader(out, "Completed")
		output.WriteTree(out, view.Completed, view.Children)
	}
	return exitcode.Success
}
