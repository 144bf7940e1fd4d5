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
	Register(&ListCmd{})
}

// ListCmd renders the cached task forest. Handles both `taskkeep` (no
// args) and `taskkeep list [list-name]`.
type ListCmd struct {
	sortName  string
	desc      bool
	completed bool
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "Show the cached task tree" }
func (c *ListCmd) Usage() string {
	return "taskkeep list [--sort position|date|alpha] [--desc] [--completed] [list-name]"
}
func (c *ListCmd) NeedsAuth() bool { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.sortName, "sort", "", "")
	fs.BoolVar(&c.desc, "desc", false, "")
	fs.BoolVar(&c.completed, "completed", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	st := tree.DefaultSortState()
	sortName := c.sortName
	if sortName == "" {
		sortName = cfg.Settings.Sort
	}
	if sortName != "" {
		crit, ok := tree.ParseCriterion(sortName)
		if !ok {
			fmt.Fprintf(errOut, "error: unknown sort criterion: %s\n", sortName)
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

	listID := ""
	if len(args) > 0 {
		list, err := resolveListRef(env.board, strings.Join(args, " "))
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		listID = list.ID
	}

	view := env.board.View(board.Query{ListID: listID, Sort: st})

	if len(view.Pending) == 0 && len(view.Completed) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.WriteTree(out, view.Pending, view.Children)

	if c.completed && len(view.Completed) > 0 {
		output.FormatSectionHeader(out, "Completed")
		output.WriteTree(out, view.Completed, view.Children)
	}
	return exitcode.Success
}
