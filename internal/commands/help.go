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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskkeep help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskkeep                                           List cached tasks across lists
  taskkeep sync [common flags]                       Refresh the local cache from Google Tasks
  taskkeep list [common flags] [--sort <c>] [--desc] [--completed] [<list-name>]
  taskkeep search [common flags] [--sort <c>] [--desc] <query...>
  taskkeep add [common flags] [--list <list-name>] [--notes <text>] [--due <date>] <title...>
  taskkeep done [common flags] <ref>                 Toggle completion of a task
  taskkeep edit [common flags] [--title <t>] [--notes <n>] [--due <date>] <ref>
  taskkeep rm [common flags] <ref>                   Delete a task
  taskkeep lists [common flags]                      Print cached task lists
  taskkeep serve [common flags] [--addr host:port] [--sync]
  taskkeep chat [common flags] <message...>
  taskkeep login [common flags]
  taskkeep logout [common flags]
  taskkeep help
  taskkeep version

Sort criteria:
  position (default), date, alpha

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
