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
	Register(&SyncCmd{})
}

// SyncCmd implements the sync command: a full refresh of the cached
// snapshot from Google Tasks.
type SyncCmd struct{}

func (c *SyncCmd) Name() string      { return "sync" }
func (c *SyncCmd) Aliases() []string { return []string{"refresh"} }
func (c *SyncCmd) Synopsis() string  { return "Refresh the local cache from Google Tasks" }
func (c *SyncCmd) Usage() string     { return "taskkeep sync [common flags]" }
func (c *SyncCmd) NeedsAuth() bool   { return true }

func (c *SyncCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *SyncCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	env := openEnv(cfg, svc, errOut)
	defer env.close()

	stats, err := env.syncer.Refresh(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "synced %d lists, %d tasks\n", stats.Lists, stats.Tasks)
	}
	return exitcode.Success
}
