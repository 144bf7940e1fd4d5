package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"

	"taskkeep/internal/config"
	"taskkeep/internal/exitcode"
	"taskkeep/internal/service"
	"taskkeep/internal/web"
)

func init() {
	Register(&ServeCmd{})
}

// ServeCmd implements the serve command.
type ServeCmd struct {
	addr   string
	doSync bool
}

func (c *ServeCmd) Name() string      { return "serve" }
func (c *ServeCmd) Aliases() []string { return nil }
func (c *ServeCmd) Synopsis() string  { return "Run the local web server" }
func (c *ServeCmd) Usage() string {
	return "taskkeep serve [--addr host:port] [--sync] [common flags]"
}
func (c *ServeCmd) NeedsAuth() bool { return true }

func (c *ServeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.addr, "addr", "", "listen address (default from settings)")
	fs.BoolVar(&c.doSync, "sync", false, "refresh from the backend before serving")
}

func (c *ServeCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	env := openEnv(cfg, svc, errOut)
	defer env.close()

	if err := env.load(ctx); err != nil {
		fmt.Fprintf(errOut, "warning: %v\n", err)
	}

	if c.doSync {
		if _, err := env.syncer.Refresh(ctx); err != nil {
			return reportError(errOut, err)
		}
	}

	addr := c.addr
	if addr == "" {
		addr = cfg.Settings.ServeAddr
	}

	srv := web.NewServer(addr, env.board, env.syncer, env.mutator, env.logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	if !cfg.Quiet {
		fmt.Fprintf(out, "listening on http://%s\n", addr)
	}

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(errOut, "error: server failed: %v\n", err)
			return exitcode.BackendError
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), web.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(errOut, "error: shutdown failed: %v\n", err)
			return exitcode.BackendError
		}
	}
	return exitcode.Success
}
