// Package main is the entry point for the taskkeep CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"taskkeep/internal/backend/googletasks"
	"taskkeep/internal/cli"
	"taskkeep/internal/commands"
	"taskkeep/internal/config"
	"taskkeep/internal/service"
)

func main() {
	// Cancel on interrupt so serve shuts down cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return googletasks.New(ctx, cfg)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
