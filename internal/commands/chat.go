package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskkeep/internal/chat"
	"taskkeep/internal/config"
	"taskkeep/internal/exitcode"
	"taskkeep/internal/service"
)

func init() {
	Register(&ChatCmd{})
}

// ChatCmd implements the chat command.
type ChatCmd struct{}

func (c *ChatCmd) Name() string      { return "chat" }
func (c *ChatCmd) Aliases() []string { return nil }
func (c *ChatCmd) Synopsis() string  { return "Send a message to the assistant" }
func (c *ChatCmd) Usage() string     { return "taskkeep chat <message> [common flags]" }
func (c *ChatCmd) NeedsAuth() bool   { return false }

func (c *ChatCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ChatCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" {
		fmt.Fprintln(errOut, "error: message required")
		fmt.Fprintf(errOut, "usage: %s\n", c.Usage())
		return exitcode.UserError
	}

	assistant := chat.NewAssistant()
	_, reply := assistant.Send(message)
	fmt.Fprintln(out, reply.Content)
	return exitcode.Success
}
