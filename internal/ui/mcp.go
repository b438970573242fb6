package ui

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/conference-hall/hall/internal/mcp"
)

func (a *App) mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the schedule to MCP clients over stdio",
		Long: `Run a Model Context Protocol server on stdin/stdout so that an assistant
can read and edit the schedule with the same rules as the board.

Logs go to stderr, or to the debug log with --debug.

Example client configuration:
  {"command": "hall", "args": ["mcp"]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			days, err := a.days()
			if err != nil {
				return err
			}
			loc, err := a.config.Location()
			if err != nil {
				return err
			}

			server := mcp.NewServer(mcp.Config{
				Planner:  a.planner,
				Days:     days,
				Location: loc,
				Now:      a.now,
				Version:  Version,
				Logger:   a.logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.logger.Info("starting mcp stdio server", "days", len(days))
			return runStdio(ctx, server)
		},
	}
}

// runStdio blocks until stdin closes or ctx is canceled.
func runStdio(ctx context.Context, server *sdkmcp.Server) error {
	err := server.Run(ctx, &sdkmcp.StdioTransport{})
	if ctx.Err() != nil {
		return nil
	}
	return err
}
