// Package mcp exposes the schedule to MCP clients over the Model Context Protocol.
//
// Every tool goes through the planner service, so an assistant editing the
// schedule gets the same overlap rules as the board and the CLI.
package mcp

import (
	"log/slog"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/conference-hall/hall/internal/planner"
	"github.com/conference-hall/hall/internal/schedule"
)

const serverInstructions = `Hall edits the schedule of a conference: sessions placed on tracks (rooms) across event days.

Start with list_days and get_agenda to learn the tracks and session ids.
Times are HH:MM wall clock in the event timezone, on a 5 minute grid.
Sessions never overlap on a track. add_session rejects an overlap; move_session
and resize_session shorten the session to fit before the next one instead.`

// Config contains server configuration.
type Config struct {
	Planner  *planner.Service
	Days     []schedule.Day
	Location *time.Location
	Now      func() time.Time // defaults to time.Now
	Version  string
	Logger   *slog.Logger
}

// NewServer creates an MCP server with every schedule tool registered.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "hall",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, &tools{
		planner: cfg.Planner,
		days:    cfg.Days,
		loc:     cfg.Location,
		now:     cfg.Now,
		logger:  cfg.Logger,
	})
	return server
}
