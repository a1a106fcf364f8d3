package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/events"
	taskdeckmcp "github.com/taskdeck/taskdeck/internal/mcp"
	"github.com/taskdeck/taskdeck/internal/storage"
)

// NewServeCommand returns the serve subcommand (MCP over stdio).
func NewServeCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Expose TodoRead and TodoWrite as an MCP server (stdio)",
		Action: runServe,
	}
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	// Setup logging to stderr (stdout is used for MCP stdio transport)
	if cmd.Bool("debug") {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	} else {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	}

	cfg := loadConfig(cmd)

	bus := events.NewBus(cfg.Events.BufferSize)
	defer bus.Close()

	if cfg.Events.LogEnabled() {
		logger := storage.NewEventLogger(filepath.Join(config.TaskdeckPath(), "events"), bus)
		defer logger.Close()
	}

	store := openStore(cfg, bus)

	// First run for this workspace: create the backing file through the
	// normal replace path so the gitignore entry is added too.
	if _, err := os.Stat(store.Path()); os.IsNotExist(err) {
		if _, err := store.Replace(ctx, nil); err != nil {
			return fmt.Errorf("bootstrap todo file: %w", err)
		}
	}

	slog.Debug("starting MCP server", "path", store.Path())

	server := taskdeckmcp.NewServer(store)
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}
