package commands

import (
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/events"
	"github.com/taskdeck/taskdeck/internal/todo"
	"github.com/taskdeck/taskdeck/internal/workspace"
)

// loadConfig loads the config file named by the --config flag, falling back
// to defaults when it does not exist. The --workspace flag overrides the
// configured workspace directory.
func loadConfig(cmd *cli.Command) *config.Config {
	configPath := cmd.String("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Debug("config not found, using defaults", "path", configPath, "error", err)
		cfg = config.Default()
	}
	if cmd.IsSet("workspace") {
		cfg.Workspace.Dir = cmd.String("workspace")
	}
	return cfg
}

// openStore resolves the workspace and returns its store. bus may be nil
// for one-shot commands that don't observe events.
func openStore(cfg *config.Config, bus *events.Bus) *todo.Store {
	path := workspace.Resolve(cfg)
	registry := todo.NewRegistry(cfg.Storage.WriteTimeout.Duration(), bus)
	return registry.Store(path)
}
