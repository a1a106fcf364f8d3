// Package commands wires the taskdeck CLI. The mutating verbs are clients
// of the store's two operations: read the full list, transform it, replace
// it. None of them patch the list in place.
package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/taskdeck/taskdeck/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "taskdeck",
		Usage: "Per-workspace todo lists over MCP, HTTP and the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.ConfigPath(),
			},
			&cli.StringFlag{
				Name:    "workspace",
				Aliases: []string{"w"},
				Usage:   "Workspace directory (overrides config and environment)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewServeCommand(),
			NewGatewayCommand(),
			NewListCommand(),
			NewAddCommand(),
			NewDoneCommand(),
			NewRmCommand(),
			NewClearCommand(),
			NewStatusCommand(),
		},
	}
}
