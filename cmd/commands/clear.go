package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewClearCommand returns the clear subcommand.
func NewClearCommand() *cli.Command {
	return &cli.Command{
		Name:   "clear",
		Usage:  "Remove every todo from the workspace's list",
		Action: runClear,
	}
}

func runClear(ctx context.Context, cmd *cli.Command) error {
	store := openStore(loadConfig(cmd), nil)
	if err := store.Clear(ctx); err != nil {
		return err
	}
	fmt.Println("Cleared.")
	return nil
}
