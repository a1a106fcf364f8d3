package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/taskdeck/taskdeck/internal/todo"
)

// NewStatusCommand returns the status subcommand.
func NewStatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show the resolved workspace and todo counts",
		Action: runStatus,
	}
}

func runStatus(ctx context.Context, cmd *cli.Command) error {
	store := openStore(loadConfig(cmd), nil)
	list := store.Read(ctx)

	counts := map[todo.Status]int{}
	for _, t := range list.Todos {
		counts[t.Status]++
	}

	fmt.Printf("Workspace file: %s\n", store.Path())
	fmt.Printf("Todos:          %d (%d pending, %d in_progress, %d completed)\n",
		len(list.Todos),
		counts[todo.StatusPending],
		counts[todo.StatusInProgress],
		counts[todo.StatusCompleted])
	if !list.LastModified.IsZero() {
		fmt.Printf("Last modified:  %s\n", list.LastModified.Format("2006-01-02 15:04:05"))
	}
	return nil
}
