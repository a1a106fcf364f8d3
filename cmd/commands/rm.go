package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/taskdeck/taskdeck/internal/todo"
)

// NewRmCommand returns the rm subcommand.
func NewRmCommand() *cli.Command {
	return &cli.Command{
		Name:  "rm",
		Usage: "Remove a todo from the workspace's list",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "id",
				UsageText: "Todo id",
			},
		},
		Action: runRm,
	}
}

func runRm(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("id is required")
	}

	store := openStore(loadConfig(cmd), nil)
	list := store.Read(ctx)

	next := make([]todo.Task, 0, len(list.Todos))
	for _, t := range list.Todos {
		if t.ID != id {
			next = append(next, t)
		}
	}
	if len(next) == len(list.Todos) {
		return fmt.Errorf("todo not found: %s", id)
	}

	count, err := store.Replace(ctx, next)
	if err != nil {
		return err
	}

	fmt.Printf("Removed %s (%d todos left).\n", id, count)
	return nil
}
