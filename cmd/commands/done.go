package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/taskdeck/taskdeck/internal/todo"
)

// NewDoneCommand returns the done subcommand.
func NewDoneCommand() *cli.Command {
	return &cli.Command{
		Name:  "done",
		Usage: "Mark a todo as completed",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "id",
				UsageText: "Todo id",
			},
		},
		Action: runDone,
	}
}

func runDone(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("id is required")
	}

	store := openStore(loadConfig(cmd), nil)
	list := store.Read(ctx)

	found := false
	for i, t := range list.Todos {
		if t.ID == id {
			list.Todos[i].Status = todo.StatusCompleted
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("todo not found: %s", id)
	}

	if _, err := store.Replace(ctx, list.Todos); err != nil {
		return err
	}

	fmt.Printf("Completed %s.\n", id)
	return nil
}
