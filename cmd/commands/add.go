package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"

	"github.com/taskdeck/taskdeck/internal/todo"
)

// NewAddCommand returns the add subcommand.
func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a todo to the workspace's list",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name:      "content",
				UsageText: "Todo description",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "id",
				Usage: "Todo id (generated when absent)",
			},
			&cli.StringFlag{
				Name:  "priority",
				Usage: "high, medium or low",
				Value: string(todo.PriorityMedium),
			},
		},
		Action: runAdd,
	}
}

func generateTodoID() string {
	u := uuid.New().String()
	return "todo_" + strings.ReplaceAll(u[:8], "-", "")
}

func runAdd(ctx context.Context, cmd *cli.Command) error {
	content := cmd.StringArg("content")
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content is required")
	}

	id := cmd.String("id")
	if id == "" {
		id = generateTodoID()
	}

	store := openStore(loadConfig(cmd), nil)
	list := store.Read(ctx)

	next := append(list.Todos, todo.Task{
		ID:       id,
		Content:  content,
		Status:   todo.StatusPending,
		Priority: todo.Priority(cmd.String("priority")),
	})

	count, err := store.Replace(ctx, next)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s (%d todos).\n", id, count)
	return nil
}
