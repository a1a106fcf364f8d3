// Package mcp exposes the todo store as an MCP server over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taskdeck/taskdeck/internal/todo"
)

// Error codes surfaced to MCP clients.
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeWriteError      = "WRITE_ERROR"
)

// NewServer creates an MCP server exposing TodoRead and TodoWrite backed by
// the given store. The handlers are thin: decode, store call, shape result.
func NewServer(store *todo.Store) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "taskdeck",
		Version: "0.1.0",
	}, nil)

	server.AddTool(readTool(), func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		list := store.Read(ctx)
		todos := list.Todos
		if todos == nil {
			todos = []todo.Task{}
		}
		return textResult(map[string]any{"todos": todos})
	})

	server.AddTool(writeTool(), func(ctx context.Context, req *mcpsdk.CallToolRequest) (*mcpsdk.CallToolResult, error) {
		var params struct {
			Todos []todo.Task `json:"todos"`
		}
		if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
			return errorResult(CodeValidationError, "invalid arguments: "+err.Error())
		}

		count, err := store.Replace(ctx, params.Todos)
		if err != nil {
			var verr *todo.ValidationError
			if errors.As(err, &verr) {
				slog.Debug("todo write rejected", "kind", verr.Kind, "detail", verr.Detail)
				return errorResult(CodeValidationError, verr.Detail)
			}
			slog.Debug("todo write failed", "error", err)
			return errorResult(CodeWriteError, err.Error())
		}

		return textResult(map[string]any{"success": true, "count": count})
	})

	return server
}

// readTool describes TodoRead: no input, returns the current list.
func readTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "TodoRead",
		Description: "Read the current todo list for the workspace. Takes no input.",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
	}
}

// writeTool describes TodoWrite: a full candidate list. The item schema is
// kept structurally loose so the store's validator stays the single
// authority for business errors.
func writeTool() *mcpsdk.Tool {
	return &mcpsdk.Tool{
		Name:        "TodoWrite",
		Description: "Replace the entire todo list for the workspace. Any todo whose id is absent from the new list is dropped.",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"todos": map[string]any{
					"type":        "array",
					"description": "The complete desired todo list",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"id":       map[string]any{"type": "string", "description": "Unique identifier"},
							"content":  map[string]any{"type": "string", "description": "Todo description"},
							"status":   map[string]any{"type": "string", "enum": []string{"pending", "in_progress", "completed"}},
							"priority": map[string]any{"type": "string", "enum": []string{"high", "medium", "low"}},
							"metadata": map[string]any{"type": "object", "description": "Optional opaque payload"},
						},
						"required": []string{"id", "content", "status", "priority"},
					},
				},
			},
			"required": []string{"todos"},
		},
	}
}

// textResult marshals payload and wraps it as a successful tool result.
func textResult(payload any) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}

// errorResult wraps a structured error object as a failed tool result.
// Tool failures are results, not protocol errors.
func errorResult(code, message string) (*mcpsdk.CallToolResult, error) {
	data, err := json.Marshal(map[string]any{
		"error": map[string]any{"code": code, "message": message},
	})
	if err != nil {
		return nil, err
	}
	return &mcpsdk.CallToolResult{
		IsError: true,
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: string(data)}},
	}, nil
}
