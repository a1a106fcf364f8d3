// Package workspace resolves where a workspace's todo list lives on disk.
package workspace

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/taskdeck/taskdeck/internal/config"
)

const (
	// ProjectFile is the workspace-scoped backing file name, kept inside
	// the project directory.
	ProjectFile = ".mcp-todos.json"
	// GlobalFile is the backing file name used under an explicitly
	// configured fallback directory.
	GlobalFile = "todos.json"

	// EnvWorkspaceFolders is a comma-separated list of workspace
	// directories supplied by the host environment; the first entry wins.
	EnvWorkspaceFolders = "WORKSPACE_FOLDER_PATHS"
)

// Resolve returns the backing file path for the current workspace.
// Precedence, first match wins: the configured workspace directory, then
// the host-supplied workspace folders, then the configured fallback
// directory, then the current working directory. The result is read once
// at store initialization; each resolved path maps to an independent store.
func Resolve(cfg *config.Config) string {
	if dir := cfg.Workspace.Dir; dir != "" {
		return filepath.Join(dir, ProjectFile)
	}

	if v := os.Getenv(EnvWorkspaceFolders); v != "" {
		first := strings.TrimSpace(strings.Split(v, ",")[0])
		if first != "" {
			return filepath.Join(first, ProjectFile)
		}
	}

	if dir := cfg.Workspace.FallbackDir; dir != "" {
		return filepath.Join(dir, GlobalFile)
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	return filepath.Join(cwd, ProjectFile)
}

// Slug turns a resolved path into a flat name safe for use as a file name,
// e.g. for per-workspace event logs.
func Slug(path string) string {
	s := strings.Trim(filepath.ToSlash(path), "/")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, ":", "-")
	if s == "" {
		return "root"
	}
	return s
}
