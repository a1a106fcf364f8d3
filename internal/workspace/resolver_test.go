package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/taskdeck/taskdeck/internal/config"
)

func TestResolve_ConfiguredDir(t *testing.T) {
	t.Setenv(EnvWorkspaceFolders, "/from/env")

	cfg := &config.Config{}
	cfg.Workspace.Dir = "/my/project"

	got := Resolve(cfg)
	want := filepath.Join("/my/project", ProjectFile)
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolve_EnvFolders(t *testing.T) {
	t.Setenv(EnvWorkspaceFolders, " /first/ws ,/second/ws")

	got := Resolve(&config.Config{})
	want := filepath.Join("/first/ws", ProjectFile)
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolve_FallbackDir(t *testing.T) {
	t.Setenv(EnvWorkspaceFolders, "")

	cfg := &config.Config{}
	cfg.Workspace.FallbackDir = "/var/lib/taskdeck"

	got := Resolve(cfg)
	want := filepath.Join("/var/lib/taskdeck", GlobalFile)
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestResolve_Cwd(t *testing.T) {
	t.Setenv(EnvWorkspaceFolders, "")

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	got := Resolve(&config.Config{})
	want := filepath.Join(cwd, ProjectFile)
	if got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"/home/me/project/.mcp-todos.json", "home-me-project-.mcp-todos.json"},
		{"relative/todos.json", "relative-todos.json"},
		{"/", "root"},
	}

	for _, tt := range tests {
		if got := Slug(tt.path); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
