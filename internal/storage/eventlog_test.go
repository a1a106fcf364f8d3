package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/events"
	"github.com/taskdeck/taskdeck/internal/workspace"
)

func TestEventLoggerWritesJSONL(t *testing.T) {
	dir := t.TempDir()
	bus := events.NewBus(16)
	defer bus.Close()

	logger := NewEventLogger(dir, bus)
	defer logger.Close()

	wsPath := "/home/me/project/.mcp-todos.json"
	bus.Publish(events.NewEvent(events.EventTodoReplaced, events.SourceStore, wsPath, map[string]any{"count": 1}))
	bus.Publish(events.NewEvent(events.EventTodoRecovered, events.SourceStore, wsPath, map[string]any{"backup": "x"}))

	logPath := filepath.Join(dir, workspace.Slug(wsPath)+".jsonl")
	lines := waitForLines(t, logPath, 2)

	// Subscribers run concurrently, so line order is not guaranteed.
	seen := make(map[events.EventType]bool)
	for _, line := range lines {
		var e events.Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("unmarshal line: %v", err)
		}
		if e.Workspace != wsPath {
			t.Errorf("Workspace = %q, want %q", e.Workspace, wsPath)
		}
		seen[e.Type] = true
	}
	if !seen[events.EventTodoReplaced] || !seen[events.EventTodoRecovered] {
		t.Errorf("missing event types, saw %v", seen)
	}
}

func TestEventLoggerGlobalFile(t *testing.T) {
	dir := t.TempDir()
	bus := events.NewBus(16)
	defer bus.Close()

	logger := NewEventLogger(dir, bus)
	defer logger.Close()

	bus.Publish(events.NewEvent(events.EventClientConnected, events.SourceWS, "", nil))

	waitForLines(t, filepath.Join(dir, "_global.jsonl"), 1)
}

// waitForLines polls for the log file to contain n lines; event delivery is
// asynchronous.
func waitForLines(t *testing.T, path string, n int) []string {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if lines := readLines(t, path); len(lines) >= n {
			return lines
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("log file %s never reached %d lines", path, n)
	return nil
}

func readLines(t *testing.T, path string) []string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if len(scanner.Bytes()) > 0 {
			lines = append(lines, scanner.Text())
		}
	}
	return lines
}
