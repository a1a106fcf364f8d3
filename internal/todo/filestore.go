package todo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/taskdeck/taskdeck/internal/events"
)

// DefaultWriteTimeout bounds a single atomic write. Writes are tiny; the
// timeout only matters when the workspace sits on stuck network storage.
const DefaultWriteTimeout = 10 * time.Second

// documentSchemaJSON is the shape of the persisted document. Business rules
// (duplicate ids, multiple in_progress) are deliberately not part of it:
// those are write-time rules and the next full replacement heals them.
const documentSchemaJSON = `{
	"type": "object",
	"required": ["todos"],
	"properties": {
		"todos": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"id": {"type": "string"},
					"content": {"type": "string"},
					"status": {"type": "string"},
					"priority": {"type": "string"}
				}
			}
		},
		"lastModified": {"type": "string"}
	}
}`

var documentSchema = mustCompileDocumentSchema()

func mustCompileDocumentSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("todos.schema.json", strings.NewReader(documentSchemaJSON)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("todos.schema.json")
}

// FileStore persists one todo list as a single JSON document at path.
// It never resolves paths itself; the workspace resolver owns that.
type FileStore struct {
	path         string
	writeTimeout time.Duration
	bus          *events.Bus
}

// NewFileStore creates a FileStore for the given backing file path.
// bus may be nil; writeTimeout <= 0 falls back to DefaultWriteTimeout.
func NewFileStore(path string, writeTimeout time.Duration, bus *events.Bus) *FileStore {
	if writeTimeout <= 0 {
		writeTimeout = DefaultWriteTimeout
	}
	return &FileStore{path: path, writeTimeout: writeTimeout, bus: bus}
}

// Path returns the backing file path.
func (fs *FileStore) Path() string { return fs.path }

// Load reads the persisted list. A missing file yields an empty list. An
// unparseable or wrong-shaped file is quarantined as a sibling backup and an
// empty list is returned; corruption recovery is never an error to callers.
func (fs *FileStore) Load(ctx context.Context) List {
	data, err := os.ReadFile(fs.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("todo file unreadable, starting empty", "path", fs.path, "error", err)
		}
		return List{}
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		fs.quarantine(err)
		return List{}
	}
	if err := documentSchema.Validate(doc); err != nil {
		fs.quarantine(err)
		return List{}
	}

	var list List
	if err := json.Unmarshal(data, &list); err != nil {
		fs.quarantine(err)
		return List{}
	}
	return list
}

// quarantine renames the corrupt backing file to a timestamped sibling so
// nothing is silently lost, then reports the recovery.
func (fs *FileStore) quarantine(cause error) {
	backup := fmt.Sprintf("%s.corrupted.%d", fs.path, time.Now().Unix())
	if err := os.Rename(fs.path, backup); err != nil {
		slog.Warn("todo file corrupted, quarantine failed", "path", fs.path, "error", err, "cause", cause)
		return
	}
	slog.Warn("todo file corrupted, starting empty", "path", fs.path, "backup", backup, "cause", cause)

	if fs.bus != nil {
		fs.bus.Publish(events.NewEvent(events.EventTodoRecovered, events.SourceStore, fs.path, map[string]any{
			"backup": backup,
		}))
	}
}

// Write atomically replaces the backing file with the serialized list.
// The write runs under a deadline so stuck storage surfaces as an error
// instead of hanging the caller.
func (fs *FileStore) Write(ctx context.Context, list List) error {
	ctx, cancel := context.WithTimeout(ctx, fs.writeTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fs.writeAtomic(ctx, list) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("write todos: %w", ctx.Err())
	}
}

// writeAtomic serializes to a temp file in the same directory, fsyncs it,
// then renames it over the target. The rename is the only step that makes
// new content visible. If the deadline fired while writing, the temp file
// is removed instead of renamed so an abandoned write leaves no trace.
func (fs *FileStore) writeAtomic(ctx context.Context, list List) error {
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal todos: %w", err)
	}

	_, statErr := os.Stat(fs.path)
	firstWrite := os.IsNotExist(statErr)

	tmp := fs.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("write todos tmp: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write todos tmp: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("sync todos tmp: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close todos tmp: %w", err)
	}

	if ctx.Err() != nil {
		os.Remove(tmp)
		return fmt.Errorf("write todos: %w", ctx.Err())
	}

	if err := os.Rename(tmp, fs.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename todos: %w", err)
	}

	if firstWrite {
		fs.addToGitignore()
	}
	return nil
}

// addToGitignore appends the todo filename to the workspace's .gitignore,
// but only when a .gitignore already exists and does not mention it.
// Failures are silently ignored; version-control hygiene never blocks a write.
func (fs *FileStore) addToGitignore() {
	name := filepath.Base(fs.path)
	giPath := filepath.Join(filepath.Dir(fs.path), ".gitignore")

	data, err := os.ReadFile(giPath)
	if err != nil {
		return
	}
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == name {
			return
		}
	}

	f, err := os.OpenFile(giPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	entry := name + "\n"
	if len(data) > 0 && data[len(data)-1] != '\n' {
		entry = "\n" + entry
	}
	f.WriteString(entry)
}
