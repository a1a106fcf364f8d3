package todo

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/internal/events"
)

// Store is the sole in-memory owner of one workspace's todo list. It
// composes the validator and the file store: every replacement is validated,
// timestamped, and written through to disk before it is reported accepted.
type Store struct {
	mu     sync.RWMutex
	fs     *FileStore
	bus    *events.Bus
	loaded bool
	list   List
}

// NewStore creates a Store backed by the file at path. bus may be nil.
func NewStore(path string, writeTimeout time.Duration, bus *events.Bus) *Store {
	return &Store{fs: NewFileStore(path, writeTimeout, bus), bus: bus}
}

// Path returns the resolved backing file path.
func (s *Store) Path() string { return s.fs.Path() }

// Read returns a snapshot of the current list, loading from disk on first
// access. It never fails: a missing or corrupt backing file yields an empty
// list (corruption is quarantined by the file store).
func (s *Store) Read(ctx context.Context) List {
	s.mu.RLock()
	if s.loaded {
		defer s.mu.RUnlock()
		return s.list.clone()
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)
	return s.list.clone()
}

func (s *Store) ensureLoadedLocked(ctx context.Context) {
	if s.loaded {
		return
	}
	s.list = s.fs.Load(ctx)
	s.loaded = true
}

// Replace validates the candidate list and, if accepted, replaces the whole
// list: known ids keep their created_at, new ids get one, every todo's
// updated_at is stamped with a single now. The new list is written through
// to disk before success is reported; on a storage failure the in-memory
// state rolls back so memory and disk never diverge observably.
//
// Replacement is total. A todo whose id is absent from the candidate list
// is dropped; there is no partial-update path.
func (s *Store) Replace(ctx context.Context, todos []Task) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx)

	if err := Validate(todos); err != nil {
		return 0, err
	}

	now := time.Now()
	createdAt := make(map[string]time.Time, len(s.list.Todos))
	for _, t := range s.list.Todos {
		createdAt[t.ID] = t.CreatedAt
	}

	next := List{Todos: make([]Task, len(todos)), LastModified: now}
	for i, t := range todos {
		if created, ok := createdAt[t.ID]; ok {
			t.CreatedAt = created
		} else if t.CreatedAt.IsZero() {
			t.CreatedAt = now
		}
		t.UpdatedAt = now
		next.Todos[i] = t
	}

	prev := s.list
	s.list = next
	if err := s.fs.Write(ctx, next); err != nil {
		s.list = prev
		return 0, err
	}

	slog.Debug("todos replaced", "path", s.fs.Path(), "count", len(next.Todos))
	if s.bus != nil {
		s.bus.Publish(events.NewEvent(events.EventTodoReplaced, events.SourceStore, s.fs.Path(), map[string]any{
			"count":        len(next.Todos),
			"lastModified": now,
		}))
	}
	return len(next.Todos), nil
}

// Clear replaces the list with an empty one.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.Replace(ctx, nil)
	return err
}
