package todo

import (
	"sync"
	"time"

	"github.com/taskdeck/taskdeck/internal/events"
)

// Registry hands out the single Store instance per resolved backing file
// path. The composition root owns one Registry and passes store handles to
// entry points; there is no package-level global store.
type Registry struct {
	mu           sync.Mutex
	stores       map[string]*Store
	writeTimeout time.Duration
	bus          *events.Bus
}

// NewRegistry creates a Registry. bus may be nil.
func NewRegistry(writeTimeout time.Duration, bus *events.Bus) *Registry {
	return &Registry{
		stores:       make(map[string]*Store),
		writeTimeout: writeTimeout,
		bus:          bus,
	}
}

// Store returns the store for the given resolved path, creating it on first
// use. Each path owns its own lock and in-memory list; there is no
// cross-workspace sharing.
func (r *Registry) Store(path string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[path]; ok {
		return s
	}
	s := NewStore(path, r.writeTimeout, r.bus)
	r.stores[path] = s
	return s
}
