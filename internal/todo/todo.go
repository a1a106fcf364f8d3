// Package todo holds the per-workspace todo list: types, validation,
// the in-memory store and its file-backed persistence.
package todo

import "time"

// Status is the lifecycle state of a single todo.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority is the caller-assigned importance of a todo.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task is one todo item. IDs are caller-supplied and unique within a list.
type Task struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Status    Status         `json:"status"`
	Priority  Priority       `json:"priority"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// List is the full ordered todo list for one workspace. Order is the
// caller-supplied order of the last accepted write; it is never re-sorted.
type List struct {
	Todos        []Task    `json:"todos"`
	LastModified time.Time `json:"lastModified"`
}

// clone returns a deep copy so callers can't mutate the store's state
// through a returned snapshot.
func (l List) clone() List {
	out := List{LastModified: l.LastModified}
	if l.Todos == nil {
		return out
	}
	out.Todos = make([]Task, len(l.Todos))
	copy(out.Todos, l.Todos)
	for i, t := range out.Todos {
		if t.Metadata == nil {
			continue
		}
		md := make(map[string]any, len(t.Metadata))
		for k, v := range t.Metadata {
			md[k] = v
		}
		out.Todos[i].Metadata = md
	}
	return out
}
