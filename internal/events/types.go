package events

import (
	"fmt"
	"sync/atomic"
	"time"
)

// EventType represents the type of event.
type EventType string

const (
	// Store lifecycle
	EventTodoReplaced  EventType = "todo.replaced"
	EventTodoRecovered EventType = "todo.recovered"

	// Gateway clients
	EventClientConnected    EventType = "gateway.client.connected"
	EventClientDisconnected EventType = "gateway.client.disconnected"
)

// EventSource identifies the component that emitted an event.
type EventSource string

const (
	SourceStore   EventSource = "store"
	SourceMCP     EventSource = "mcp"
	SourceGateway EventSource = "gateway"
	SourceWS      EventSource = "ws"
	SourceCLI     EventSource = "cli"
)

// Event represents an event in the system. Workspace carries the resolved
// backing file path of the store that the event concerns, when there is one.
type Event struct {
	ID        string         `json:"id"`
	Workspace string         `json:"workspace,omitempty"`
	Type      EventType      `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Source    EventSource    `json:"source"`
	Payload   map[string]any `json:"payload"`
}

// eventIDCounter is used to generate sequential event IDs.
var eventIDCounter uint64

// NewEvent creates a new event with the current timestamp.
func NewEvent(eventType EventType, source EventSource, workspace string, payload map[string]any) Event {
	return Event{
		ID:        generateEventID(),
		Workspace: workspace,
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    source,
		Payload:   payload,
	}
}

func generateEventID() string {
	seq := atomic.AddUint64(&eventIDCounter, 1)
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), seq)
}
