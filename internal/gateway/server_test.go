package gateway

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/events"
	"github.com/taskdeck/taskdeck/internal/todo"
)

func newTestServer(t *testing.T) (*Server, *events.Bus) {
	t.Helper()
	bus := events.NewBus(16)
	t.Cleanup(bus.Close)
	store := todo.NewStore(filepath.Join(t.TempDir(), ".mcp-todos.json"), 0, bus)
	return NewServer(bus, store, "127.0.0.1", 0), bus
}

func TestHandleHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestGetTodosEmpty(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/todos", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Todos []todo.Task `json:"todos"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Todos == nil {
		t.Error("todos should be an empty array, not null")
	}
}

func TestPutThenGetTodos(t *testing.T) {
	s, _ := newTestServer(t)

	payload := `{"todos": [
		{"id": "a", "content": "Write spec", "status": "pending", "priority": "high"},
		{"id": "b", "content": "Review", "status": "in_progress", "priority": "low"}
	]}`

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/todos", strings.NewReader(payload)))

	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want 200: %s", rec.Code, rec.Body)
	}
	var res struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if !res.Success || res.Count != 2 {
		t.Errorf("res = %+v, want success=true count=2", res)
	}

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/todos", nil))

	var body struct {
		Todos []todo.Task `json:"todos"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Todos) != 2 || body.Todos[0].ID != "a" {
		t.Errorf("GET todos = %+v", body.Todos)
	}
}

func TestPutTodosValidationError(t *testing.T) {
	s, _ := newTestServer(t)

	payload := `{"todos": [
		{"id": "a", "content": "x", "status": "in_progress", "priority": "high"},
		{"id": "b", "content": "y", "status": "in_progress", "priority": "low"}
	]}`

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/todos", strings.NewReader(payload)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body)
	}
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != string(todo.KindMultipleInProgress) {
		t.Errorf("code = %q, want %q", body.Error.Code, todo.KindMultipleInProgress)
	}
	if !strings.Contains(body.Error.Message, "a") || !strings.Contains(body.Error.Message, "b") {
		t.Errorf("message should name offending ids: %q", body.Error.Message)
	}
}

func TestPutTodosInvalidBody(t *testing.T) {
	s, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/todos", strings.NewReader("{")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleEvents(t *testing.T) {
	s, bus := newTestServer(t)

	// A successful PUT publishes todo.replaced through the store.
	payload := `{"todos": [{"id": "a", "content": "x", "status": "pending", "priority": "low"}]}`
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/todos", strings.NewReader(payload)))
	if rec.Code != http.StatusOK {
		t.Fatalf("PUT status = %d: %s", rec.Code, rec.Body)
	}

	waitForHistory(t, bus, 1)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/events?limit=10", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var result []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result) != 1 {
		t.Fatalf("got %d events, want 1", len(result))
	}
	if result[0]["type"] != string(events.EventTodoReplaced) {
		t.Errorf("type = %v, want %s", result[0]["type"], events.EventTodoReplaced)
	}
}

// waitForHistory polls the bus ring buffer; event dispatch is asynchronous.
func waitForHistory(t *testing.T, bus *events.Bus, n int) {
	t.Helper()
	for i := 0; i < 200; i++ {
		if len(bus.History(n)) >= n {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("bus history never reached %d events", n)
}
