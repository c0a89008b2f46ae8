package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bramblekit/bramble/pkg/adapters/memory"
	"github.com/bramblekit/bramble/pkg/ports"
	"github.com/bramblekit/bramble/pkg/story"
)

func demoDocument(t *testing.T) string {
	t.Helper()
	sl, err := story.NewStoryline()
	if err != nil {
		t.Fatalf("NewStoryline: %v", err)
	}
	rootID, err := sl.SetRoot(story.Beat{Outcome: "You stand at a crossroads."})
	if err != nil {
		t.Fatalf("SetRoot: %v", err)
	}
	if _, err := sl.AppendChild(rootID, story.Beat{Action: "Go left", Outcome: "A bridge."}); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	if _, err := sl.AppendChild(rootID, story.Beat{Action: "Go right", Outcome: "A dead end."}); err != nil {
		t.Fatalf("AppendChild: %v", err)
	}
	return sl.Serialize()
}

func newTestHandler(t *testing.T) (http.Handler, *memory.StorylineStore) {
	t.Helper()
	store := memory.NewStorylineStore()
	if err := store.Save(context.Background(), "crossroads", demoDocument(t)); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return NewHandler(store, nil), store
}

func TestVerifySpec(t *testing.T) {
	if err := VerifySpec(context.Background()); err != nil {
		t.Fatalf("embedded spec should validate: %v", err)
	}
}

func TestListStorylines(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/storylines", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", w.Code)
	}
	var names []string
	if err := json.Unmarshal(w.Body.Bytes(), &names); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(names) != 1 || names[0] != "crossroads" {
		t.Errorf("Expected [crossroads], got %v", names)
	}
}

func TestGetStoryline(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/storylines/crossroads", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", w.Code)
	}
	if err := story.ValidateStoryline(w.Body.String()); err != nil {
		t.Errorf("Returned document should parse: %v", err)
	}
}

func TestGetStoryline_NotFound(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/storylines/missing", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestPutStoryline_StoresValidDocument(t *testing.T) {
	handler, store := newTestHandler(t)

	doc := demoDocument(t)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("PUT", "/storylines/uploaded", strings.NewReader(doc)))

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
	}
	stored, err := store.Load(context.Background(), "uploaded")
	if err != nil {
		t.Fatalf("Load after PUT: %v", err)
	}
	if stored != doc {
		t.Error("Stored document does not match upload")
	}
}

func TestPutStoryline_RejectsMalformedDocument(t *testing.T) {
	handler, store := newTestHandler(t)

	w := httptest.NewRecorder()
	body := strings.NewReader("[0]: action: \"\" outcome: \"start\"\n[X]\n[X]\n")
	handler.ServeHTTP(w, httptest.NewRequest("PUT", "/storylines/broken", body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if _, err := store.Load(context.Background(), "broken"); err == nil {
		t.Error("Malformed document must not reach the store")
	}
}

func TestDeleteStoryline(t *testing.T) {
	handler, store := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("DELETE", "/storylines/crossroads", nil))

	if w.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", w.Code)
	}
	if _, err := store.Load(context.Background(), "crossroads"); err == nil {
		t.Error("Storyline should be gone after DELETE")
	}
}

// readOnlyStore hides the memory store's Delete method.
type readOnlyStore struct {
	inner ports.StorylineStore
}

func (s readOnlyStore) Save(ctx context.Context, name, text string) error {
	return s.inner.Save(ctx, name, text)
}
func (s readOnlyStore) Load(ctx context.Context, name string) (string, error) {
	return s.inner.Load(ctx, name)
}
func (s readOnlyStore) List(ctx context.Context) ([]string, error) {
	return s.inner.List(ctx)
}

func TestDeleteStoryline_Unsupported(t *testing.T) {
	handler := NewHandler(readOnlyStore{inner: memory.NewStorylineStore()}, nil)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("DELETE", "/storylines/anything", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", w.Code)
	}
}

func TestGetNode(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/storylines/crossroads/nodes/0", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
	var view NodeView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if view.ID != 0 || view.Outcome != "You stand at a crossroads." {
		t.Errorf("Unexpected root view: %+v", view)
	}
	if len(view.Children) != 2 {
		t.Fatalf("Expected 2 children, got %d", len(view.Children))
	}
	if view.Children[0].Action != "Go left" || view.Children[1].Action != "Go right" {
		t.Errorf("Children out of order: %+v", view.Children)
	}
}

func TestGetNode_Errors(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/storylines/crossroads/nodes/99", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Unknown node: expected 404, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/storylines/crossroads/nodes/abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Non-numeric id: expected 400, got %d", w.Code)
	}
}

func TestGetGraph(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/storylines/crossroads/graph", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "graph TD") {
		t.Error("Expected mermaid header in graph output")
	}
	if !strings.Contains(body, "Go left") {
		t.Error("Expected edge label in graph output")
	}
}

func TestOpenAPIAndSwaggerEndpoints(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/openapi.yaml", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "openapi:") {
		t.Errorf("Expected openapi document, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/swagger", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "swagger-ui") {
		t.Errorf("Expected swagger page, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/storylines", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("Expected CORS origin header")
	}
}
