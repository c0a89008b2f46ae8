// Package http exposes stored storylines over a REST API: list, fetch,
// upload (with validation), delete, and per-node navigation for clients
// that walk a story remotely.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bramblekit/bramble/internal/presentation/graph"
	"github.com/bramblekit/bramble/pkg/ports"
	"github.com/bramblekit/bramble/pkg/story"
	"github.com/bramblekit/bramble/pkg/tree"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
)

//go:embed openapi.yaml
var openAPISpec []byte

// VerifySpec parses and validates the embedded OpenAPI document. Run at
// startup so a broken spec fails the server early instead of surfacing as
// a confusing /openapi.yaml response.
func VerifySpec(ctx context.Context) error {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPISpec)
	if err != nil {
		return fmt.Errorf("parsing embedded openapi spec: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("embedded openapi spec invalid: %w", err)
	}
	return nil
}

// NodeView is the JSON shape of one storyline node.
type NodeView struct {
	ID       int        `json:"id"`
	Action   string     `json:"action"`
	Outcome  string     `json:"outcome"`
	Children []ChildRef `json:"children"`
}

// ChildRef references a choice reachable from a node.
type ChildRef struct {
	ID     int    `json:"id"`
	Action string `json:"action"`
}

// Server serves the storyline API from a StorylineStore.
type Server struct {
	Store  ports.StorylineStore
	Logger *slog.Logger
}

// NewHandler builds the HTTP handler for the storyline API.
func NewHandler(store ports.StorylineStore, logger *slog.Logger) http.Handler {
	s := &Server{Store: store, Logger: logger}

	r := chi.NewRouter()
	r.Use(metricsMiddleware)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openAPISpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Get("/metrics", metricsHandler().ServeHTTP)

	r.Route("/storylines", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Get("/{name}", s.handleGet)
		r.Put("/{name}", s.handlePut)
		r.Delete("/{name}", s.handleDelete)
		r.Get("/{name}/nodes/{id}", s.handleNode)
		r.Get("/{name}/graph", s.handleGraph)
	})

	return enableCORS(r)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	names, err := s.Store.List(r.Context())
	if err != nil {
		s.internalError(w, "list storylines", err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	text, err := s.Store.Load(r.Context(), name)
	if err != nil {
		if errors.Is(err, story.ErrStorylineNotFound) {
			http.Error(w, "storyline not found", http.StatusNotFound)
			return
		}
		s.internalError(w, "load storyline", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, text)
}

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 4<<20))
	if err != nil {
		http.Error(w, "body too large or unreadable", http.StatusBadRequest)
		return
	}

	// Reject malformed documents before they reach the store, so a GET
	// never returns text that cannot be parsed back.
	if err := story.ValidateStoryline(string(body)); err != nil {
		http.Error(w, fmt.Sprintf("invalid storyline: %v", err), http.StatusBadRequest)
		return
	}

	if err := s.Store.Save(r.Context(), name, string(body)); err != nil {
		s.internalError(w, "save storyline", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	deleter, ok := s.Store.(ports.StorylineDeleter)
	if !ok {
		http.Error(w, "store does not support deletion", http.StatusMethodNotAllowed)
		return
	}
	if err := deleter.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.internalError(w, "delete storyline", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNode(w http.ResponseWriter, r *http.Request) {
	sl, ok := s.loadStoryline(w, r)
	if !ok {
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "node id must be an integer", http.StatusBadRequest)
		return
	}

	beat, err := sl.Value(id)
	if err != nil {
		if errors.Is(err, tree.ErrNodeNotFound) {
			http.Error(w, "node not found", http.StatusNotFound)
			return
		}
		s.internalError(w, "read node", err)
		return
	}
	childIDs, err := sl.ChildrenIDs(id)
	if err != nil {
		s.internalError(w, "list children", err)
		return
	}

	view := NodeView{
		ID:       id,
		Action:   beat.Action,
		Outcome:  beat.Outcome,
		Children: make([]ChildRef, 0, len(childIDs)),
	}
	for _, childID := range childIDs {
		child, err := sl.Value(childID)
		if err != nil {
			s.internalError(w, "read child", err)
			return
		}
		view.Children = append(view.Children, ChildRef{ID: childID, Action: child.Action})
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	sl, ok := s.loadStoryline(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(sl, nil))
}

// loadStoryline fetches and parses the storyline named in the route,
// writing the error response itself when that fails.
func (s *Server) loadStoryline(w http.ResponseWriter, r *http.Request) (*story.Storyline, bool) {
	name := chi.URLParam(r, "name")
	text, err := s.Store.Load(r.Context(), name)
	if err != nil {
		if errors.Is(err, story.ErrStorylineNotFound) {
			http.Error(w, "storyline not found", http.StatusNotFound)
			return nil, false
		}
		s.internalError(w, "load storyline", err)
		return nil, false
	}
	sl, err := story.ParseStoryline(text)
	if err != nil {
		// The store holds text that no longer parses; PUT validation
		// should make this impossible.
		s.internalError(w, "parse stored storyline", err)
		return nil, false
	}
	return sl, true
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	if s.Logger != nil {
		s.Logger.Error("http handler failed", "op", op, "err", err)
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Bramble API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`
