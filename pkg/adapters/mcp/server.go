// Package mcp exposes stored storylines as an MCP server so agent hosts
// can browse and play stories over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bramblekit/bramble"
	"github.com/bramblekit/bramble/pkg/ports"
	"github.com/bramblekit/bramble/pkg/story"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NodeResponse aligns with the HTTP adapter's node view so clients see the
// same shape on every surface.
type NodeResponse struct {
	ID       int      `json:"id" jsonschema_description:"Identifier of this node"`
	Action   string   `json:"action" jsonschema_description:"The choice that led here, empty for the opening scene"`
	Outcome  string   `json:"outcome" jsonschema_description:"Narrative text shown at this node"`
	Terminal bool     `json:"terminal" jsonschema_description:"True when the story ends here"`
	Choices  []Choice `json:"choices" jsonschema_description:"Choices available from this node"`
}

// Choice is one option a player can take from a node.
type Choice struct {
	Index  int    `json:"index" jsonschema_description:"1-based index to pass to the choose tool"`
	NodeID int    `json:"node_id" jsonschema_description:"Identifier of the child node"`
	Action string `json:"action" jsonschema_description:"Label of the choice"`
}

// Server wraps a StorylineStore and exposes it as an MCP Server.
type Server struct {
	store     ports.StorylineStore
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(store ports.StorylineStore) *Server {
	s := &Server{
		store:     store,
		mcpServer: server.NewMCPServer("bramble-mcp", strings.TrimSpace(bramble.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)

	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		fmt.Println("\nShutdown signal received, shutting down server...")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: list_storylines
	s.mcpServer.AddTool(mcp.NewTool("list_storylines",
		mcp.WithDescription("List the names of all stored storylines."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.store.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: render_node
	renderTool := mcp.NewTool("render_node",
		mcp.WithDescription("Render one node of a storyline. If node_id is omitted, renders the opening scene."),
		mcp.WithString("storyline", mcp.Required(), mcp.Description("Name of the storyline")),
		mcp.WithString("node_id", mcp.Description("Identifier of the node to render (optional, defaults to the root)")),
		mcp.WithOutputSchema[NodeResponse](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRenderNode))

	// TOOL: choose
	chooseTool := mcp.NewTool("choose",
		mcp.WithDescription("Take a choice from a node and render the resulting node."),
		mcp.WithString("storyline", mcp.Required(), mcp.Description("Name of the storyline")),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Identifier of the current node")),
		mcp.WithString("choice", mcp.Required(), mcp.Description("1-based index of the choice to take")),
		mcp.WithOutputSchema[NodeResponse](),
	)
	s.mcpServer.AddTool(chooseTool, mcp.NewStructuredToolHandler(s.handleChoose))
}

// Handler methods for structured tools

func (s *Server) handleRenderNode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NodeResponse, error) {
	name, _ := args["storyline"].(string)
	sl, err := s.loadStoryline(ctx, name)
	if err != nil {
		return NodeResponse{}, err
	}

	var id int
	if raw, ok := args["node_id"].(string); ok && raw != "" {
		id, err = strconv.Atoi(raw)
		if err != nil {
			return NodeResponse{}, fmt.Errorf("node_id must be an integer: %q", raw)
		}
	} else {
		rootID, ok := sl.RootID()
		if !ok {
			return NodeResponse{}, fmt.Errorf("storyline %q is empty", name)
		}
		id = rootID
	}

	return s.renderNode(sl, id)
}

func (s *Server) handleChoose(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NodeResponse, error) {
	name, _ := args["storyline"].(string)
	sl, err := s.loadStoryline(ctx, name)
	if err != nil {
		return NodeResponse{}, err
	}

	rawID, _ := args["node_id"].(string)
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return NodeResponse{}, fmt.Errorf("node_id must be an integer: %q", rawID)
	}
	rawChoice, _ := args["choice"].(string)
	choice, err := strconv.Atoi(rawChoice)
	if err != nil {
		return NodeResponse{}, fmt.Errorf("choice must be an integer: %q", rawChoice)
	}

	childIDs, err := sl.ChildrenIDs(id)
	if err != nil {
		return NodeResponse{}, fmt.Errorf("node %d: %w", id, err)
	}
	if choice < 1 || choice > len(childIDs) {
		return NodeResponse{}, fmt.Errorf("choice %d out of range: node %d has %d choices", choice, id, len(childIDs))
	}

	return s.renderNode(sl, childIDs[choice-1])
}

func (s *Server) loadStoryline(ctx context.Context, name string) (*story.Storyline, error) {
	if name == "" {
		return nil, fmt.Errorf("storyline name is required")
	}
	text, err := s.store.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", name, err)
	}
	sl, err := story.ParseStoryline(text)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", name, err)
	}
	return sl, nil
}

func (s *Server) renderNode(sl *story.Storyline, id int) (NodeResponse, error) {
	beat, err := sl.Value(id)
	if err != nil {
		return NodeResponse{}, err
	}
	childIDs, err := sl.ChildrenIDs(id)
	if err != nil {
		return NodeResponse{}, err
	}

	resp := NodeResponse{
		ID:       id,
		Action:   beat.Action,
		Outcome:  beat.Outcome,
		Terminal: len(childIDs) == 0,
		Choices:  make([]Choice, 0, len(childIDs)),
	}
	for i, childID := range childIDs {
		child, err := sl.Value(childID)
		if err != nil {
			return NodeResponse{}, err
		}
		resp.Choices = append(resp.Choices, Choice{Index: i + 1, NodeID: childID, Action: child.Action})
	}
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: bramble://storylines
	s.mcpServer.AddResource(mcp.NewResource("bramble://storylines", "Stored Storylines",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.store.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list storylines: %w", err)
		}
		jsonBytes, _ := json.Marshal(names)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "bramble://storylines",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
