package cli

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bramblekit/bramble/internal/config"
	mcpAdapter "github.com/bramblekit/bramble/pkg/adapters/mcp"
)

// MCPOptions configures the mcp command.
type MCPOptions struct {
	ConfigPath string
	Transport  string // "stdio" or "sse"
	Port       int
}

// RunMCP starts the MCP server on the chosen transport.
func RunMCP(opts MCPOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	store, err := OpenStorylineStore(cfg)
	if err != nil {
		return err
	}

	// Logs must go to Stderr: Stdout may carry JSON-RPC.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)

	srv := mcpAdapter.NewServer(store)

	switch opts.Transport {
	case "stdio":
		log.SetOutput(os.Stderr)
		slog.Info("Starting Bramble MCP Server (Stdio)...")
		return srv.ServeStdio()
	case "sse":
		slog.Info("Starting Bramble MCP Server (SSE)", "port", opts.Port)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := srv.ServeSSE(ctx, opts.Port); err != nil && err != http.ErrServerClosed {
			return err
		}
		slog.Info("MCP Server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport: %s. Supported: stdio, sse", opts.Transport)
	}
}
