// ABOUTME: MCP command starts a Model Context Protocol server over stdio
// ABOUTME: Grounded on the teacher's cmd/memory/commands/mcp.go signal-driven shutdown idiom
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserverlib "github.com/mark3labs/mcp-go/server"

	"github.com/memexlabs/memex/internal/mcpserver"
)

// NewMCPCmd creates the mcp command.
func NewMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start an MCP server for LLM agents over stdio",
		Long: `Runs the memory engine as an MCP (Model Context Protocol) server over
stdio, exposing add_breadcrumb, add_decision, add_learning, search,
hybrid_search, recent, show, stats, loa_write, loa_quote, loa_list, and
embed_backfill as tools.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
	e, err := openEngine(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}

	server := mcpserverlib.NewMCPServer("memex", versionInfo.Version)
	mcpserver.RegisterTools(server, e)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("memex MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserverlib.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("shutdown signal received, closing store...")
		}
		if err := e.Close(); err != nil {
			log.Printf("warning: error closing store: %v", err)
		}
	case err := <-serverErr:
		_ = e.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
