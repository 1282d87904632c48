// ABOUTME: MCP tool definitions and registration, mapping 1:1 onto the Engine API Facade
// ABOUTME: Grounded on the teacher's internal/mcp/tools.go RegisterTools + mcp.Tool schema idiom
package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/memexlabs/memex/internal/engine"
)

func prop(typ, desc string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": desc}
}

// RegisterTools registers every memory-engine tool with server and returns
// the Handlers so the caller can hold a reference for shutdown.
func RegisterTools(server *mcpserver.MCPServer, e *engine.Engine) *Handlers {
	h := &Handlers{engine: e}

	server.AddTool(mcp.Tool{
		Name:        "add_breadcrumb",
		Description: "Record a short, importance-ranked note that may expire.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content":     prop("string", "breadcrumb text"),
				"category":    prop("string", "optional category label"),
				"project":     prop("string", "optional project scope"),
				"session_ref": prop("string", "optional originating session id"),
				"importance":  prop("number", "importance 1-10, default 5"),
			},
			Required: []string{"content"},
		},
	}, h.AddBreadcrumb)

	server.AddTool(mcp.Tool{
		Name:        "add_decision",
		Description: "Record an append-only decision with optional reasoning and alternatives.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"decision":     prop("string", "the decision text"),
				"reasoning":    prop("string", "why this decision was made"),
				"alternatives": prop("string", "alternatives considered"),
				"category":     prop("string", "optional category label"),
				"project":      prop("string", "optional project scope"),
				"session_ref":  prop("string", "optional originating session id"),
			},
			Required: []string{"decision"},
		},
	}, h.AddDecision)

	server.AddTool(mcp.Tool{
		Name:        "add_learning",
		Description: "Record a problem/solution/prevention learning.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"problem":     prop("string", "the problem encountered"),
				"solution":    prop("string", "the fix that was applied"),
				"prevention":  prop("string", "how to prevent recurrence"),
				"tags":        prop("string", "comma-separated tags"),
				"category":    prop("string", "optional category label"),
				"project":     prop("string", "optional project scope"),
				"session_ref": prop("string", "optional originating session id"),
			},
			Required: []string{"problem"},
		},
	}, h.AddLearning)

	server.AddTool(mcp.Tool{
		Name:        "search",
		Description: "Lexical (full-text) search across messages, decisions, learnings, breadcrumbs, LoA entries, TELOS, and documents.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query":   prop("string", "search text"),
				"kind":    prop("string", "restrict to one kind"),
				"project": prop("string", "restrict to a project"),
				"limit":   prop("number", "maximum results, default 20"),
			},
			Required: []string{"query"},
		},
	}, h.Search)

	server.AddTool(mcp.Tool{
		Name:        "hybrid_search",
		Description: "Hybrid lexical+semantic search, fused via Reciprocal Rank Fusion. Degrades silently to lexical-only when the embedding service is unreachable.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query":   prop("string", "search text"),
				"kind":    prop("string", "restrict to one kind"),
				"project": prop("string", "restrict to a project"),
				"limit":   prop("number", "maximum results, default 20"),
			},
			Required: []string{"query"},
		},
	}, h.HybridSearch)

	server.AddTool(mcp.Tool{
		Name:        "recent",
		Description: "List the most recent rows of a kind (default messages).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"kind":    prop("string", "entity kind, default messages"),
				"project": prop("string", "restrict to a project"),
				"limit":   prop("number", "maximum rows, default 20"),
			},
		},
	}, h.Recent)

	server.AddTool(mcp.Tool{
		Name:        "show",
		Description: "Fetch a single row by kind and id.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"kind": prop("string", "entity kind"),
				"id":   prop("number", "row id"),
			},
			Required: []string{"kind", "id"},
		},
	}, h.Show)

	server.AddTool(mcp.Tool{
		Name:        "stats",
		Description: "Row counts per kind, store file size, and embedding coverage.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, h.Stats)

	server.AddTool(mcp.Tool{
		Name:        "loa_write",
		Description: "Digest messages since the last LoA entry (or a tail limit) into a new curated LoA extract.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title":     prop("string", "title for the new LoA entry"),
				"project":   prop("string", "optional project scope"),
				"continues": prop("number", "optional parent LoA entry id"),
				"tags":      prop("string", "comma-separated tags"),
				"limit":     prop("number", "tail message limit; 0 means all since last LoA"),
			},
			Required: []string{"title"},
		},
	}, h.LoAWrite)

	server.AddTool(mcp.Tool{
		Name:        "loa_quote",
		Description: "Return the messages spanned by a LoA entry.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"id": prop("number", "LoA entry id"),
			},
			Required: []string{"id"},
		},
	}, h.LoAQuote)

	server.AddTool(mcp.Tool{
		Name:        "loa_list",
		Description: "List LoA entries newest-first.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": prop("number", "maximum entries, default 20"),
			},
		},
	}, h.LoAList)

	server.AddTool(mcp.Tool{
		Name:        "embed_backfill",
		Description: "Embed rows of a kind that are missing a vector.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"kind":  prop("string", "entity kind"),
				"limit": prop("number", "maximum rows to embed, default 100"),
				"force": prop("number", "nonzero to re-embed rows that already have a vector"),
			},
			Required: []string{"kind"},
		},
	}, h.EmbedBackfill)

	return h
}
