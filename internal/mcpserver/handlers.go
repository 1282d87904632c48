// ABOUTME: MCP tool handler implementations over the Engine API Facade
// ABOUTME: Grounded on the teacher's internal/mcp/handlers.go request-arg-extraction + JSON-response idiom
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/memexlabs/memex/internal/engine"
	"github.com/memexlabs/memex/internal/model"
)

// Handlers wraps the Engine for MCP tool dispatch.
type Handlers struct {
	engine *engine.Engine
}

func textResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshaling response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func optStringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// AddBreadcrumb handles the add_breadcrumb tool.
func (h *Handlers) AddBreadcrumb(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}

	in := engine.AddBreadcrumbInput{
		Content:    content,
		Category:   optStringPtr(request.GetString("category", "")),
		Project:    optStringPtr(request.GetString("project", "")),
		SessionRef: optStringPtr(request.GetString("session_ref", "")),
	}
	if importance := request.GetInt("importance", 0); importance != 0 {
		in.Importance = &importance
	}

	id, err := h.engine.AddBreadcrumb(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("adding breadcrumb: %v", err)), nil
	}
	return textResult(map[string]interface{}{"id": id})
}

// AddDecision handles the add_decision tool.
func (h *Handlers) AddDecision(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	decision, err := request.RequireString("decision")
	if err != nil {
		return mcp.NewToolResultError("decision argument is required and must be a string"), nil
	}

	in := engine.AddDecisionInput{
		Decision:     decision,
		Reasoning:    optStringPtr(request.GetString("reasoning", "")),
		Alternatives: optStringPtr(request.GetString("alternatives", "")),
		Category:     optStringPtr(request.GetString("category", "")),
		Project:      optStringPtr(request.GetString("project", "")),
		SessionRef:   optStringPtr(request.GetString("session_ref", "")),
	}

	id, err := h.engine.AddDecision(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("adding decision: %v", err)), nil
	}
	return textResult(map[string]interface{}{"id": id})
}

// AddLearning handles the add_learning tool.
func (h *Handlers) AddLearning(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	problem, err := request.RequireString("problem")
	if err != nil {
		return mcp.NewToolResultError("problem argument is required and must be a string"), nil
	}

	in := engine.AddLearningInput{
		Problem:    problem,
		Solution:   optStringPtr(request.GetString("solution", "")),
		Prevention: optStringPtr(request.GetString("prevention", "")),
		Tags:       optStringPtr(request.GetString("tags", "")),
		Category:   optStringPtr(request.GetString("category", "")),
		Project:    optStringPtr(request.GetString("project", "")),
		SessionRef: optStringPtr(request.GetString("session_ref", "")),
	}

	id, err := h.engine.AddLearning(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("adding learning: %v", err)), nil
	}
	return textResult(map[string]interface{}{"id": id})
}

func kindsFromArg(raw string) []model.Kind {
	if raw == "" {
		return nil
	}
	k := model.Kind(raw)
	if !k.IsValid() {
		return nil
	}
	return []model.Kind{k}
}

// Search handles the search tool (lexical-only).
func (h *Handlers) Search(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	opts := engine.QueryOptions{
		Project: request.GetString("project", ""),
		Kinds:   kindsFromArg(request.GetString("kind", "")),
		Limit:   request.GetInt("limit", 20),
	}

	results, err := h.engine.Search(ctx, query, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("searching: %v", err)), nil
	}
	return textResult(map[string]interface{}{"results": results})
}

// HybridSearch handles the hybrid_search tool (RRF-fused lexical+semantic).
func (h *Handlers) HybridSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	opts := engine.QueryOptions{
		Project: request.GetString("project", ""),
		Kinds:   kindsFromArg(request.GetString("kind", "")),
		Limit:   request.GetInt("limit", 20),
	}

	outcome, err := h.engine.Hybrid(ctx, query, opts)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("searching: %v", err)), nil
	}
	return textResult(map[string]interface{}{
		"results":              outcome.Results,
		"embeddings_available": outcome.EmbeddingsAvailable,
	})
}

// Recent handles the recent tool.
func (h *Handlers) Recent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind := model.Kind(request.GetString("kind", string(model.KindMessage)))
	if !kind.IsValid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q", kind)), nil
	}
	project := request.GetString("project", "")
	limit := request.GetInt("limit", 20)

	rows, err := h.engine.Recent(ctx, kind, project, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing recent %s: %v", kind, err)), nil
	}
	return textResult(map[string]interface{}{"rows": rows})
}

// Show handles the show tool.
func (h *Handlers) Show(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kindStr, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind argument is required and must be a string"), nil
	}
	kind := model.Kind(kindStr)
	if !kind.IsValid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q", kindStr)), nil
	}
	id := request.GetInt("id", 0)
	if id == 0 {
		return mcp.NewToolResultError("id argument is required and must be a nonzero number"), nil
	}

	row, err := h.engine.Show(ctx, kind, int64(id))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("showing %s %d: %v", kind, id, err)), nil
	}
	return textResult(row)
}

// Stats handles the stats tool.
func (h *Handlers) Stats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s, err := h.engine.Stats(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("computing stats: %v", err)), nil
	}
	return textResult(s)
}

// LoAWrite handles the loa_write tool.
func (h *Handlers) LoAWrite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title argument is required and must be a string"), nil
	}

	in := engine.LoAWriteInput{
		Title:   title,
		Project: optStringPtr(request.GetString("project", "")),
		Tags:    optStringPtr(request.GetString("tags", "")),
		Limit:   request.GetInt("limit", 0),
	}
	if continues := request.GetInt("continues", 0); continues != 0 {
		continuesID := int64(continues)
		in.Continues = &continuesID
	}

	entry, err := h.engine.LoAWrite(ctx, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("writing loa entry: %v", err)), nil
	}
	return textResult(entry)
}

// LoAQuote handles the loa_quote tool.
func (h *Handlers) LoAQuote(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetInt("id", 0)
	if id == 0 {
		return mcp.NewToolResultError("id argument is required and must be a nonzero number"), nil
	}
	messages, err := h.engine.LoAQuote(ctx, int64(id))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("quoting loa entry %d: %v", id, err)), nil
	}
	return textResult(map[string]interface{}{"messages": messages})
}

// LoAList handles the loa_list tool.
func (h *Handlers) LoAList(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entries, err := h.engine.LoAList(ctx, request.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing loa entries: %v", err)), nil
	}
	return textResult(map[string]interface{}{"entries": entries})
}

// EmbedBackfill handles the embed_backfill tool.
func (h *Handlers) EmbedBackfill(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kindStr, err := request.RequireString("kind")
	if err != nil {
		return mcp.NewToolResultError("kind argument is required and must be a string"), nil
	}
	kind := model.Kind(kindStr)
	if !kind.IsValid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown kind %q", kindStr)), nil
	}

	result, err := h.engine.EmbedBackfill(ctx, engine.EmbedBackfillInput{
		Kind:  kind,
		Limit: request.GetInt("limit", 100),
		Force: request.GetInt("force", 0) != 0,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("backfilling embeddings: %v", err)), nil
	}
	return textResult(map[string]interface{}{
		"embedded":    result.Embedded,
		"error_count": len(result.Errors),
	})
}
