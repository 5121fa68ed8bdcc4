package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/keggview/internal/selection"
)

// handleColorFor returns the heatmap colour and score of one identifier.
func (s *Server) handleColorFor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("identifier")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: identifier"), nil
	}
	id = strings.TrimSpace(id)

	color := s.sess.ColorFor(id)
	if v, ok := s.sess.Index().Value(id); ok {
		return mcp.NewToolResultText(fmt.Sprintf("%s: %s (score %g)", id, color, v)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s (no abundance data)", id, color)), nil
}

// handleListPathways lists catalog entries matching the optional filter.
func (s *Server) handleListPathways(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	found := s.sess.Catalog().Search(request.GetString("filter", ""))
	if len(found) == 0 {
		return mcp.NewToolResultText("No pathways found."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d pathways:\n\n", len(found))
	for _, p := range found {
		id := p.ID
		if id == "" {
			id = "-"
		}
		fmt.Fprintf(&b, "- %s  %s (%d genes)", id, p.Label, len(p.Identifiers))
		if len(p.Path) > 0 {
			fmt.Fprintf(&b, "  [%s]", strings.Join(p.Path, " > "))
		}
		b.WriteString("\n")
	}
	return mcp.NewToolResultText(b.String()), nil
}

// handleHeatmapURL builds the one-click heatmap link for a catalog pathway.
func (s *Server) handleHeatmapURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mapID, err := request.RequireString("pathway_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: pathway_id"), nil
	}

	u, err := s.sess.HeatmapURL(strings.TrimSpace(mapID), nil)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot build heatmap link: %v", err)), nil
	}
	return mcp.NewToolResultText(u), nil
}

// handleBuildURL colours the given identifiers on a pathway map.
func (s *Server) handleBuildURL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mapID, err := request.RequireString("pathway_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: pathway_id"), nil
	}
	raw := request.GetStringSlice("identifiers", nil)
	if len(raw) == 0 {
		return mcp.NewToolResultError("missing required parameter: identifiers"), nil
	}

	entries := make([]selection.Entry, 0, len(raw))
	for _, r := range raw {
		e, err := selection.ParseEntry(r)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		entries = append(entries, e)
	}

	u, err := s.sess.BuildLink(strings.TrimSpace(mapID), entries)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot build link: %v", err)), nil
	}
	return mcp.NewToolResultText(u), nil
}
