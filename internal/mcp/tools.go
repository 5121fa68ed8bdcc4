package mcp

import "github.com/mark3labs/mcp-go/mcp"

// colorForTool defines the color_for MCP tool.
var colorForTool = mcp.NewTool("color_for",
	mcp.WithDescription("Get the heatmap colour of a KEGG gene identifier from its abundance score."),
	mcp.WithString("identifier",
		mcp.Required(),
		mcp.Description("KEGG Orthology identifier, e.g. K00844"),
	),
)

// listPathwaysTool defines the list_pathways MCP tool.
var listPathwaysTool = mcp.NewTool("list_pathways",
	mcp.WithDescription("List the pathways in the loaded tree with their map ids and gene counts."),
	mcp.WithString("filter",
		mcp.Description("Case-insensitive substring of the pathway name or map id"),
	),
)

// heatmapURLTool defines the heatmap_url MCP tool.
var heatmapURLTool = mcp.NewTool("heatmap_url",
	mcp.WithDescription("Build a KEGG link that colours every gene of a pathway with its heatmap colour."),
	mcp.WithString("pathway_id",
		mcp.Required(),
		mcp.Description("Pathway map id, e.g. map00010"),
	),
)

// buildURLTool defines the build_url MCP tool.
var buildURLTool = mcp.NewTool("build_url",
	mcp.WithDescription("Build a KEGG link that colours the given genes on a pathway map."),
	mcp.WithString("pathway_id",
		mcp.Required(),
		mcp.Description("Pathway map id, e.g. map00010"),
	),
	mcp.WithArray("identifiers",
		mcp.Required(),
		mcp.Description("Genes to colour, each as K00001, K00001=#BG or K00001=#BG,#FG"),
		mcp.WithStringItems(),
	),
)
