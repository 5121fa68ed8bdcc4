package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/keggview/internal/session"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes pathway colouring tools.
type Server struct {
	sess *session.Session
	mcp  *server.MCPServer
}

// NewServer creates a new MCP server over a loaded session.
func NewServer(sess *session.Session) *Server {
	s := &Server{sess: sess}

	s.mcp = server.NewMCPServer(
		"keggview",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(colorForTool, s.handleColorFor)
	s.mcp.AddTool(listPathwaysTool, s.handleListPathways)
	s.mcp.AddTool(heatmapURLTool, s.handleHeatmapURL)
	s.mcp.AddTool(buildURLTool, s.handleBuildURL)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
