package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers the reposcope metric tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates an MCP server with all reposcope tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "reposcope",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_repository",
		Description: describeRepository(),
	}, handleAnalyzeRepository)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_lines",
		Description: describeLines(),
	}, handleAnalyzeLines)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_complexity",
		Description: describeComplexity(),
	}, handleAnalyzeComplexity)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_maintainability",
		Description: describeMaintainability(),
	}, handleAnalyzeMaintainability)
}
