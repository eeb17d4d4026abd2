package main

import (
	"github.com/spf13/cobra"

	"github.com/reposcope/reposcope/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for LLM tool integration",
	Long: `Starts an MCP (Model Context Protocol) server over stdio transport that
exposes the reposcope metrics as tools LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "reposcope": {
        "command": "reposcope",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_repository       Full repository metric report
  - analyze_lines            Physical, source, logical and comment lines
  - analyze_complexity       Cyclomatic complexity per function
  - analyze_maintainability  Maintainability index per function`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	server := mcpserver.NewServer(version)
	return server.Run(cmd.Context())
}
