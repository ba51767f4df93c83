package main

import (
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/oidellajulio/code-review-cli/internal/output"
	reviewmcp "github.com/oidellajulio/code-review-cli/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run review-cli as a Model Context Protocol (MCP) server over stdio.

This exposes init and report as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Gemini CLI, etc). Tools never
prompt; omitted choices fall back to the non-interactive defaults.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "review-cli": {
        "command": "review-cli",
        "args": ["serve"]
      }
    }
  }

Available tools: agents, init, report`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := os.Getwd()
			if err != nil {
				return output.NewSystemErrorWithCause("cannot determine the current directory", err)
			}
			server := reviewmcp.NewServer(buildVersion(), root)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
