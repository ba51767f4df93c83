// Package mcp provides a Model Context Protocol server for review-cli.
// It exposes project bootstrapping and branch reports as MCP tools so an
// agent can prepare a review without a terminal.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all review-cli tools registered.
// Relative roots in tool input resolve against root.
func NewServer(version, root string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "review-cli",
		Version: version,
	}, nil)
	registerTools(server, root)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that create or overwrite
// files in the project.
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(false),
	}
}

func registerTools(server *mcp.Server, root string) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "agents",
		Description: "List the supported AI assistants, their prompt directories and the script formats available.",
		Annotations: readOnlyAnnotations(),
	}, handleAgents(root))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "init",
		Description: "Bootstrap code review in a project: write the diff report script under .code_review/scripts and the review prompt into the assistant's prompt directory. Existing files are overwritten.",
		Annotations: writeAnnotations(),
	}, handleInit(root))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "report",
		Description: "Compare a branch against its base and write a Markdown diff report (changed files, commits, full diff) under diffs/.",
		Annotations: writeAnnotations(),
	}, handleReport(root))
}
