package xrefserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Run starts the cross-reference MCP server over stdio.
// It blocks until the client disconnects or the context is cancelled.
// Tool calls without an explicit root validate defaultRoot.
func Run(ctx context.Context, version, defaultRoot string, defaultExclude []string) error {
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "geniekit-xref",
			Version: version,
		},
		nil,
	)

	h := &handler{root: defaultRoot, exclude: defaultExclude}
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_references",
		Description: "Validate @ cross-references in the repository's markdown files. Returns every reference that does not resolve to an existing file (or directory, for references ending in /). Emails, versions, package names and handles are ignored. Read-only.",
	}, h.validateReferences)

	return server.Run(ctx, &mcp.StdioTransport{})
}
