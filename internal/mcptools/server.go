package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewMendMCPServer creates an MCP server with the 7 conflict resolution tools
// registered.
func NewMendMCPServer(svc *ResolveService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mend",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "open_session",
		Description: "Parse a conflicted file into a merge session. Returns a session id and the list of conflict hunks.",
	}, svc.OpenSession)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_hunks",
		Description: "List the conflict hunks of an open session, optionally only those still unresolved.",
	}, svc.ListHunks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "propose",
		Description: "Collect candidate resolutions for one hunk from the named strategies, in priority order. Nothing is selected; pass a candidate to resolve_hunk to commit it.",
	}, svc.Propose)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "resolve_hunk",
		Description: "Resolve one hunk with a named strategy, or with explicit replacement content via the manual strategy.",
	}, svc.ResolveHunk)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_resolution",
		Description: "Remove a hunk's resolution, returning it to the unresolved state.",
	}, svc.ClearResolution)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "apply_preview",
		Description: "Render the merged output of a fully resolved session without finishing it. Resolutions can still be changed afterwards.",
	}, svc.ApplyPreview)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_session",
		Description: "Validate and finalize a session, returning the merged content and a summary. The session is consumed and its id becomes invalid.",
	}, svc.CompleteSession)

	return server
}

// RunMCPServerStdio runs the MCP server on stdio transport, blocking until
// stdin is closed or the context is cancelled.
func RunMCPServerStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunMCPServerHTTP starts an HTTP server exposing the resolution tools.
func RunMCPServerHTTP(ctx context.Context, svc *ResolveService, addr string) error {
	server := NewMendMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
