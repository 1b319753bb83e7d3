package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewCodeGraphMCPServer creates an MCP server with all code analysis tools
// registered.
func NewCodeGraphMCPServer(svc *Service) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "codegraph",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze",
		Description: "Analyze a set of source files (inline or from a repository path). Parses files with tree-sitter, extracts entities, computes complexity and issues, and builds the call and dependency graphs. Replaces any previous snapshot.",
	}, svc.Analyze)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_callers",
		Description: "Find all call edges targeting an entity by name, optionally narrowed to callers located in one file. Unresolved callees match by raw name.",
	}, svc.FindCallers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_callees",
		Description: "Find all call edges originating from an entity by qualified name.",
	}, svc.FindCallees)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_entities",
		Description: "Search entities by name with case-insensitive substring or glob matching, optionally filtered by kind. Results keep snapshot order.",
	}, svc.SearchEntities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_entity",
		Description: "Look up a single entity by qualified name. When names collide across files the first entity in snapshot order is returned.",
	}, svc.GetEntity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dependents",
		Description: "List the files that import or re-export a given file.",
	}, svc.GetDependents)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_dependencies",
		Description: "List the outgoing import/export edges of a given file, including external targets.",
	}, svc.GetDependencies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_circular_dependencies",
		Description: "Return every distinct circular dependency chain among the analyzed files, with rotations deduplicated.",
	}, svc.FindCircularDependencies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_summary",
		Description: "Return aggregate counts for the latest snapshot: files, entities by kind, average complexity, issues by severity, dependency edges, and cycles.",
	}, svc.GetSummary)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_graph",
		Description: "Export the latest snapshot as JSON or as a Mermaid diagram of the dependency graph.",
	}, svc.ExportGraph)

	return server
}

// RunStdio runs the MCP server on stdio transport, blocking until stdin is
// closed or the context is cancelled.
func RunStdio(ctx context.Context, server *mcp.Server) error {
	return server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP starts an HTTP server exposing the code analysis MCP tools.
func RunHTTP(ctx context.Context, svc *Service, addr string) error {
	server := NewCodeGraphMCPServer(svc)

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
