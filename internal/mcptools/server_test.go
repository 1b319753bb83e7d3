//go:build cgo

package mcptools

import (
	"context"
	"encoding/json"
	"sort"
	"testing"

	"github.com/dusk-indust/codegraph/internal/analyzer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupServerClient wires an MCP server and client together using in-memory
// transports and returns the connected client session.
func setupServerClient(t *testing.T) *mcp.ClientSession {
	t.Helper()

	svc := newTestService(t)
	server := NewCodeGraphMCPServer(svc)

	st, ct := mcp.NewInMemoryTransports()

	ctx := context.Background()

	_, err := server.Connect(ctx, st, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		session.Close()
	})

	return session
}

func TestMCPListTools(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)

	names := make([]string, len(result.Tools))
	for i, tool := range result.Tools {
		names[i] = tool.Name
	}
	sort.Strings(names)

	expected := []string{
		"analyze",
		"export_graph",
		"find_callees",
		"find_callers",
		"find_circular_dependencies",
		"get_dependencies",
		"get_dependents",
		"get_entity",
		"get_summary",
		"search_entities",
	}
	assert.Equal(t, expected, names)
}

func TestMCPAnalyzeAndQuery(t *testing.T) {
	session := setupServerClient(t)
	ctx := context.Background()

	analyzeArgs := AnalyzeInput{
		Files: []analyzer.FileInput{
			{Path: "util.ts", Content: "export function helper() { return 1; }\n"},
			{Path: "app.ts", Content: "import { helper } from \"./util\";\nexport function run() { return helper(); }\n"},
		},
	}

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "analyze",
		Arguments: analyzeArgs,
	})
	require.NoError(t, err)
	require.False(t, result.IsError, "analyze should not return an error")
	require.NotNil(t, result.StructuredContent)

	raw, err := json.Marshal(result.StructuredContent)
	require.NoError(t, err)

	var analyzeOut AnalyzeOutput
	require.NoError(t, json.Unmarshal(raw, &analyzeOut))
	assert.Equal(t, 2, analyzeOut.Summary.TotalFiles)
	assert.Equal(t, 2, analyzeOut.Summary.TotalEntities)

	// Query back through the same session.
	result, err = session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "find_callers",
		Arguments: FindCallersInput{Name: "helper"},
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	raw, err = json.Marshal(result.StructuredContent)
	require.NoError(t, err)

	var callersOut FindCallersOutput
	require.NoError(t, json.Unmarshal(raw, &callersOut))
	require.Equal(t, 1, callersOut.Total)
	assert.Equal(t, "run", callersOut.Edges[0].Caller.Name)
}

func TestMCPQueryWithoutSnapshot(t *testing.T) {
	session := setupServerClient(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_summary",
		Arguments: GetSummaryInput{},
	})
	require.NoError(t, err, "tool errors surface as result errors, not transport errors")
	assert.True(t, result.IsError)
}
