package mcptools

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dusk-indust/codegraph/internal/analyzer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	engine := analyzer.NewDefaultEngine()
	t.Cleanup(func() { engine.Close() })
	return NewService(engine)
}

// analyzeSample loads a small two-file TypeScript project into the service.
func analyzeSample(t *testing.T, svc *Service) AnalyzeOutput {
	t.Helper()
	_, out, err := svc.Analyze(context.Background(), nil, AnalyzeInput{
		Files: []analyzer.FileInput{
			{Path: "lib.ts", Content: "export function leaf() { return 1; }\n"},
			{Path: "main.ts", Content: "import { leaf } from \"./lib\";\nexport function root() { return leaf(); }\n"},
		},
	})
	require.NoError(t, err)
	return out
}

func TestService_Analyze_InlineFiles(t *testing.T) {
	svc := newTestService(t)
	out := analyzeSample(t, svc)

	assert.Len(t, out.Files, 2)
	assert.Empty(t, out.CircularDependencies)
	assert.Equal(t, 2, out.Summary.TotalEntities)

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	assert.NotNil(t, snap.Entity("root"))
}

func TestService_Analyze_RequiresInput(t *testing.T) {
	svc := newTestService(t)

	_, _, err := svc.Analyze(context.Background(), nil, AnalyzeInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "files or repoPath")
}

func TestService_QueriesBeforeAnalyze(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, _, err := svc.FindCallers(ctx, nil, FindCallersInput{Name: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no snapshot")

	_, _, err = svc.GetSummary(ctx, nil, GetSummaryInput{})
	require.Error(t, err)

	_, _, err = svc.ExportGraph(ctx, nil, ExportGraphInput{})
	require.Error(t, err)
}

func TestService_FindCallersAndCallees(t *testing.T) {
	svc := newTestService(t)
	analyzeSample(t, svc)
	ctx := context.Background()

	_, callers, err := svc.FindCallers(ctx, nil, FindCallersInput{Name: "leaf"})
	require.NoError(t, err)
	require.Equal(t, 1, callers.Total)
	assert.Equal(t, "root", callers.Edges[0].Caller.Name)

	_, filtered, err := svc.FindCallers(ctx, nil, FindCallersInput{Name: "leaf", FilePath: "lib.ts"})
	require.NoError(t, err)
	assert.Zero(t, filtered.Total, "filter applies to the caller's file")

	_, callees, err := svc.FindCallees(ctx, nil, FindCalleesInput{Name: "root"})
	require.NoError(t, err)
	require.Equal(t, 1, callees.Total)
	assert.Equal(t, "leaf", callees.Edges[0].Callee.Name)

	_, _, err = svc.FindCallers(ctx, nil, FindCallersInput{})
	require.Error(t, err, "name is required")
}

func TestService_SearchAndGetEntity(t *testing.T) {
	svc := newTestService(t)
	analyzeSample(t, svc)
	ctx := context.Background()

	_, search, err := svc.SearchEntities(ctx, nil, SearchEntitiesInput{Pattern: "ro", Kind: "function"})
	require.NoError(t, err)
	require.Equal(t, 1, search.Total)
	assert.Equal(t, "root", search.Entities[0].Name)

	_, got, err := svc.GetEntity(ctx, nil, GetEntityInput{Name: "leaf"})
	require.NoError(t, err)
	require.True(t, got.Found)
	assert.Equal(t, "lib.ts", got.Entity.File)

	_, missing, err := svc.GetEntity(ctx, nil, GetEntityInput{Name: "nope"})
	require.NoError(t, err, "a missing entity is not a transport error")
	assert.False(t, missing.Found)
	assert.Nil(t, missing.Entity)
}

func TestService_DependenciesAndCycles(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, out, err := svc.Analyze(ctx, nil, AnalyzeInput{
		Files: []analyzer.FileInput{
			{Path: "a.ts", Content: "import \"./b\";\nexport const a = 1;\n"},
			{Path: "b.ts", Content: "import \"./a\";\nexport const b = 2;\n"},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.CircularDependencies, 1)

	_, cycles, err := svc.FindCircularDependencies(ctx, nil, FindCyclesInput{})
	require.NoError(t, err)
	require.Len(t, cycles.Cycles, 1)
	assert.Equal(t, []string{"a.ts", "b.ts"}, cycles.Cycles[0])

	_, dependents, err := svc.GetDependents(ctx, nil, GetDependentsInput{FilePath: "a.ts"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b.ts"}, dependents.Files)

	_, deps, err := svc.GetDependencies(ctx, nil, GetDependenciesInput{FilePath: "a.ts"})
	require.NoError(t, err)
	require.Len(t, deps.Edges, 1)
	assert.Equal(t, "b.ts", deps.Edges[0].To)

	_, _, err = svc.GetDependents(ctx, nil, GetDependentsInput{})
	require.Error(t, err, "filePath is required")
}

func TestService_ExportGraph(t *testing.T) {
	svc := newTestService(t)
	analyzeSample(t, svc)
	ctx := context.Background()

	_, jsonOut, err := svc.ExportGraph(ctx, nil, ExportGraphInput{})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(jsonOut.Content, "{"), "default format is JSON")

	_, mermaid, err := svc.ExportGraph(ctx, nil, ExportGraphInput{Format: "mermaid"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(mermaid.Content, "graph TD"))

	_, _, err = svc.ExportGraph(ctx, nil, ExportGraphInput{Format: "dot"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestCollectFiles(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write("main.go", "package main\n")
	write("src/app.ts", "export const x = 1;\n")
	write("README.md", "# docs\n")
	write("node_modules/pkg/index.js", "module.exports = {};\n")
	write(".git/config", "[core]\n")

	t.Run("default languages with excludes", func(t *testing.T) {
		files, err := CollectFiles(root, nil, []string{"node_modules"})
		require.NoError(t, err)

		var paths []string
		for _, f := range files {
			paths = append(paths, f.Path)
		}
		assert.Equal(t, []string{"main.go", "src/app.ts"}, paths)
	})

	t.Run("language filter", func(t *testing.T) {
		files, err := CollectFiles(root, []string{"go"}, nil)
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, "main.go", files[0].Path)
		assert.Equal(t, "package main\n", files[0].Content)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := CollectFiles(filepath.Join(root, "absent"), nil, nil)
		require.Error(t, err)
	})

	t.Run("root must be a directory", func(t *testing.T) {
		_, err := CollectFiles(filepath.Join(root, "main.go"), nil, nil)
		require.Error(t, err)
	})
}
