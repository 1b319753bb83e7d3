package mcptools

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/dusk-indust/codegraph/internal/analyzer"
	"github.com/dusk-indust/codegraph/internal/export"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Service maps the engine boundary onto MCP tool handlers. The latest
// snapshot is held behind an atomic pointer and swapped wholesale per
// analyze call, so queries always observe a fully built snapshot.
type Service struct {
	engine *analyzer.Engine
	snap   atomic.Pointer[analyzer.Snapshot]
}

// NewService creates a Service around the given engine.
func NewService(engine *analyzer.Engine) *Service {
	return &Service{engine: engine}
}

// Snapshot returns the latest snapshot, or an error when no analyze call
// has completed yet.
func (s *Service) Snapshot() (*analyzer.Snapshot, error) {
	snap := s.snap.Load()
	if snap == nil {
		return nil, fmt.Errorf("no snapshot: run analyze first")
	}
	return snap, nil
}

// CollectFiles walks a repository root and reads every source file with a
// supported extension, skipping .git and the given directories. languages
// narrows the result when non-empty.
func CollectFiles(root string, languages, excludeDirs []string) ([]analyzer.FileInput, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	allowed := make(map[analyzer.Language]bool)
	if len(languages) == 0 {
		for _, l := range analyzer.Tier1Languages {
			allowed[l] = true
		}
	} else {
		for _, l := range languages {
			allowed[analyzer.Language(strings.ToLower(l))] = true
		}
	}

	excludeSet := make(map[string]bool, len(excludeDirs))
	for _, d := range excludeDirs {
		excludeSet[d] = true
	}

	var files []analyzer.FileInput
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if d.IsDir() {
			name := d.Name()
			if name == ".git" || excludeSet[name] {
				return filepath.SkipDir
			}
			return nil
		}

		lang, ok := analyzer.DetectLanguage(path)
		if !ok || !allowed[lang] {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil // skip unreadable files
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		files = append(files, analyzer.FileInput{Path: filepath.ToSlash(relPath), Content: string(content)})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk: %w", walkErr)
	}
	return files, nil
}

// Analyze builds a fresh snapshot from inline files or a repository walk
// and publishes it for the query tools.
func (s *Service) Analyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, AnalyzeOutput, error) {
	files := input.Files
	if len(files) == 0 {
		if input.RepoPath == "" {
			return nil, AnalyzeOutput{}, fmt.Errorf("either files or repoPath is required")
		}
		collected, err := CollectFiles(input.RepoPath, input.Languages, input.ExcludeDirs)
		if err != nil {
			return nil, AnalyzeOutput{}, err
		}
		files = collected
	}

	snap, err := s.engine.Analyze(ctx, files)
	if err != nil {
		return nil, AnalyzeOutput{}, fmt.Errorf("analyze: %w", err)
	}
	s.snap.Store(snap)

	return nil, AnalyzeOutput{
		Files:                snap.Files,
		CircularDependencies: snap.Cycles(),
		Summary:              snap.Summary(),
	}, nil
}

// FindCallers returns call edges targeting the named entity, optionally
// narrowed to callers in one file.
func (s *Service) FindCallers(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FindCallersInput,
) (*mcp.CallToolResult, FindCallersOutput, error) {
	if input.Name == "" {
		return nil, FindCallersOutput{}, fmt.Errorf("name is required")
	}
	snap, err := s.Snapshot()
	if err != nil {
		return nil, FindCallersOutput{}, err
	}
	edges := snap.FindCallers(input.Name, input.FilePath)
	return nil, FindCallersOutput{Edges: edges, Total: len(edges)}, nil
}

// FindCallees returns call edges originating from the named entity.
func (s *Service) FindCallees(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input FindCalleesInput,
) (*mcp.CallToolResult, FindCalleesOutput, error) {
	if input.Name == "" {
		return nil, FindCalleesOutput{}, fmt.Errorf("name is required")
	}
	snap, err := s.Snapshot()
	if err != nil {
		return nil, FindCalleesOutput{}, err
	}
	edges := snap.FindCallees(input.Name)
	return nil, FindCalleesOutput{Edges: edges, Total: len(edges)}, nil
}

// SearchEntities matches entities by name pattern and optional kind.
func (s *Service) SearchEntities(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input SearchEntitiesInput,
) (*mcp.CallToolResult, SearchEntitiesOutput, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, SearchEntitiesOutput{}, err
	}
	entities := snap.SearchEntities(input.Pattern, analyzer.EntityKind(strings.ToLower(input.Kind)))
	return nil, SearchEntitiesOutput{Entities: entities, Total: len(entities)}, nil
}

// GetEntity looks up one entity by qualified name. A missing entity is a
// found=false result, not an error.
func (s *Service) GetEntity(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetEntityInput,
) (*mcp.CallToolResult, GetEntityOutput, error) {
	if input.Name == "" {
		return nil, GetEntityOutput{}, fmt.Errorf("name is required")
	}
	snap, err := s.Snapshot()
	if err != nil {
		return nil, GetEntityOutput{}, err
	}
	ent := snap.Entity(input.Name)
	return nil, GetEntityOutput{Entity: ent, Found: ent != nil}, nil
}

// GetDependents lists the files that depend on the given file.
func (s *Service) GetDependents(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetDependentsInput,
) (*mcp.CallToolResult, GetDependentsOutput, error) {
	if input.FilePath == "" {
		return nil, GetDependentsOutput{}, fmt.Errorf("filePath is required")
	}
	snap, err := s.Snapshot()
	if err != nil {
		return nil, GetDependentsOutput{}, err
	}
	return nil, GetDependentsOutput{Files: snap.Dependents(input.FilePath)}, nil
}

// GetDependencies lists the outgoing dependency edges of the given file.
func (s *Service) GetDependencies(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input GetDependenciesInput,
) (*mcp.CallToolResult, GetDependenciesOutput, error) {
	if input.FilePath == "" {
		return nil, GetDependenciesOutput{}, fmt.Errorf("filePath is required")
	}
	snap, err := s.Snapshot()
	if err != nil {
		return nil, GetDependenciesOutput{}, err
	}
	return nil, GetDependenciesOutput{Edges: snap.Dependencies(input.FilePath)}, nil
}

// FindCircularDependencies returns every distinct dependency cycle.
func (s *Service) FindCircularDependencies(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ FindCyclesInput,
) (*mcp.CallToolResult, FindCyclesOutput, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, FindCyclesOutput{}, err
	}
	return nil, FindCyclesOutput{Cycles: snap.Cycles()}, nil
}

// GetSummary returns the aggregate counts of the latest snapshot.
func (s *Service) GetSummary(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ GetSummaryInput,
) (*mcp.CallToolResult, GetSummaryOutput, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, GetSummaryOutput{}, err
	}
	return nil, GetSummaryOutput{Summary: snap.Summary()}, nil
}

// ExportGraph renders the latest snapshot as JSON or a Mermaid diagram.
func (s *Service) ExportGraph(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ExportGraphInput,
) (*mcp.CallToolResult, ExportGraphOutput, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, ExportGraphOutput{}, err
	}

	switch strings.ToLower(input.Format) {
	case "", "json":
		data, err := export.MarshalSnapshot(snap)
		if err != nil {
			return nil, ExportGraphOutput{}, fmt.Errorf("marshal snapshot: %w", err)
		}
		return nil, ExportGraphOutput{Content: string(data)}, nil
	case "mermaid":
		return nil, ExportGraphOutput{Content: export.GenerateMermaid(snap)}, nil
	default:
		return nil, ExportGraphOutput{}, fmt.Errorf("unknown format: %s", input.Format)
	}
}
