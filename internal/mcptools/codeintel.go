package mcptools

import "github.com/dusk-indust/codegraph/internal/analyzer"

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// AnalyzeInput is the input for the analyze MCP tool. Supply either inline
// files or a repository path to walk.
type AnalyzeInput struct {
	Files       []analyzer.FileInput `json:"files,omitempty" jsonschema:"inline files to analyze as path/content pairs"`
	RepoPath    string               `json:"repoPath,omitempty" jsonschema:"absolute path to a repository to walk instead of inline files"`
	Languages   []string             `json:"languages,omitempty" jsonschema:"languages to include (default: all). Values: typescript, go, python, rust"`
	ExcludeDirs []string             `json:"excludeDirs,omitempty" jsonschema:"directories to exclude when walking repoPath (e.g. vendor, node_modules)"`
}

// AnalyzeOutput is the result of the analyze MCP tool.
type AnalyzeOutput struct {
	Files                []analyzer.SourceFile `json:"files"`
	CircularDependencies [][]string            `json:"circularDependencies,omitempty"`
	Summary              analyzer.Summary      `json:"summary"`
}

// FindCallersInput is the input for the find_callers MCP tool.
type FindCallersInput struct {
	Name     string `json:"name" jsonschema:"qualified entity name of the callee"`
	FilePath string `json:"filePath,omitempty" jsonschema:"narrow results to callers located in this file"`
}

// FindCallersOutput is the result of the find_callers MCP tool.
type FindCallersOutput struct {
	Edges []analyzer.CallEdge `json:"edges"`
	Total int                 `json:"total"`
}

// FindCalleesInput is the input for the find_callees MCP tool.
type FindCalleesInput struct {
	Name string `json:"name" jsonschema:"qualified entity name of the caller"`
}

// FindCalleesOutput is the result of the find_callees MCP tool.
type FindCalleesOutput struct {
	Edges []analyzer.CallEdge `json:"edges"`
	Total int                 `json:"total"`
}

// SearchEntitiesInput is the input for the search_entities MCP tool.
type SearchEntitiesInput struct {
	Pattern string `json:"pattern" jsonschema:"case-insensitive substring, or a glob when it contains wildcard characters. Empty matches everything"`
	Kind    string `json:"kind,omitempty" jsonschema:"filter by entity kind: function, class, interface, variable, method, type, enum"`
}

// SearchEntitiesOutput is the result of the search_entities MCP tool.
type SearchEntitiesOutput struct {
	Entities []analyzer.Entity `json:"entities"`
	Total    int               `json:"total"`
}

// GetEntityInput is the input for the get_entity MCP tool.
type GetEntityInput struct {
	Name string `json:"name" jsonschema:"qualified entity name"`
}

// GetEntityOutput is the result of the get_entity MCP tool. Found is false
// when no entity has the given name.
type GetEntityOutput struct {
	Entity *analyzer.Entity `json:"entity,omitempty"`
	Found  bool             `json:"found"`
}

// GetDependentsInput is the input for the get_dependents MCP tool.
type GetDependentsInput struct {
	FilePath string `json:"filePath" jsonschema:"file path whose dependents to list"`
}

// GetDependentsOutput is the result of the get_dependents MCP tool.
type GetDependentsOutput struct {
	Files []string `json:"files"`
}

// GetDependenciesInput is the input for the get_dependencies MCP tool.
type GetDependenciesInput struct {
	FilePath string `json:"filePath" jsonschema:"file path whose outgoing dependency edges to list"`
}

// GetDependenciesOutput is the result of the get_dependencies MCP tool.
type GetDependenciesOutput struct {
	Edges []analyzer.DependencyEdge `json:"edges"`
}

// FindCyclesInput is the input for the find_circular_dependencies MCP tool.
type FindCyclesInput struct{}

// FindCyclesOutput is the result of the find_circular_dependencies MCP tool.
type FindCyclesOutput struct {
	Cycles [][]string `json:"cycles"`
}

// GetSummaryInput is the input for the get_summary MCP tool.
type GetSummaryInput struct{}

// GetSummaryOutput is the result of the get_summary MCP tool.
type GetSummaryOutput struct {
	Summary analyzer.Summary `json:"summary"`
}

// ExportGraphInput is the input for the export_graph MCP tool.
type ExportGraphInput struct {
	Format string `json:"format,omitempty" jsonschema:"output format: json (default) or mermaid"`
}

// ExportGraphOutput is the result of the export_graph MCP tool.
type ExportGraphOutput struct {
	Content string `json:"content"`
}
