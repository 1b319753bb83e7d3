package analyzer

// --- Enums ---

// EntityKind classifies declared entities in the codebase model.
type EntityKind string

const (
	EntityKindFunction  EntityKind = "function"
	EntityKindClass     EntityKind = "class"
	EntityKindInterface EntityKind = "interface"
	EntityKindVariable  EntityKind = "variable"
	EntityKindMethod    EntityKind = "method"
	EntityKindType      EntityKind = "type"
	EntityKindEnum      EntityKind = "enum"
)

// IsFunctionLike reports whether entities of this kind have a body to which
// complexity scoring applies.
func (k EntityKind) IsFunctionLike() bool {
	return k == EntityKindFunction || k == EntityKindMethod
}

// ImportKind classifies import/export statements and the dependency edges
// derived from them.
type ImportKind string

const (
	ImportKindStatic   ImportKind = "import"
	ImportKindExport   ImportKind = "export"
	ImportKindDynamic  ImportKind = "dynamic-import"
	ImportKindReExport ImportKind = "re-export"
)

// Severity ranks detected issues.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Language identifies a programming language for parsing.
type Language string

const (
	LangTypeScript Language = "typescript"
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangRust       Language = "rust"
)

// Tier1Languages are languages with full extraction support (entities,
// call sites, imports, complexity) tested in CI.
var Tier1Languages = []Language{LangGo, LangTypeScript, LangPython, LangRust}

// --- Models ---

// FileInput is one source file supplied to Analyze. Content is supplied by
// the caller; the engine performs no disk I/O.
type FileInput struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Range is a source range with 1-based lines and columns.
type Range struct {
	StartLine int `json:"startLine"`
	StartCol  int `json:"startCol"`
	EndLine   int `json:"endLine"`
	EndCol    int `json:"endCol"`
}

// Signature describes the declared parameters and return annotation of a
// function-like entity.
type Signature struct {
	Params     []string `json:"params,omitempty"`
	ParamCount int      `json:"paramCount"`
	Return     string   `json:"return,omitempty"`
}

// Entity is a named, located code declaration. Identity within a snapshot is
// (File, Name, Range.StartLine); names may collide across files and are
// never merged.
type Entity struct {
	Name      string     `json:"name"` // qualified: "ClassName.methodName" for methods
	Kind      EntityKind `json:"kind"`
	File      string     `json:"file"`
	Range     Range      `json:"range"`
	Signature Signature  `json:"signature"`
	Exported  bool       `json:"exported"`

	// Complexity is the cyclomatic complexity score, >= 1 for function-like
	// entities and 0 for kinds without a body. Computed during extraction
	// and immutable for the lifetime of the snapshot.
	Complexity int `json:"complexity"`

	// BodyLines is the line span of the declaration including its body.
	BodyLines int `json:"bodyLines"`

	Issues []Issue `json:"issues,omitempty"`
}

// Ref returns the stable reference identifying this entity in its snapshot.
func (e *Entity) Ref() EntityRef {
	return EntityRef{File: e.File, Name: e.Name, StartLine: e.Range.StartLine}
}

// EntityRef identifies an entity by (file, qualified name, start line).
type EntityRef struct {
	File      string `json:"file"`
	Name      string `json:"name"`
	StartLine int    `json:"startLine"`
}

// CallTarget is the callee side of a call edge: a resolved entity reference,
// or just the raw name when cross-file resolution failed. Name always holds
// the callee name as written at the call site.
type CallTarget struct {
	Entity *EntityRef `json:"entity,omitempty"`
	Name   string     `json:"name"`
}

// Resolved reports whether the target was bound to a snapshot entity.
func (t CallTarget) Resolved() bool {
	return t.Entity != nil
}

// CallEdge is a directed "caller invokes callee" relationship. Caller always
// refers to an entity present in the snapshot.
type CallEdge struct {
	Caller EntityRef  `json:"caller"`
	Callee CallTarget `json:"callee"`
	Site   Range      `json:"site"`
}

// ImportStmt is one import/export statement recorded on a file. Specifier is
// the module specifier as written; it is empty for local export statements.
type ImportStmt struct {
	Specifier string     `json:"specifier,omitempty"`
	Names     []string   `json:"names,omitempty"`
	Kind      ImportKind `json:"kind"`
	Line      int        `json:"line"`
}

// DependencyEdge is a directed "file A references file B" relationship.
// To is a snapshot file path when resolution succeeded, otherwise the raw
// module specifier with External set. External edges are recorded but
// excluded from cycle detection.
type DependencyEdge struct {
	From     string     `json:"from"`
	To       string     `json:"to"`
	Kind     ImportKind `json:"kind"`
	External bool       `json:"external,omitempty"`
}

// Issue is one detected code-quality finding. Entity is nil for file-level
// issues such as parse failures.
type Issue struct {
	Entity   *EntityRef `json:"entity,omitempty"`
	Severity Severity   `json:"severity"`
	Rule     string     `json:"rule"`
	Message  string     `json:"message"`
	File     string     `json:"file"`
	Line     int        `json:"line"`
}

// SourceFile is the per-file analysis result. Entities holds references, in
// declaration order, to entities whose source range lies within this file.
type SourceFile struct {
	Path     string       `json:"path"`
	Language Language     `json:"language"`
	LOC      int          `json:"loc"`
	Entities []EntityRef  `json:"entities"`
	Imports  []ImportStmt `json:"imports,omitempty"`
	Issues   []Issue      `json:"issues,omitempty"`
}

// Summary aggregates counts over one snapshot.
type Summary struct {
	TotalFiles        int                `json:"totalFiles"`
	TotalEntities     int                `json:"totalEntities"`
	EntitiesByKind    map[EntityKind]int `json:"entitiesByKind"`
	AverageComplexity float64            `json:"averageComplexity"`
	IssuesBySeverity  map[Severity]int   `json:"issuesBySeverity"`
	DependencyEdges   int                `json:"dependencyEdges"`
	Cycles            int                `json:"cycles"`
}
