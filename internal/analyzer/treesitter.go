package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// extractor walks a parsed syntax tree and emits entities, call sites, and
// import statements for one file.
type extractor interface {
	Extract(root *tree_sitter.Node, source []byte, filePath string) ([]Entity, []CallSite, []ImportStmt)
}

// TreeSitterParser implements the Parser interface using tree-sitter
// grammars. A new tree-sitter parser is created per Parse call, so this type
// is safe for sequential use and individual Parse calls may run in parallel.
type TreeSitterParser struct {
	languages  map[Language]*tree_sitter.Language
	extractors map[Language]extractor
}

// NewTreeSitterParser creates a TreeSitterParser with TypeScript, Go,
// Python, and Rust grammars registered.
func NewTreeSitterParser() *TreeSitterParser {
	langs := map[Language]*tree_sitter.Language{
		LangTypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
		LangGo:         tree_sitter.NewLanguage(tree_sitter_go.Language()),
		LangPython:     tree_sitter.NewLanguage(tree_sitter_python.Language()),
		LangRust:       tree_sitter.NewLanguage(tree_sitter_rust.Language()),
	}

	extractors := map[Language]extractor{
		LangTypeScript: &tsExtractor{},
		LangGo:         &goExtractor{},
		LangPython:     &pyExtractor{},
		LangRust:       &rsExtractor{},
	}

	return &TreeSitterParser{
		languages:  langs,
		extractors: extractors,
	}
}

// Parse extracts entities, call sites, and imports from a single source
// file. A tree containing syntax errors yields a *ParseError so the caller
// can record the failure without aborting the batch.
func (p *TreeSitterParser) Parse(_ context.Context, path string, source []byte, lang Language) (*ParseResult, error) {
	tsLang, ok := p.languages[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}

	ext, ok := p.extractors[lang]
	if !ok {
		return nil, fmt.Errorf("no extractor for language: %s", lang)
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tsLang); err != nil {
		return nil, fmt.Errorf("set language %s: %w", lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned nil tree for %s", path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, &ParseError{Path: path, Reason: "syntax error"}
	}

	entities, calls, imports := ext.Extract(root, source, path)

	return &ParseResult{
		File: SourceFile{
			Path:     path,
			Language: lang,
			LOC:      countLOC(source),
			Imports:  imports,
		},
		Entities: entities,
		Calls:    calls,
		Imports:  imports,
	}, nil
}

// SupportedLanguages returns the languages this parser can handle.
func (p *TreeSitterParser) SupportedLanguages() []Language {
	langs := make([]Language, 0, len(p.languages))
	for l := range p.languages {
		langs = append(langs, l)
	}
	return langs
}

// Close is a no-op because parsers are created per Parse call.
func (p *TreeSitterParser) Close() error {
	return nil
}

// extToLanguage maps file extensions to a Language.
var extToLanguage = map[string]Language{
	".ts":  LangTypeScript,
	".tsx": LangTypeScript,
	".js":  LangTypeScript,
	".jsx": LangTypeScript,
	".go":  LangGo,
	".py":  LangPython,
	".rs":  LangRust,
}

// DetectLanguage returns the Language for a file path based on its
// extension. The TypeScript grammar also covers plain JavaScript sources.
func DetectLanguage(path string) (Language, bool) {
	lang, ok := extToLanguage[filepath.Ext(path)]
	return lang, ok
}

// nodeRange converts tree-sitter's 0-based positions to a 1-based Range.
func nodeRange(n *tree_sitter.Node) Range {
	start := n.StartPosition()
	end := n.EndPosition()
	return Range{
		StartLine: int(start.Row) + 1,
		StartCol:  int(start.Column) + 1,
		EndLine:   int(end.Row) + 1,
		EndCol:    int(end.Column) + 1,
	}
}

// lineSpan returns the number of source lines a node covers.
func lineSpan(n *tree_sitter.Node) int {
	return int(n.EndPosition().Row) - int(n.StartPosition().Row) + 1
}

// countLOC counts the number of lines in source by counting newline bytes
// and adding one for the final line if the source is non-empty.
func countLOC(source []byte) int {
	if len(source) == 0 {
		return 0
	}
	return bytes.Count(source, []byte{'\n'}) + 1
}
