package analyzer

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// findEntity returns the first entity whose qualified name matches, or nil.
func findEntity(entities []Entity, name string) *Entity {
	for i := range entities {
		if entities[i].Name == name {
			return &entities[i]
		}
	}
	return nil
}

// findCallTo returns the first call site with the given callee text, or nil.
func findCallTo(calls []CallSite, callee string) *CallSite {
	for i := range calls {
		if calls[i].Callee == callee {
			return &calls[i]
		}
	}
	return nil
}

// readFixture reads a test fixture file relative to the project root.
// Tests run from internal/analyzer/, so the relative path is ../../testdata/...
func readFixture(t *testing.T, relPath string) []byte {
	t.Helper()
	data, err := os.ReadFile("../../" + relPath)
	require.NoError(t, err, "reading fixture %s", relPath)
	return data
}

// assertRange checks that an entity's source range is populated and 1-based.
func assertRange(t *testing.T, e *Entity) {
	t.Helper()
	assert.Greater(t, e.Range.StartLine, 0, "StartLine should be > 0 for %s", e.Name)
	assert.Greater(t, e.Range.EndLine, 0, "EndLine should be > 0 for %s", e.Name)
	assert.LessOrEqual(t, e.Range.StartLine, e.Range.EndLine, "StartLine <= EndLine for %s", e.Name)
	assert.Greater(t, e.Range.StartCol, 0, "StartCol should be > 0 for %s", e.Name)
}

// ---------------------------------------------------------------------------
// TestTreeSitterParser_SupportedLanguages
// ---------------------------------------------------------------------------

func TestTreeSitterParser_SupportedLanguages(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	langs := p.SupportedLanguages()
	assert.Len(t, langs, 4, "should support exactly 4 languages")

	langSet := make(map[Language]bool, len(langs))
	for _, l := range langs {
		langSet[l] = true
	}
	assert.True(t, langSet[LangGo], "should support Go")
	assert.True(t, langSet[LangTypeScript], "should support TypeScript")
	assert.True(t, langSet[LangPython], "should support Python")
	assert.True(t, langSet[LangRust], "should support Rust")
}

// ---------------------------------------------------------------------------
// TestDetectLanguage
// ---------------------------------------------------------------------------

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
		ok   bool
	}{
		{"src/app.ts", LangTypeScript, true},
		{"src/app.tsx", LangTypeScript, true},
		{"lib/index.js", LangTypeScript, true},
		{"cmd/main.go", LangGo, true},
		{"pkg/models.py", LangPython, true},
		{"src/lib.rs", LangRust, true},
		{"README.md", "", false},
		{"Makefile", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, ok := DetectLanguage(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, lang)
		})
	}
}

// ---------------------------------------------------------------------------
// TestTreeSitterParser_SyntaxError
// ---------------------------------------------------------------------------

func TestTreeSitterParser_SyntaxError(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	_, err := p.Parse(context.Background(), "broken.ts", []byte("function ( {{{"), LangTypeScript)
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr), "error should be a *ParseError")
	assert.Equal(t, "broken.ts", perr.Path)
}

func TestTreeSitterParser_UnknownLanguage(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	_, err := p.Parse(context.Background(), "x.rb", []byte("puts 1"), Language("ruby"))
	require.Error(t, err)

	var perr *ParseError
	assert.False(t, errors.As(err, &perr), "unknown language is not a per-file parse failure")
}

// ---------------------------------------------------------------------------
// TestCountLOC
// ---------------------------------------------------------------------------

func TestCountLOC(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"empty", "", 0},
		{"single line no newline", "let x = 1;", 1},
		{"trailing newline adds the final empty line", "let x = 1;\n", 2},
		{"three lines", "a\nb\nc", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countLOC([]byte(tt.source)))
		})
	}
}
