package analyzer

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for the engine boundary. Callers distinguish outcomes with
// errors.Is; the transport layer maps them onto status signals.
var (
	// ErrInvalidInput marks a missing or malformed required argument,
	// rejected before any state is built.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal marks a broken internal invariant (e.g. a call edge whose
	// caller is absent from the snapshot). Never absorbed into results.
	ErrInternal = errors.New("internal invariant violation")
)

// ParseError reports that a single file's text could not be parsed. It is
// isolated per file: the engine records it as a file-level issue and keeps
// analyzing the rest of the batch.
type ParseError struct {
	Path   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
}

// CallSite is one call expression found inside an entity body, before
// resolution against the snapshot.
type CallSite struct {
	Caller EntityRef `json:"caller"`
	Callee string    `json:"callee"`
	Site   Range     `json:"site"`
}

// ParseResult holds everything extracted from a single file.
type ParseResult struct {
	File     SourceFile   `json:"file"`
	Entities []Entity     `json:"entities"`
	Calls    []CallSite   `json:"calls,omitempty"`
	Imports  []ImportStmt `json:"imports,omitempty"`
}

// Parser turns raw file text into extracted entities, call sites, and
// import/export statements. Implementations: TreeSitterParser (production),
// stub parsers in tests.
type Parser interface {
	// Parse extracts declarations from a single source file. source is the
	// file content; lang selects the grammar. A *ParseError return means the
	// file is malformed; any other error is an internal failure.
	Parse(ctx context.Context, path string, source []byte, lang Language) (*ParseResult, error)

	// SupportedLanguages returns the languages this parser can handle.
	SupportedLanguages() []Language

	// Close releases parser resources (tree-sitter C memory).
	Close() error
}
