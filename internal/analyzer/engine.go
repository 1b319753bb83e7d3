package analyzer

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Engine turns a set of source files into a queryable Snapshot. It holds no
// snapshot state itself; Analyze returns the snapshot and every query runs
// against that value, so concurrent analyze/query races cannot observe a
// half-built model.
type Engine struct {
	parser Parser
	rules  []Rule
}

// NewEngine creates an Engine with the given parser and issue rules.
func NewEngine(parser Parser, rules []Rule) *Engine {
	return &Engine{parser: parser, rules: rules}
}

// NewDefaultEngine creates an Engine with the tree-sitter parser and the
// baseline rule set at default thresholds.
func NewDefaultEngine() *Engine {
	return NewEngine(NewTreeSitterParser(), DefaultRules(DefaultThresholds()))
}

// Close releases parser resources.
func (e *Engine) Close() error {
	return e.parser.Close()
}

// Analyze builds a fresh snapshot from the given files. Files parse in
// parallel but assemble in input order, so two runs over the same input
// yield identical snapshots. A file that fails to parse contributes zero
// entities plus a recorded issue; only invalid input or a broken internal
// invariant fails the whole call.
func (e *Engine) Analyze(ctx context.Context, inputs []FileInput) (*Snapshot, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: files are required", ErrInvalidInput)
	}
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if in.Path == "" {
			return nil, fmt.Errorf("%w: file path must not be empty", ErrInvalidInput)
		}
		if seen[in.Path] {
			return nil, fmt.Errorf("%w: duplicate file path %q", ErrInvalidInput, in.Path)
		}
		seen[in.Path] = true
	}

	results := make([]*ParseResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, in := range inputs {
		g.Go(func() error {
			res, err := e.parseOne(gctx, in)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.assemble(results)
}

// parseOne analyzes a single input, absorbing per-file failures into the
// file's issue list. Only internal parser errors propagate.
func (e *Engine) parseOne(ctx context.Context, in FileInput) (*ParseResult, error) {
	source := []byte(in.Content)
	file := SourceFile{Path: in.Path, LOC: countLOC(source)}

	lang, ok := DetectLanguage(in.Path)
	if !ok {
		file.Issues = append(file.Issues, Issue{
			Severity: SeverityInfo,
			Rule:     "unsupported-language",
			Message:  fmt.Sprintf("no parser for %s; file skipped", in.Path),
			File:     in.Path,
			Line:     1,
		})
		return &ParseResult{File: file}, nil
	}
	file.Language = lang

	res, err := e.parser.Parse(ctx, in.Path, source, lang)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			file.Issues = append(file.Issues, Issue{
				Severity: SeverityError,
				Rule:     "parse-error",
				Message:  perr.Reason,
				File:     in.Path,
				Line:     1,
			})
			return &ParseResult{File: file}, nil
		}
		return nil, fmt.Errorf("parse %s: %w", in.Path, err)
	}
	return res, nil
}

// assemble builds the snapshot from per-file results in input order.
func (e *Engine) assemble(results []*ParseResult) (*Snapshot, error) {
	snap := &Snapshot{}
	var calls []CallSite

	for _, res := range results {
		file := res.File
		for _, ent := range res.Entities {
			file.Entities = append(file.Entities, ent.Ref())
			snap.Entities = append(snap.Entities, ent)
		}
		snap.Files = append(snap.Files, file)
		calls = append(calls, res.Calls...)
	}

	// Rules run after the entity slice is final so issue refs stay stable.
	for i := range snap.Entities {
		ent := &snap.Entities[i]
		for _, rule := range e.rules {
			ent.Issues = append(ent.Issues, rule.Check(ent)...)
		}
	}

	snap.index = indexEntities(snap.Entities)

	edges, err := buildCallGraph(calls, snap.index)
	if err != nil {
		return nil, err
	}
	snap.CallEdges = edges

	snap.Graph = buildDependencyGraph(snap.Files)
	snap.summary = computeSummary(snap)
	return snap, nil
}
