package analyzer

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Snapshot is the complete, immutable-once-built result of one Analyze
// call: files, entities, call edges, and the dependency graph. All query
// methods are read-only and safe for concurrent use; re-analysis produces a
// fresh snapshot instead of mutating this one.
type Snapshot struct {
	Files     []SourceFile     `json:"files"`
	Entities  []Entity         `json:"entities"` // snapshot-insertion order
	CallEdges []CallEdge       `json:"callEdges"`
	Graph     *DependencyGraph `json:"dependencyGraph"`

	summary Summary
	index   *entityIndex
}

// SearchEntities matches pattern against entity qualified names,
// case-insensitively. Patterns containing glob metacharacters use doublestar
// glob semantics; anything else is a substring match, and the empty pattern
// matches every entity. A non-empty kind narrows results. Matches come back
// in snapshot-insertion order.
func (s *Snapshot) SearchEntities(pattern string, kind EntityKind) []Entity {
	lower := strings.ToLower(pattern)
	isGlob := strings.ContainsAny(pattern, "*?[{")

	var out []Entity
	for _, e := range s.Entities {
		if kind != "" && e.Kind != kind {
			continue
		}
		name := strings.ToLower(e.Name)
		if isGlob {
			if ok, err := doublestar.Match(lower, name); err != nil || !ok {
				continue
			}
		} else if !strings.Contains(name, lower) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Entity returns the entity with the given qualified name, or nil when none
// exists. When the name collides across files the first entity in snapshot
// order wins. The ambiguity is surfaced to callers, never silently merged.
func (s *Snapshot) Entity(name string) *Entity {
	matches := s.index.byName[name]
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

// FindCallers returns every call edge whose resolved-or-raw callee name
// equals name. A non-empty file narrows to callers located in that file
// (the filter applies to the caller's file, not the callee's).
func (s *Snapshot) FindCallers(name, file string) []CallEdge {
	var out []CallEdge
	for _, e := range s.CallEdges {
		if e.Callee.Name != name && (e.Callee.Entity == nil || e.Callee.Entity.Name != name) {
			continue
		}
		if file != "" && e.Caller.File != file {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FindCallees returns every call edge whose caller's qualified name equals
// name.
func (s *Snapshot) FindCallees(name string) []CallEdge {
	var out []CallEdge
	for _, e := range s.CallEdges {
		if e.Caller.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Dependents returns the files that depend on path.
func (s *Snapshot) Dependents(path string) []string {
	return s.Graph.Dependents(path)
}

// Dependencies returns the edges originating from path.
func (s *Snapshot) Dependencies(path string) []DependencyEdge {
	return s.Graph.Dependencies(path)
}

// Cycles returns every distinct circular dependency chain.
func (s *Snapshot) Cycles() [][]string {
	return s.Graph.Cycles()
}

// Summary returns the aggregate counts computed when the snapshot was built.
func (s *Snapshot) Summary() Summary {
	return s.summary
}

// computeSummary aggregates counts over a fully built snapshot.
func computeSummary(s *Snapshot) Summary {
	sum := Summary{
		TotalFiles:       len(s.Files),
		TotalEntities:    len(s.Entities),
		EntitiesByKind:   make(map[EntityKind]int),
		IssuesBySeverity: make(map[Severity]int),
		DependencyEdges:  len(s.Graph.Edges),
		Cycles:           len(s.Graph.Cycles()),
	}

	totalComplexity := 0
	scored := 0
	for i := range s.Entities {
		e := &s.Entities[i]
		sum.EntitiesByKind[e.Kind]++
		if e.Kind.IsFunctionLike() {
			totalComplexity += e.Complexity
			scored++
		}
		for _, iss := range e.Issues {
			sum.IssuesBySeverity[iss.Severity]++
		}
	}
	for _, f := range s.Files {
		for _, iss := range f.Issues {
			sum.IssuesBySeverity[iss.Severity]++
		}
	}

	if scored > 0 {
		sum.AverageComplexity = float64(totalComplexity) / float64(scored)
	}
	return sum
}
