package analyzer

import "fmt"

// Rule inspects one extracted entity and returns zero or more issues. Rules
// are independent and additive; evaluation order never affects results, and
// a rule that does not apply to an entity's kind returns nothing.
type Rule interface {
	Name() string
	Check(e *Entity) []Issue
}

// Thresholds carries the tunable limits for the baseline rules.
type Thresholds struct {
	Complexity       int
	MaxParams        int
	MaxFunctionLines int
	MaxClassLines    int
}

// DefaultThresholds returns the baseline limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Complexity:       10,
		MaxParams:        5,
		MaxFunctionLines: 60,
		MaxClassLines:    300,
	}
}

// DefaultRules returns the baseline rule set: high complexity, too many
// parameters, and long body.
func DefaultRules(t Thresholds) []Rule {
	return []Rule{
		&complexityRule{limit: t.Complexity},
		&paramCountRule{limit: t.MaxParams},
		&longBodyRule{functionLimit: t.MaxFunctionLines, classLimit: t.MaxClassLines},
	}
}

// complexityRule warns when a function-like entity exceeds the complexity
// limit.
type complexityRule struct {
	limit int
}

func (r *complexityRule) Name() string { return "high-complexity" }

func (r *complexityRule) Check(e *Entity) []Issue {
	if !e.Kind.IsFunctionLike() || e.Complexity <= r.limit {
		return nil
	}
	ref := e.Ref()
	return []Issue{{
		Entity:   &ref,
		Severity: SeverityWarning,
		Rule:     r.Name(),
		Message:  fmt.Sprintf("high complexity: %d (limit %d)", e.Complexity, r.limit),
		File:     e.File,
		Line:     e.Range.StartLine,
	}}
}

// paramCountRule flags function-like entities with too many parameters.
type paramCountRule struct {
	limit int
}

func (r *paramCountRule) Name() string { return "too-many-parameters" }

func (r *paramCountRule) Check(e *Entity) []Issue {
	if !e.Kind.IsFunctionLike() || e.Signature.ParamCount <= r.limit {
		return nil
	}
	ref := e.Ref()
	return []Issue{{
		Entity:   &ref,
		Severity: SeverityInfo,
		Rule:     r.Name(),
		Message:  fmt.Sprintf("too many parameters: %d (limit %d)", e.Signature.ParamCount, r.limit),
		File:     e.File,
		Line:     e.Range.StartLine,
	}}
}

// longBodyRule flags entities whose line span exceeds the limit for their
// kind. Functions and methods use functionLimit; classes use classLimit.
type longBodyRule struct {
	functionLimit int
	classLimit    int
}

func (r *longBodyRule) Name() string { return "long-body" }

func (r *longBodyRule) Check(e *Entity) []Issue {
	var limit int
	var what string
	switch {
	case e.Kind.IsFunctionLike():
		limit, what = r.functionLimit, "function"
	case e.Kind == EntityKindClass:
		limit, what = r.classLimit, "class"
	default:
		return nil
	}
	if e.BodyLines <= limit {
		return nil
	}
	ref := e.Ref()
	return []Issue{{
		Entity:   &ref,
		Severity: SeverityInfo,
		Rule:     r.Name(),
		Message:  fmt.Sprintf("long %s: %d lines (limit %d)", what, e.BodyLines, limit),
		File:     e.File,
		Line:     e.Range.StartLine,
	}}
}
