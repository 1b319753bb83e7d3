package analyzer

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// decisionKinds lists the node kinds that count as decision points per
// language. Each occurrence adds one to the score; "else if" chains need no
// special casing because they nest another conditional node.
var decisionKinds = map[Language]map[string]bool{
	LangTypeScript: {
		"if_statement":       true,
		"ternary_expression": true,
		"switch_case":        true,
		"catch_clause":       true,
		"for_statement":      true,
		"for_in_statement":   true,
		"while_statement":    true,
		"do_statement":       true,
	},
	LangGo: {
		"if_statement":       true,
		"for_statement":      true,
		"expression_case":    true,
		"type_case":          true,
		"communication_case": true,
	},
	LangPython: {
		"if_statement":           true,
		"elif_clause":            true,
		"conditional_expression": true,
		"for_statement":          true,
		"while_statement":        true,
		"except_clause":          true,
		"case_clause":            true,
	},
	LangRust: {
		"if_expression":    true,
		"match_arm":        true,
		"for_expression":   true,
		"while_expression": true,
		"loop_expression":  true,
	},
}

// logicalOps lists short-circuit operators that count as decision points.
// Keys are the kinds of the operator node in a binary expression.
var logicalOps = map[Language]map[string]bool{
	LangTypeScript: {"&&": true, "||": true, "??": true},
	LangGo:         {"&&": true, "||": true},
	LangPython:     {"and": true, "or": true},
	LangRust:       {"&&": true, "||": true},
}

// cyclomaticComplexity scores the subtree rooted at body: base 1 plus one
// per decision point. The score is purely structural and never inlines
// called functions.
func cyclomaticComplexity(body *tree_sitter.Node, lang Language) int {
	score := 1
	decisions := decisionKinds[lang]
	logical := logicalOps[lang]
	walkComplexity(body, decisions, logical, &score)
	return score
}

func walkComplexity(node *tree_sitter.Node, decisions, logical map[string]bool, score *int) {
	kind := node.Kind()

	switch {
	case decisions[kind]:
		*score++
	case kind == "binary_expression" || kind == "boolean_operator":
		if op := node.ChildByFieldName("operator"); op != nil && logical[op.Kind()] {
			*score++
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil {
			walkComplexity(child, decisions, logical, score)
		}
	}
}
