package analyzer

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// rsExtractor extracts entities, call sites, and imports from Rust source
// files.
type rsExtractor struct{}

func (e *rsExtractor) Extract(root *tree_sitter.Node, source []byte, filePath string) ([]Entity, []CallSite, []ImportStmt) {
	w := &rsWalker{source: source, file: filePath}
	w.walk(root, nil)
	return w.entities, w.calls, w.imports
}

type rsWalker struct {
	source   []byte
	file     string
	entities []Entity
	calls    []CallSite
	imports  []ImportStmt
}

func (w *rsWalker) text(n *tree_sitter.Node) string {
	return n.Utf8Text(w.source)
}

func (w *rsWalker) walk(node *tree_sitter.Node, scope *EntityRef) {
	switch node.Kind() {
	case "function_item":
		if ref := w.addFunction(node, "", EntityKindFunction); ref != nil {
			if body := node.ChildByFieldName("body"); body != nil {
				w.walkChildren(body, ref)
			}
			return
		}

	case "impl_item":
		w.addImpl(node)
		return

	case "struct_item":
		w.addNamed(node, EntityKindType)
		return

	case "trait_item":
		w.addNamed(node, EntityKindInterface)
		return

	case "enum_item":
		w.addNamed(node, EntityKindEnum)
		return

	case "const_item", "static_item":
		w.addNamed(node, EntityKindVariable)
		return

	case "use_declaration":
		w.addUse(node)
		return

	case "call_expression":
		w.addCall(node, scope)
	}

	w.walkChildren(node, scope)
}

func (w *rsWalker) walkChildren(node *tree_sitter.Node, scope *EntityRef) {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			w.walk(child, scope)
		}
	}
}

func (w *rsWalker) addFunction(node *tree_sitter.Node, qualifier string, kind EntityKind) *EntityRef {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := w.text(nameNode)
	if qualifier != "" {
		name = qualifier + "." + name
	}

	complexity := 1
	if body := node.ChildByFieldName("body"); body != nil {
		complexity = cyclomaticComplexity(body, LangRust)
	}

	ent := Entity{
		Name:       name,
		Kind:       kind,
		File:       w.file,
		Range:      nodeRange(node),
		Signature:  w.signature(node),
		Exported:   isRustPub(node),
		Complexity: complexity,
		BodyLines:  lineSpan(node),
	}
	w.entities = append(w.entities, ent)
	ref := ent.Ref()
	return &ref
}

// addImpl records one method entity per function item in an impl block,
// named "TypeName.methodName" after the implemented type.
func (w *rsWalker) addImpl(node *tree_sitter.Node) {
	typeNode := node.ChildByFieldName("type")
	if typeNode == nil {
		return
	}
	typeName := w.text(typeNode)
	if idx := strings.IndexByte(typeName, '<'); idx != -1 {
		typeName = typeName[:idx]
	}

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil || child.Kind() != "function_item" {
			continue
		}
		if ref := w.addFunction(child, typeName, EntityKindMethod); ref != nil {
			if fbody := child.ChildByFieldName("body"); fbody != nil {
				w.walkChildren(fbody, ref)
			}
		}
	}
}

func (w *rsWalker) addNamed(node *tree_sitter.Node, kind EntityKind) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	w.entities = append(w.entities, Entity{
		Name:      w.text(nameNode),
		Kind:      kind,
		File:      w.file,
		Range:     nodeRange(node),
		Exported:  isRustPub(node),
		BodyLines: lineSpan(node),
	})
}

func (w *rsWalker) addUse(node *tree_sitter.Node) {
	arg := node.ChildByFieldName("argument")
	if arg == nil {
		return
	}
	specifier := w.text(arg)
	if specifier == "" {
		return
	}
	w.imports = append(w.imports, ImportStmt{
		Specifier: specifier,
		Kind:      ImportKindStatic,
		Line:      int(node.StartPosition().Row) + 1,
	})
}

func (w *rsWalker) addCall(node *tree_sitter.Node, scope *EntityRef) {
	if scope == nil {
		return
	}
	fnNode := node.ChildByFieldName("function")
	if fnNode == nil {
		return
	}

	var callee string
	switch fnNode.Kind() {
	case "identifier", "field_expression", "scoped_identifier":
		callee = w.text(fnNode)
	default:
		return
	}
	if callee == "" {
		return
	}

	w.calls = append(w.calls, CallSite{
		Caller: *scope,
		Callee: callee,
		Site:   nodeRange(node),
	})
}

func (w *rsWalker) signature(node *tree_sitter.Node) Signature {
	var sig Signature

	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.ChildCount(); i++ {
			child := params.Child(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "parameter":
				if pattern := child.ChildByFieldName("pattern"); pattern != nil {
					sig.Params = append(sig.Params, w.text(pattern))
				}
			case "self_parameter":
				sig.Params = append(sig.Params, "self")
			}
		}
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig.Return = w.text(ret)
	}

	sig.ParamCount = len(sig.Params)
	return sig
}

// isRustPub checks for a visibility_modifier child ("pub", "pub(crate)", ...).
func isRustPub(node *tree_sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == "visibility_modifier" {
			return true
		}
	}
	return false
}
