package analyzer

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// pyExtractor extracts entities, call sites, and imports from Python source
// files.
type pyExtractor struct{}

func (e *pyExtractor) Extract(root *tree_sitter.Node, source []byte, filePath string) ([]Entity, []CallSite, []ImportStmt) {
	w := &pyWalker{source: source, file: filePath}
	w.walk(root, nil)
	return w.entities, w.calls, w.imports
}

type pyWalker struct {
	source   []byte
	file     string
	entities []Entity
	calls    []CallSite
	imports  []ImportStmt
}

func (w *pyWalker) text(n *tree_sitter.Node) string {
	return n.Utf8Text(w.source)
}

func (w *pyWalker) walk(node *tree_sitter.Node, scope *EntityRef) {
	switch node.Kind() {
	case "function_definition":
		if ref := w.addFunction(node, "", EntityKindFunction); ref != nil {
			if body := node.ChildByFieldName("body"); body != nil {
				w.walkChildren(body, ref)
			}
			return
		}

	case "class_definition":
		w.addClass(node)
		return

	case "expression_statement":
		if w.isModuleLevel(node) {
			w.addAssignment(node)
		}

	case "import_statement":
		w.addImport(node)
		return

	case "import_from_statement":
		w.addImportFrom(node)
		return

	case "call":
		w.addCall(node, scope)
	}

	w.walkChildren(node, scope)
}

func (w *pyWalker) walkChildren(node *tree_sitter.Node, scope *EntityRef) {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			w.walk(child, scope)
		}
	}
}

// isModuleLevel reports whether a statement sits directly in the module,
// possibly behind a decorated_definition wrapper.
func (w *pyWalker) isModuleLevel(node *tree_sitter.Node) bool {
	parent := node.Parent()
	return parent != nil && parent.Kind() == "module"
}

func (w *pyWalker) addFunction(node *tree_sitter.Node, qualifier string, kind EntityKind) *EntityRef {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := w.text(nameNode)
	exported := !strings.HasPrefix(name, "_")
	if qualifier != "" {
		name = qualifier + "." + name
	}

	complexity := 1
	if body := node.ChildByFieldName("body"); body != nil {
		complexity = cyclomaticComplexity(body, LangPython)
	}

	ent := Entity{
		Name:       name,
		Kind:       kind,
		File:       w.file,
		Range:      nodeRange(node),
		Signature:  w.signature(node),
		Exported:   exported,
		Complexity: complexity,
		BodyLines:  lineSpan(node),
	}
	w.entities = append(w.entities, ent)
	ref := ent.Ref()
	return &ref
}

// addClass records the class entity plus one method entity per function
// definition in its body, named "ClassName.methodName". Decorated methods
// are unwrapped.
func (w *pyWalker) addClass(node *tree_sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	className := w.text(nameNode)

	w.entities = append(w.entities, Entity{
		Name:      className,
		Kind:      EntityKindClass,
		File:      w.file,
		Range:     nodeRange(node),
		Exported:  !strings.HasPrefix(className, "_"),
		BodyLines: lineSpan(node),
	})

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil {
			continue
		}
		if child.Kind() == "decorated_definition" {
			if def := child.ChildByFieldName("definition"); def != nil {
				child = def
			}
		}
		if child.Kind() != "function_definition" {
			continue
		}
		if ref := w.addFunction(child, className, EntityKindMethod); ref != nil {
			if mbody := child.ChildByFieldName("body"); mbody != nil {
				w.walkChildren(mbody, ref)
			}
		}
	}
}

// addAssignment records a module-level "name = value" as a variable entity.
func (w *pyWalker) addAssignment(node *tree_sitter.Node) {
	for i := uint(0); i < node.ChildCount(); i++ {
		assign := node.Child(i)
		if assign == nil || assign.Kind() != "assignment" {
			continue
		}
		left := assign.ChildByFieldName("left")
		if left == nil || left.Kind() != "identifier" {
			continue
		}
		name := w.text(left)
		w.entities = append(w.entities, Entity{
			Name:      name,
			Kind:      EntityKindVariable,
			File:      w.file,
			Range:     nodeRange(assign),
			Exported:  !strings.HasPrefix(name, "_"),
			BodyLines: lineSpan(assign),
		})
	}
}

// addImport handles "import a.b, c" with one statement per imported module.
func (w *pyWalker) addImport(node *tree_sitter.Node) {
	line := int(node.StartPosition().Row) + 1
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		var module string
		switch child.Kind() {
		case "dotted_name":
			module = w.text(child)
		case "aliased_import":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				module = w.text(nameNode)
			}
		}
		if module == "" {
			continue
		}
		w.imports = append(w.imports, ImportStmt{
			Specifier: module,
			Names:     []string{module},
			Kind:      ImportKindStatic,
			Line:      line,
		})
	}
}

// addImportFrom handles "from .mod import a, b" with the module (including
// leading dots for relative imports) as the specifier.
func (w *pyWalker) addImportFrom(node *tree_sitter.Node) {
	moduleNode := node.ChildByFieldName("module_name")
	if moduleNode == nil {
		return
	}
	module := w.text(moduleNode)

	var names []string
	sawModule := false
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		if !sawModule {
			// Children up to and including the module node are part of the
			// "from X" clause, not the import list.
			if child.Kind() == "dotted_name" || child.Kind() == "relative_import" {
				sawModule = true
			}
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			names = append(names, w.text(child))
		case "aliased_import":
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				names = append(names, w.text(nameNode))
			}
		case "wildcard_import":
			names = append(names, "*")
		}
	}

	w.imports = append(w.imports, ImportStmt{
		Specifier: module,
		Names:     names,
		Kind:      ImportKindStatic,
		Line:      int(node.StartPosition().Row) + 1,
	})
}

func (w *pyWalker) addCall(node *tree_sitter.Node, scope *EntityRef) {
	if scope == nil {
		return
	}
	fnNode := node.ChildByFieldName("function")
	if fnNode == nil {
		return
	}

	var callee string
	switch fnNode.Kind() {
	case "identifier", "attribute":
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

func (w *pyWalker) signature(node *tree_sitter.Node) Signature {
	var sig Signature

	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.ChildCount(); i++ {
			child := params.Child(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "identifier":
				sig.Params = append(sig.Params, w.text(child))
			case "typed_parameter", "default_parameter", "typed_default_parameter":
				for j := uint(0); j < child.ChildCount(); j++ {
					inner := child.Child(j)
					if inner != nil && inner.Kind() == "identifier" {
						sig.Params = append(sig.Params, w.text(inner))
						break
					}
				}
			}
		}
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig.Return = w.text(ret)
	}

	sig.ParamCount = len(sig.Params)
	return sig
}
