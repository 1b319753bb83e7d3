package analyzer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// goExtractor extracts entities, call sites, and imports from Go source files.
type goExtractor struct{}

func (e *goExtractor) Extract(root *tree_sitter.Node, source []byte, filePath string) ([]Entity, []CallSite, []ImportStmt) {
	w := &goWalker{source: source, file: filePath}
	w.walk(root, nil)
	return w.entities, w.calls, w.imports
}

type goWalker struct {
	source   []byte
	file     string
	entities []Entity
	calls    []CallSite
	imports  []ImportStmt
}

func (w *goWalker) text(n *tree_sitter.Node) string {
	return n.Utf8Text(w.source)
}

func (w *goWalker) walk(node *tree_sitter.Node, scope *EntityRef) {
	switch node.Kind() {
	case "function_declaration":
		if ref := w.addFunction(node, "", EntityKindFunction); ref != nil {
			if body := node.ChildByFieldName("body"); body != nil {
				w.walkChildren(body, ref)
			}
			return
		}

	case "method_declaration":
		if ref := w.addFunction(node, w.receiverType(node), EntityKindMethod); ref != nil {
			if body := node.ChildByFieldName("body"); body != nil {
				w.walkChildren(body, ref)
			}
			return
		}

	case "type_declaration":
		w.addTypes(node)
		return

	case "var_declaration", "const_declaration":
		if parent := node.Parent(); parent != nil && parent.Kind() == "source_file" {
			w.addVariables(node)
			return
		}

	case "import_spec":
		w.addImport(node)
		return

	case "call_expression":
		w.addCall(node, scope)
	}

	w.walkChildren(node, scope)
}

func (w *goWalker) walkChildren(node *tree_sitter.Node, scope *EntityRef) {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			w.walk(child, scope)
		}
	}
}

func (w *goWalker) addFunction(node *tree_sitter.Node, qualifier string, kind EntityKind) *EntityRef {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := w.text(nameNode)
	exported := isGoExported(name)
	if qualifier != "" {
		name = qualifier + "." + name
	}

	complexity := 1
	if body := node.ChildByFieldName("body"); body != nil {
		complexity = cyclomaticComplexity(body, LangGo)
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

// receiverType returns the bare receiver type name, stripping pointers and
// type parameters: "*Server" and "Cache[K]" both yield their identifier.
func (w *goWalker) receiverType(node *tree_sitter.Node) string {
	receiver := node.ChildByFieldName("receiver")
	if receiver == nil {
		return ""
	}
	for i := uint(0); i < receiver.ChildCount(); i++ {
		child := receiver.Child(i)
		if child == nil || child.Kind() != "parameter_declaration" {
			continue
		}
		typeNode := child.ChildByFieldName("type")
		if typeNode == nil {
			continue
		}
		typ := strings.TrimLeft(w.text(typeNode), "*")
		if idx := strings.IndexByte(typ, '['); idx != -1 {
			typ = typ[:idx]
		}
		return typ
	}
	return ""
}

// addTypes records one entity per type_spec: interfaces keep their own kind,
// everything else (structs, aliases, named types) is a type entity.
func (w *goWalker) addTypes(node *tree_sitter.Node) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || (child.Kind() != "type_spec" && child.Kind() != "type_alias") {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := w.text(nameNode)

		kind := EntityKindType
		if typeNode := child.ChildByFieldName("type"); typeNode != nil && typeNode.Kind() == "interface_type" {
			kind = EntityKindInterface
		}

		w.entities = append(w.entities, Entity{
			Name:      name,
			Kind:      kind,
			File:      w.file,
			Range:     nodeRange(child),
			Exported:  isGoExported(name),
			BodyLines: lineSpan(child),
		})
	}
}

// addVariables records top-level var/const specs. Identifier children of a
// spec are the declared names; values live under expression_list.
func (w *goWalker) addVariables(node *tree_sitter.Node) {
	for i := uint(0); i < node.ChildCount(); i++ {
		spec := node.Child(i)
		if spec == nil || (spec.Kind() != "var_spec" && spec.Kind() != "const_spec") {
			continue
		}
		for j := uint(0); j < spec.ChildCount(); j++ {
			child := spec.Child(j)
			if child == nil || child.Kind() != "identifier" {
				continue
			}
			name := w.text(child)
			w.entities = append(w.entities, Entity{
				Name:      name,
				Kind:      EntityKindVariable,
				File:      w.file,
				Range:     nodeRange(spec),
				Exported:  isGoExported(name),
				BodyLines: lineSpan(spec),
			})
		}
	}
}

func (w *goWalker) addImport(node *tree_sitter.Node) {
	pathNode := node.ChildByFieldName("path")
	if pathNode == nil {
		return
	}
	importPath := strings.Trim(w.text(pathNode), "\"")
	if importPath == "" {
		return
	}
	w.imports = append(w.imports, ImportStmt{
		Specifier: importPath,
		Kind:      ImportKindStatic,
		Line:      int(node.StartPosition().Row) + 1,
	})
}

func (w *goWalker) addCall(node *tree_sitter.Node, scope *EntityRef) {
	if scope == nil {
		return
	}
	fnNode := node.ChildByFieldName("function")
	if fnNode == nil {
		return
	}

	var callee string
	switch fnNode.Kind() {
	case "identifier", "selector_expression":
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

func (w *goWalker) signature(node *tree_sitter.Node) Signature {
	var sig Signature

	if params := node.ChildByFieldName("parameters"); params != nil {
		for i := uint(0); i < params.ChildCount(); i++ {
			decl := params.Child(i)
			if decl == nil {
				continue
			}
			switch decl.Kind() {
			case "parameter_declaration", "variadic_parameter_declaration":
				named := false
				for j := uint(0); j < decl.ChildCount(); j++ {
					child := decl.Child(j)
					if child != nil && child.Kind() == "identifier" {
						sig.Params = append(sig.Params, w.text(child))
						named = true
					}
				}
				if !named {
					// Unnamed parameter, keep the type text as a placeholder.
					sig.Params = append(sig.Params, w.text(decl))
				}
			}
		}
	}

	if result := node.ChildByFieldName("result"); result != nil {
		sig.Return = w.text(result)
	}

	sig.ParamCount = len(sig.Params)
	return sig
}

// isGoExported returns true if the first rune of name is an uppercase letter.
func isGoExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
