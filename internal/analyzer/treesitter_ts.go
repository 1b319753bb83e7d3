package analyzer

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// tsExtractor extracts entities, call sites, and imports from TypeScript
// (and plain JavaScript) source files.
type tsExtractor struct{}

func (e *tsExtractor) Extract(root *tree_sitter.Node, source []byte, filePath string) ([]Entity, []CallSite, []ImportStmt) {
	w := &tsWalker{source: source, file: filePath}
	w.walk(root, nil)
	return w.entities, w.calls, w.imports
}

// tsWalker carries extraction state for one file. The scope argument threaded
// through walk is the innermost function-like entity, used to attribute call
// sites to their caller.
type tsWalker struct {
	source   []byte
	file     string
	entities []Entity
	calls    []CallSite
	imports  []ImportStmt
}

func (w *tsWalker) text(n *tree_sitter.Node) string {
	return n.Utf8Text(w.source)
}

func (w *tsWalker) walk(node *tree_sitter.Node, scope *EntityRef) {
	switch node.Kind() {
	case "function_declaration", "generator_function_declaration":
		if ref := w.addFunction(node, "", EntityKindFunction, isTSExported(node)); ref != nil {
			if body := node.ChildByFieldName("body"); body != nil {
				w.walkChildren(body, ref)
			}
			return
		}

	case "class_declaration":
		w.addClass(node)
		return

	case "interface_declaration":
		w.addNamed(node, EntityKindInterface)
		return

	case "type_alias_declaration":
		w.addNamed(node, EntityKindType)
		return

	case "enum_declaration":
		w.addNamed(node, EntityKindEnum)
		return

	case "lexical_declaration", "variable_declaration":
		if isTSTopLevel(node) {
			w.addVariables(node)
			return
		}

	case "import_statement":
		w.addImport(node)
		return

	case "export_statement":
		if w.addExport(node) {
			return
		}
		// Falls through for exported declarations so they are extracted.

	case "call_expression":
		w.addCall(node, scope)
		// Keep walking: arguments may contain nested calls.
	}

	w.walkChildren(node, scope)
}

func (w *tsWalker) walkChildren(node *tree_sitter.Node, scope *EntityRef) {
	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			w.walk(child, scope)
		}
	}
}

// addFunction records a function or method entity, computing its complexity
// while the tree is live. qualifier is the class name for methods.
func (w *tsWalker) addFunction(node *tree_sitter.Node, qualifier string, kind EntityKind, exported bool) *EntityRef {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return nil
	}
	name := w.text(nameNode)
	if qualifier != "" {
		name = qualifier + "." + name
	}

	ent := Entity{
		Name:       name,
		Kind:       kind,
		File:       w.file,
		Range:      nodeRange(node),
		Signature:  w.signature(node),
		Exported:   exported,
		Complexity: w.bodyComplexity(node),
		BodyLines:  lineSpan(node),
	}
	w.entities = append(w.entities, ent)
	ref := ent.Ref()
	return &ref
}

func (w *tsWalker) bodyComplexity(node *tree_sitter.Node) int {
	body := node.ChildByFieldName("body")
	if body == nil {
		return 1
	}
	return cyclomaticComplexity(body, LangTypeScript)
}

// addClass records the class entity plus one method entity per
// method_definition, named "ClassName.methodName". Only method bodies are
// walked for call sites; field initializers are skipped.
func (w *tsWalker) addClass(node *tree_sitter.Node) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	className := w.text(nameNode)
	exported := isTSExported(node)

	w.entities = append(w.entities, Entity{
		Name:      className,
		Kind:      EntityKindClass,
		File:      w.file,
		Range:     nodeRange(node),
		Exported:  exported,
		BodyLines: lineSpan(node),
	})

	body := node.ChildByFieldName("body")
	if body == nil {
		return
	}

	for i := uint(0); i < body.ChildCount(); i++ {
		child := body.Child(i)
		if child == nil || child.Kind() != "method_definition" {
			continue
		}
		if ref := w.addFunction(child, className, EntityKindMethod, exported); ref != nil {
			if mbody := child.ChildByFieldName("body"); mbody != nil {
				w.walkChildren(mbody, ref)
			}
		}
	}
}

// addNamed records a bodiless entity (interface, type alias, enum).
func (w *tsWalker) addNamed(node *tree_sitter.Node, kind EntityKind) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	w.entities = append(w.entities, Entity{
		Name:      w.text(nameNode),
		Kind:      kind,
		File:      w.file,
		Range:     nodeRange(node),
		Exported:  isTSExported(node),
		BodyLines: lineSpan(node),
	})
}

// addVariables handles top-level const/let/var declarations. A declarator
// whose value is an arrow function or function expression becomes a function
// entity; anything else becomes a variable entity.
func (w *tsWalker) addVariables(node *tree_sitter.Node) {
	exported := isTSExported(node)

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child == nil || child.Kind() != "variable_declarator" {
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil || nameNode.Kind() != "identifier" {
			continue
		}
		name := w.text(nameNode)

		value := child.ChildByFieldName("value")
		if value != nil && isTSFunctionValue(value.Kind()) {
			ent := Entity{
				Name:       name,
				Kind:       EntityKindFunction,
				File:       w.file,
				Range:      nodeRange(child),
				Signature:  w.signature(value),
				Exported:   exported,
				Complexity: cyclomaticComplexity(value, LangTypeScript),
				BodyLines:  lineSpan(child),
			}
			w.entities = append(w.entities, ent)
			ref := ent.Ref()
			if body := value.ChildByFieldName("body"); body != nil {
				w.walkChildren(body, &ref)
			}
			continue
		}

		w.entities = append(w.entities, Entity{
			Name:      name,
			Kind:      EntityKindVariable,
			File:      w.file,
			Range:     nodeRange(child),
			Exported:  exported,
			BodyLines: lineSpan(child),
		})
	}
}

func isTSFunctionValue(kind string) bool {
	switch kind {
	case "arrow_function", "function_expression", "function", "generator_function":
		return true
	}
	return false
}

func (w *tsWalker) addImport(node *tree_sitter.Node) {
	sourceNode := node.ChildByFieldName("source")
	if sourceNode == nil {
		return
	}
	specifier := strings.Trim(w.text(sourceNode), "\"'`")
	if specifier == "" {
		return
	}

	w.imports = append(w.imports, ImportStmt{
		Specifier: specifier,
		Names:     w.importedNames(node),
		Kind:      ImportKindStatic,
		Line:      int(node.StartPosition().Row) + 1,
	})
}

// importedNames collects bound names from an import clause: the default
// import, named imports, and namespace imports.
func (w *tsWalker) importedNames(node *tree_sitter.Node) []string {
	var names []string
	var collect func(n *tree_sitter.Node)
	collect = func(n *tree_sitter.Node) {
		switch n.Kind() {
		case "identifier":
			names = append(names, w.text(n))
			return
		case "import_specifier", "export_specifier":
			if nameNode := n.ChildByFieldName("name"); nameNode != nil {
				names = append(names, w.text(nameNode))
			}
			return
		case "string":
			return
		}
		for i := uint(0); i < n.ChildCount(); i++ {
			if child := n.Child(i); child != nil {
				collect(child)
			}
		}
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && (child.Kind() == "import_clause" || child.Kind() == "export_clause") {
			collect(child)
		}
	}
	return names
}

// addExport records re-exports ("export ... from 'mod'") and local export
// clauses ("export { a, b }"). Returns true when the statement was fully
// handled; exported declarations return false so the walker extracts them.
func (w *tsWalker) addExport(node *tree_sitter.Node) bool {
	line := int(node.StartPosition().Row) + 1

	if sourceNode := node.ChildByFieldName("source"); sourceNode != nil {
		specifier := strings.Trim(w.text(sourceNode), "\"'`")
		if specifier == "" {
			return true
		}
		w.imports = append(w.imports, ImportStmt{
			Specifier: specifier,
			Names:     w.importedNames(node),
			Kind:      ImportKindReExport,
			Line:      line,
		})
		return true
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if child != nil && child.Kind() == "export_clause" {
			w.imports = append(w.imports, ImportStmt{
				Names: w.importedNames(node),
				Kind:  ImportKindExport,
				Line:  line,
			})
			return true
		}
	}

	return false
}

// addCall records a call site attributed to the enclosing entity. Dynamic
// imports become dependency statements instead of call edges.
func (w *tsWalker) addCall(node *tree_sitter.Node, scope *EntityRef) {
	fnNode := node.ChildByFieldName("function")
	if fnNode == nil {
		return
	}

	if fnNode.Kind() == "import" {
		w.addDynamicImport(node)
		return
	}

	if scope == nil {
		return // top-level call, no caller entity
	}

	var callee string
	switch fnNode.Kind() {
	case "identifier", "member_expression":
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

// addDynamicImport records `import("mod")` as a dynamic-import statement
// when its first argument is a string literal.
func (w *tsWalker) addDynamicImport(node *tree_sitter.Node) {
	args := node.ChildByFieldName("arguments")
	if args == nil {
		return
	}
	for i := uint(0); i < args.ChildCount(); i++ {
		child := args.Child(i)
		if child == nil || child.Kind() != "string" {
			continue
		}
		specifier := strings.Trim(w.text(child), "\"'`")
		if specifier == "" {
			return
		}
		w.imports = append(w.imports, ImportStmt{
			Specifier: specifier,
			Kind:      ImportKindDynamic,
			Line:      int(node.StartPosition().Row) + 1,
		})
		return
	}
}

// signature extracts parameter names and the return annotation from a
// function-like node.
func (w *tsWalker) signature(node *tree_sitter.Node) Signature {
	var sig Signature

	params := node.ChildByFieldName("parameters")
	if params != nil {
		for i := uint(0); i < params.ChildCount(); i++ {
			child := params.Child(i)
			if child == nil {
				continue
			}
			switch child.Kind() {
			case "required_parameter", "optional_parameter":
				if pattern := child.ChildByFieldName("pattern"); pattern != nil {
					sig.Params = append(sig.Params, w.text(pattern))
				}
			case "identifier":
				sig.Params = append(sig.Params, w.text(child))
			}
		}
	} else if single := node.ChildByFieldName("parameter"); single != nil {
		// Arrow function with a single unparenthesized parameter.
		sig.Params = append(sig.Params, w.text(single))
	}

	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig.Return = strings.TrimSpace(strings.TrimPrefix(w.text(ret), ":"))
	}

	sig.ParamCount = len(sig.Params)
	return sig
}

// isTSExported checks if a node is exported by looking at whether its parent
// is an export_statement.
func isTSExported(node *tree_sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return false
	}
	return parent.Kind() == "export_statement"
}

// isTSTopLevel reports whether a declaration sits directly in the program,
// possibly behind an export statement.
func isTSTopLevel(node *tree_sitter.Node) bool {
	parent := node.Parent()
	if parent == nil {
		return true
	}
	if parent.Kind() == "export_statement" {
		return isTSTopLevel(parent)
	}
	return parent.Kind() == "program"
}
