package analyzer

import (
	"path/filepath"
	"strings"
)

// resolver maps raw import specifiers (extracted by tree-sitter) onto
// snapshot file paths. It works purely over the set of analyzed paths: the
// engine performs no filesystem I/O, so module metadata (package.json,
// go.mod) is out of reach and non-relative specifiers resolve only when they
// directly name a known file.
type resolver struct {
	fileSet map[string]bool
}

func newResolver(paths []string) *resolver {
	r := &resolver{fileSet: make(map[string]bool, len(paths))}
	for _, p := range paths {
		r.fileSet[p] = true
	}
	return r
}

// resolve attempts to map specifier (imported from fromFile) to a snapshot
// file path. The second return is false when the target is external.
func (r *resolver) resolve(specifier, fromFile string, lang Language) (string, bool) {
	switch lang {
	case LangTypeScript:
		return r.resolveTS(specifier, fromFile)
	case LangPython:
		return r.resolvePython(specifier, fromFile)
	case LangRust:
		return r.resolveRust(specifier, fromFile)
	default:
		// Go import paths are module-qualified; without go.mod metadata they
		// stay external unless they match a known path verbatim.
		if r.fileSet[specifier] {
			return specifier, true
		}
		return "", false
	}
}

var tsExtensions = []string{".ts", ".tsx", ".js", ".jsx", "/index.ts", "/index.tsx", "/index.js"}

func (r *resolver) resolveTS(specifier, fromFile string) (string, bool) {
	if strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") {
		base := filepath.Clean(filepath.Join(filepath.Dir(fromFile), specifier))
		return r.probeFile(base, tsExtensions)
	}
	// Bare specifiers are package imports, external to the snapshot.
	return r.probeFile(specifier, tsExtensions)
}

func (r *resolver) resolvePython(specifier, fromFile string) (string, bool) {
	if !strings.HasPrefix(specifier, ".") {
		// Absolute import: try it as a path from the snapshot root.
		base := strings.ReplaceAll(specifier, ".", "/")
		return r.probeFile(base, []string{".py", "/__init__.py"})
	}

	dots := 0
	for _, c := range specifier {
		if c != '.' {
			break
		}
		dots++
	}
	modulePart := specifier[dots:]

	// One dot = current package, each extra dot climbs one directory.
	baseDir := filepath.Dir(fromFile)
	for i := 1; i < dots; i++ {
		baseDir = filepath.Dir(baseDir)
	}

	if modulePart == "" {
		return r.probeFile(filepath.Join(baseDir, "__init__"), []string{".py"})
	}

	relPath := strings.ReplaceAll(modulePart, ".", "/")
	return r.probeFile(filepath.Join(baseDir, relPath), []string{".py", "/__init__.py"})
}

func (r *resolver) resolveRust(specifier, fromFile string) (string, bool) {
	// Strip use-list braces: "crate::model::{A, B}" -> "crate::model".
	if idx := strings.Index(specifier, "::{"); idx != -1 {
		specifier = specifier[:idx]
	}

	switch {
	case strings.HasPrefix(specifier, "crate::"):
		relPath := strings.ReplaceAll(strings.TrimPrefix(specifier, "crate::"), "::", "/")
		candidates := []string{filepath.Join("src", relPath), relPath}
		if srcDir := findCrateRoot(fromFile); srcDir != "" {
			candidates = append(candidates, filepath.Join(srcDir, relPath))
		}
		for _, base := range candidates {
			if resolved, ok := r.probeFile(base, []string{".rs", "/mod.rs"}); ok {
				return resolved, true
			}
		}
		return "", false

	case strings.HasPrefix(specifier, "self::"):
		relPath := strings.ReplaceAll(strings.TrimPrefix(specifier, "self::"), "::", "/")
		return r.probeFile(filepath.Join(filepath.Dir(fromFile), relPath), []string{".rs", "/mod.rs"})

	case strings.HasPrefix(specifier, "super::"):
		relPath := strings.ReplaceAll(strings.TrimPrefix(specifier, "super::"), "::", "/")
		return r.probeFile(filepath.Join(filepath.Dir(filepath.Dir(fromFile)), relPath), []string{".rs", "/mod.rs"})

	default:
		return "", false // external crate
	}
}

// findCrateRoot walks up from a file path to find the nearest "src"
// directory, the conventional Rust crate source root.
func findCrateRoot(filePath string) string {
	dir := filepath.Dir(filePath)
	for dir != "." && dir != "/" && dir != "" {
		if filepath.Base(dir) == "src" {
			return dir
		}
		dir = filepath.Dir(dir)
	}
	return ""
}

// probeFile checks if basePath (with any of the given extensions appended)
// exists in the known file set.
func (r *resolver) probeFile(basePath string, extensions []string) (string, bool) {
	if r.fileSet[basePath] {
		return basePath, true
	}
	for _, ext := range extensions {
		if candidate := basePath + ext; r.fileSet[candidate] {
			return candidate, true
		}
	}
	return "", false
}
