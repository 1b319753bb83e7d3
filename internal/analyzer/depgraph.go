package analyzer

import (
	"sort"
	"strings"
)

// DependencyGraph is the file-level import/export graph of one snapshot.
// Nodes are the analyzed file paths; Edges keep statement order. External
// targets (unresolvable specifiers) appear in Edges but never in the
// adjacency used for cycle detection.
type DependencyGraph struct {
	Nodes  []string         `json:"nodes"`
	Edges  []DependencyEdge `json:"edges"`
	cycles [][]string
	adj    map[string][]string
}

// buildDependencyGraph derives edges from each file's import/export
// statements, resolving targets against the snapshot file set, and detects
// circular dependency chains.
func buildDependencyGraph(files []SourceFile) *DependencyGraph {
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	res := newResolver(paths)

	g := &DependencyGraph{
		Nodes: paths,
		adj:   make(map[string][]string, len(files)),
	}

	seen := make(map[string]bool) // dedup adjacency pairs
	for _, f := range files {
		for _, imp := range f.Imports {
			if imp.Specifier == "" {
				continue // local export statement, no target file
			}
			to, ok := res.resolve(imp.Specifier, f.Path, f.Language)
			edge := DependencyEdge{From: f.Path, Kind: imp.Kind}
			if ok {
				edge.To = to
			} else {
				edge.To = imp.Specifier
				edge.External = true
			}
			g.Edges = append(g.Edges, edge)

			if ok && to != f.Path {
				key := f.Path + "\x00" + to
				if !seen[key] {
					seen[key] = true
					g.adj[f.Path] = append(g.adj[f.Path], to)
				}
			}
		}
	}

	for _, neighbors := range g.adj {
		sort.Strings(neighbors)
	}
	g.cycles = g.detectCycles()
	return g
}

// Dependents returns the files that have an edge pointing at path.
func (g *DependencyGraph) Dependents(path string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range g.Edges {
		if e.To == path && !seen[e.From] {
			seen[e.From] = true
			out = append(out, e.From)
		}
	}
	return out
}

// Dependencies returns all edges originating from path, in statement order.
func (g *DependencyGraph) Dependencies(path string) []DependencyEdge {
	var out []DependencyEdge
	for _, e := range g.Edges {
		if e.From == path {
			out = append(out, e)
		}
	}
	return out
}

// Cycles returns every distinct circular dependency chain, each as an
// ordered sequence of file paths rotated so the lexicographically smallest
// path comes first. Rotations of the same cycle are reported once.
func (g *DependencyGraph) Cycles() [][]string {
	out := make([][]string, len(g.cycles))
	for i, c := range g.cycles {
		out[i] = append([]string(nil), c...)
	}
	return out
}

// detectCycles runs a depth-first traversal from every unvisited node with a
// current-path stack. Revisiting a node already on the stack closes a cycle:
// the sub-path from its first stack occurrence to the current node. The
// search continues past each recorded cycle rather than stopping.
func (g *DependencyGraph) detectCycles() [][]string {
	visited := make(map[string]bool)
	onPath := make(map[string]int)
	var path []string
	seen := make(map[string]bool)
	var cycles [][]string

	var dfs func(node string)
	dfs = func(node string) {
		onPath[node] = len(path)
		path = append(path, node)

		for _, next := range g.adj[node] {
			if idx, ok := onPath[next]; ok {
				cycle := rotateToMin(path[idx:])
				key := strings.Join(cycle, "\x00")
				if !seen[key] {
					seen[key] = true
					cycles = append(cycles, cycle)
				}
				continue
			}
			if !visited[next] {
				dfs(next)
			}
		}

		path = path[:len(path)-1]
		delete(onPath, node)
		visited[node] = true
	}

	roots := append([]string(nil), g.Nodes...)
	sort.Strings(roots)
	for _, n := range roots {
		if !visited[n] {
			dfs(n)
		}
	}
	return cycles
}

// rotateToMin returns a copy of cycle rotated so its smallest element comes
// first, giving every rotation of the same cycle one canonical form.
func rotateToMin(cycle []string) []string {
	min := 0
	for i, p := range cycle {
		if p < cycle[min] {
			min = i
		}
	}
	out := make([]string, 0, len(cycle))
	out = append(out, cycle[min:]...)
	out = append(out, cycle[:min]...)
	return out
}
