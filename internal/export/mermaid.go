package export

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dusk-indust/codegraph/internal/analyzer"
)

// GenerateMermaid produces a Mermaid graph TD diagram of the dependency
// graph. Files participating in a cycle are grouped into a subgraph per
// cycle; import edges become arrows, external targets get a dashed arrow.
func GenerateMermaid(snap *analyzer.Snapshot) string {
	graph := snap.Graph

	// Node -> ID mapping for Mermaid (alphanumeric only).
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(path string) string {
		if id, ok := nodeIDs[path]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[path] = id
		return id
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	// Emit one subgraph per circular dependency chain.
	inCycle := make(map[string]bool)
	for i, cycle := range snap.Cycles() {
		sb.WriteString(fmt.Sprintf("  subgraph C%d[\"cycle %d\"]\n", i, i+1))
		sorted := append([]string(nil), cycle...)
		sort.Strings(sorted)
		for _, member := range sorted {
			inCycle[member] = true
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", getID(member), shortPath(member)))
		}
		sb.WriteString("  end\n")
	}

	// Declare remaining nodes so isolated files still appear.
	for _, node := range graph.Nodes {
		if !inCycle[node] {
			sb.WriteString(fmt.Sprintf("  %s[\"%s\"]\n", getID(node), shortPath(node)))
		}
	}

	for _, e := range graph.Edges {
		arrow := "-->"
		if e.External {
			arrow = "-.->"
		}
		sb.WriteString(fmt.Sprintf("  %s %s %s\n", getID(e.From), arrow, getID(e.To)))
	}

	return sb.String()
}

// shortPath returns the last 2 path segments for readability.
func shortPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) <= 2 {
		return path
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
