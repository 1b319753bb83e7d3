package export

import (
	"encoding/json"
	"time"

	"github.com/dusk-indust/codegraph/internal/analyzer"
)

// SnapshotExport is the top-level JSON export structure for one analysis.
type SnapshotExport struct {
	ExportedAt      string                    `json:"exportedAt"`
	Summary         analyzer.Summary          `json:"summary"`
	Files           []analyzer.SourceFile     `json:"files"`
	Entities        []analyzer.Entity         `json:"entities"`
	CallEdges       []analyzer.CallEdge       `json:"callEdges,omitempty"`
	DependencyEdges []analyzer.DependencyEdge `json:"dependencyEdges,omitempty"`
	Cycles          [][]string                `json:"circularDependencies,omitempty"`
}

// BuildSnapshotExport assembles the export structure from a snapshot.
func BuildSnapshotExport(snap *analyzer.Snapshot) *SnapshotExport {
	return &SnapshotExport{
		ExportedAt:      time.Now().UTC().Format(time.RFC3339),
		Summary:         snap.Summary(),
		Files:           snap.Files,
		Entities:        snap.Entities,
		CallEdges:       snap.CallEdges,
		DependencyEdges: snap.Graph.Edges,
		Cycles:          snap.Cycles(),
	}
}

// MarshalSnapshot renders a snapshot as indented JSON.
func MarshalSnapshot(snap *analyzer.Snapshot) ([]byte, error) {
	return json.MarshalIndent(BuildSnapshotExport(snap), "", "  ")
}
