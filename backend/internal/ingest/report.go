package ingest

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"reddit-graph/backend/internal/graph"
)

// Report summarizes one ingestion run. On failure it reflects the rows
// processed before the error.
type Report struct {
	RunID                  string                         `json:"run_id"`
	Rows                   int                            `json:"rows"`
	NodesCreated           map[string]int                 `json:"nodes_created"`
	DuplicatesSkipped      map[string]int                 `json:"duplicates_skipped"`
	RelationshipsCreated   map[graph.RelationshipKind]int `json:"relationships_created"`
	UnmatchedRelationships int                            `json:"unmatched_relationships"`
	Duration               time.Duration                  `json:"duration"`
}

func newReport() *Report {
	return &Report{
		RunID:                uuid.NewString(),
		NodesCreated:         make(map[string]int),
		DuplicatesSkipped:    make(map[string]int),
		RelationshipsCreated: make(map[graph.RelationshipKind]int),
	}
}

func (r *Report) recordNode(label string, outcome graph.WriteOutcome) {
	if outcome == graph.AlreadyExists {
		r.DuplicatesSkipped[label]++
		return
	}
	r.NodesCreated[label]++
}

func (r *Report) recordRelationship(kind graph.RelationshipKind, created int) {
	if created == 0 {
		r.UnmatchedRelationships++
		return
	}
	r.RelationshipsCreated[kind] += created
}

// Fields renders the report as structured log fields
func (r *Report) Fields() []zap.Field {
	return []zap.Field{
		zap.String("run_id", r.RunID),
		zap.Int("rows", r.Rows),
		zap.Any("nodes_created", r.NodesCreated),
		zap.Any("duplicates_skipped", r.DuplicatesSkipped),
		zap.Any("relationships_created", r.RelationshipsCreated),
		zap.Int("unmatched_relationships", r.UnmatchedRelationships),
		zap.Duration("duration", r.Duration),
	}
}
