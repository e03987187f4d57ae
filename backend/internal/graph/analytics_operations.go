package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	apperrors "reddit-graph/backend/pkg/errors"
)

// ============================================================================
// Link Prediction Operations
// ============================================================================

// FindPersonID returns the internal id of the one Person whose name matches
// exactly. No match and several matches are both errors.
func (r *Repository) FindPersonID(ctx context.Context, name string) (int64, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := `
		MATCH (p:Person {name: $name})
		RETURN id(p) AS id
	`

	result, err := session.Run(ctx, query, map[string]interface{}{
		"name": name,
	})
	if err != nil {
		return 0, r.wrapErr("find person", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return 0, r.wrapErr("find person", err)
	}

	return singleID(records, name)
}

func singleID(records []*neo4j.Record, name string) (int64, error) {
	switch len(records) {
	case 0:
		return 0, apperrors.NewGraphNodeNotFound(LabelPerson, "name", name)
	case 1:
		return getInt64FromRecord(records[0], "id"), nil
	default:
		return 0, apperrors.NewGraphAmbiguousMatch(LabelPerson, "name", name, len(records))
	}
}

// TotalNeighbors scores two nodes by the size of the union of their neighbor sets
func (r *Repository) TotalNeighbors(ctx context.Context, node1, node2 int64, method ScoreMethod) (float64, error) {
	var query string
	switch method {
	case ScoreGDS, "":
		query = `
			MATCH (a) WHERE id(a) = $node1
			MATCH (b) WHERE id(b) = $node2
			RETURN gds.alpha.linkprediction.totalNeighbors(a, b) AS score
		`
	case ScoreCypher:
		query = `
			MATCH (a) WHERE id(a) = $node1
			MATCH (b) WHERE id(b) = $node2
			OPTIONAL MATCH (a)--(na)
			WITH a, b, collect(DISTINCT na) AS aNeighbors
			OPTIONAL MATCH (b)--(nb)
			WITH aNeighbors, collect(DISTINCT nb) AS bNeighbors
			RETURN size(aNeighbors + [n IN bNeighbors WHERE NOT n IN aNeighbors]) AS score
		`
	default:
		return 0, fmt.Errorf("unknown score method: %q", method)
	}

	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, map[string]interface{}{
		"node1": node1,
		"node2": node2,
	})
	if err != nil {
		return 0, r.wrapErr("total neighbors", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return 0, r.wrapErr("total neighbors", err)
	}

	return getFloat64FromRecord(record, "score"), nil
}

// ScoreTotalNeighbors looks up both Person nodes by name and scores them
func (r *Repository) ScoreTotalNeighbors(ctx context.Context, name1, name2 string, method ScoreMethod) (*NeighborScore, error) {
	if method == "" {
		method = ScoreGDS
	}

	var node1, node2 int64
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		id, err := r.FindPersonID(gctx, name1)
		node1 = id
		return err
	})
	g.Go(func() error {
		id, err := r.FindPersonID(gctx, name2)
		node2 = id
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	score, err := r.TotalNeighbors(ctx, node1, node2, method)
	if err != nil {
		return nil, err
	}

	r.logger.Info("Total neighbors scored",
		zap.String("name1", name1),
		zap.String("name2", name2),
		zap.String("method", string(method)),
		zap.Float64("score", score),
	)

	return &NeighborScore{
		Name1:  name1,
		Name2:  name2,
		Method: method,
		Score:  score,
	}, nil
}
