package graph

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// ============================================================================
// User Relationship Operations
// ============================================================================

// CreateRelationship matches the User by username and the kind's target node by
// its key, then creates one relationship per matched pair. It returns how many
// relationships were created; zero means an endpoint was absent, which is not
// an error.
func (r *Repository) CreateRelationship(ctx context.Context, kind RelationshipKind, username, target string) (int, error) {
	query, err := relationshipQuery(kind)
	if err != nil {
		return 0, err
	}

	counters, err := r.write(ctx, "create "+string(kind)+" relationship", query, map[string]interface{}{
		"username": username,
		"target":   target,
	})
	if err != nil {
		return 0, err
	}

	created := counters.RelationshipsCreated()
	if created == 0 {
		r.logger.Debug("Relationship matched no endpoints",
			zap.String("type", string(kind)),
			zap.String("username", username),
			zap.String("target", target),
		)
	}
	return created, nil
}

func relationshipQuery(kind RelationshipKind) (string, error) {
	label, key, ok := kind.Target()
	if !ok {
		return "", fmt.Errorf("unknown relationship kind: %q", kind)
	}

	return fmt.Sprintf(`
		MATCH (u:User), (t:%s)
		WHERE u.username = $username AND t.%s = $target
		CREATE (u)-[r:%s]->(t)
		RETURN type(r)
	`, quoteIdentifier(label), quoteIdentifier(key), quoteIdentifier(string(kind))), nil
}
