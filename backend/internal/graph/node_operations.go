package graph

import (
	"context"
	"errors"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// ============================================================================
// Node Operations
// ============================================================================

// CreateUser creates a User node. A username that already exists yields
// AlreadyExists rather than an error.
func (r *Repository) CreateUser(ctx context.Context, user User) (WriteOutcome, error) {
	query := `
		CREATE (u:User {username: $username, num_of_followers: $followers, karma: $karma})
	`

	return r.createNode(ctx, "create user", query, map[string]interface{}{
		"username":  user.Username,
		"followers": user.Followers,
		"karma":     user.Karma,
	})
}

// CreateSubreddit creates a Subreddit node. A name that already exists yields
// AlreadyExists rather than an error.
func (r *Repository) CreateSubreddit(ctx context.Context, subreddit Subreddit) (WriteOutcome, error) {
	query := `
		CREATE (s:Subreddit {name: $name, description: $description, total_subscribers: $subscribers})
	`

	return r.createNode(ctx, "create subreddit", query, map[string]interface{}{
		"name":        subreddit.Name,
		"description": subreddit.Description,
		"subscribers": subreddit.Subscribers,
	})
}

// CreatePost creates a Post node. Posts have no constraint, so identical
// posts accumulate.
func (r *Repository) CreatePost(ctx context.Context, post Post) (WriteOutcome, error) {
	query := `
		CREATE (p:Post {title: $title, text: $text, karma: $karma})
	`

	return r.createNode(ctx, "create post", query, map[string]interface{}{
		"title": post.Title,
		"text":  post.Text,
		"karma": post.Karma,
	})
}

// CreateComment creates a Comment node
func (r *Repository) CreateComment(ctx context.Context, comment Comment) (WriteOutcome, error) {
	query := `
		CREATE (c:Comment {text: $text, karma: $karma})
	`

	return r.createNode(ctx, "create comment", query, map[string]interface{}{
		"text":  comment.Text,
		"karma": comment.Karma,
	})
}

func (r *Repository) createNode(ctx context.Context, operation, query string, params map[string]interface{}) (WriteOutcome, error) {
	if _, err := r.write(ctx, operation, query, params); err != nil {
		var violation errConstraintViolation
		if errors.As(err, &violation) {
			return AlreadyExists, nil
		}
		return Created, err
	}
	return Created, nil
}

// CountNodes returns how many nodes with the label have key = value
func (r *Repository) CountNodes(ctx context.Context, label, key string, value interface{}) (int64, error) {
	session := r.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	query := "MATCH (n:" + quoteIdentifier(label) + ") WHERE n." + quoteIdentifier(key) + " = $value RETURN count(n) AS total"

	result, err := session.Run(ctx, query, map[string]interface{}{
		"value": value,
	})
	if err != nil {
		return 0, r.wrapErr("count nodes", err)
	}

	record, err := result.Single(ctx)
	if err != nil {
		return 0, r.wrapErr("count nodes", err)
	}

	total := getInt64FromRecord(record, "total")
	r.logger.Debug("Counted nodes",
		zap.String("label", label),
		zap.String("key", key),
		zap.Int64("total", total),
	)
	return total, nil
}
