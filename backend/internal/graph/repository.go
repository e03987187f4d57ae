package graph

import (
	"context"
	"errors"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	apperrors "reddit-graph/backend/pkg/errors"
	"reddit-graph/backend/pkg/logger"
)

// constraintViolationCode is the Neo4j status code raised when a write breaks a
// uniqueness constraint.
const constraintViolationCode = "Neo.ClientError.Schema.ConstraintValidationFailed"

var constraintStatements = []string{
	"CREATE CONSTRAINT unique_user IF NOT EXISTS FOR (u:User) REQUIRE u.username IS UNIQUE",
	"CREATE CONSTRAINT unique_subreddit IF NOT EXISTS FOR (s:Subreddit) REQUIRE s.name IS UNIQUE",
}

// Repository handles all Neo4j database operations
type Repository struct {
	driver   neo4j.DriverWithContext
	database string
	logger   *zap.Logger
}

// NewRepository creates a new graph repository. An empty database name uses
// the server default.
func NewRepository(driver neo4j.DriverWithContext, database string) *Repository {
	return &Repository{
		driver:   driver,
		database: database,
		logger:   logger.Named("graph"),
	}
}

// Connect creates a driver and verifies the server is reachable
func Connect(ctx context.Context, uri, user, password string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, apperrors.NewGraphConnectionFailed(uri, err)
	}

	return driver, nil
}

// Close closes the Neo4j driver connection
func (r *Repository) Close() error {
	return r.driver.Close(context.Background())
}

// EnsureConstraints declares the User and Subreddit uniqueness constraints.
// Both statements are no-ops when the constraint already exists.
func (r *Repository) EnsureConstraints(ctx context.Context) error {
	for _, stmt := range constraintStatements {
		if _, err := r.write(ctx, "create constraint", stmt, nil); err != nil {
			return err
		}
	}

	r.logger.Debug("Constraints ensured", zap.Int("count", len(constraintStatements)))
	return nil
}

func (r *Repository) newSession(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return r.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: r.database,
	})
}

// write runs one auto-commit statement in its own session and returns the
// summary counters. Errors surface on Consume for writes, so both are checked.
func (r *Repository) write(ctx context.Context, operation, query string, params map[string]interface{}) (neo4j.Counters, error) {
	session := r.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	result, err := session.Run(ctx, query, params)
	if err != nil {
		return nil, r.wrapErr(operation, err)
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return nil, r.wrapErr(operation, err)
	}

	return summary.Counters(), nil
}

func (r *Repository) wrapErr(operation string, err error) error {
	if isConstraintViolation(err) {
		return errConstraintViolation{cause: err}
	}
	return apperrors.NewGraphQueryFailed(operation, err)
}

// errConstraintViolation never leaves the package; node creates turn it into AlreadyExists.
type errConstraintViolation struct {
	cause error
}

func (e errConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation: %v", e.cause)
}

func (e errConstraintViolation) Unwrap() error {
	return e.cause
}

func isConstraintViolation(err error) bool {
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		return neoErr.Code == constraintViolationCode
	}
	return false
}
