// Package ingest loads a Reddit activity CSV export into the graph store.
//
// Rows are processed one at a time in file order. Every row first ensures its
// User (and its Subreddit when the row carries a description), then creates
// the nodes and relationships implied by the row's type. A uniqueness
// conflict on User or Subreddit is logged and skipped; any other failure
// stops the run.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"reddit-graph/backend/internal/graph"
	apperrors "reddit-graph/backend/pkg/errors"
	"reddit-graph/backend/pkg/logger"
)

// Store is the subset of the graph repository the ingestor writes through
type Store interface {
	CreateUser(ctx context.Context, user graph.User) (graph.WriteOutcome, error)
	CreateSubreddit(ctx context.Context, subreddit graph.Subreddit) (graph.WriteOutcome, error)
	CreatePost(ctx context.Context, post graph.Post) (graph.WriteOutcome, error)
	CreateComment(ctx context.Context, comment graph.Comment) (graph.WriteOutcome, error)
	CreateRelationship(ctx context.Context, kind graph.RelationshipKind, username, target string) (int, error)
}

// Ingestor maps CSV rows to graph writes
type Ingestor struct {
	store  Store
	logger *zap.Logger
}

// NewIngestor creates an ingestor writing to store. A nil log uses the global logger.
func NewIngestor(store Store, log *zap.Logger) *Ingestor {
	if log == nil {
		log = logger.Named("ingest")
	}
	return &Ingestor{
		store:  store,
		logger: log,
	}
}

// Ingest reads the CSV file at sourcePath and writes it to the store
func (i *Ingestor) Ingest(ctx context.Context, sourcePath string) (*Report, error) {
	file, err := os.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source: %w", err)
	}
	defer file.Close()

	i.logger.Info("Ingesting source", zap.String("path", sourcePath))
	return i.IngestReader(ctx, file)
}

// IngestReader reads CSV from src and writes it to the store. The returned
// report is non-nil whenever the header was read, including on error.
func (i *Ingestor) IngestReader(ctx context.Context, src io.Reader) (*Report, error) {
	start := time.Now()
	reader := csv.NewReader(src)
	// Exports leave quotes inside unquoted titles and comments as-is.
	reader.LazyQuotes = true

	headerFields, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.NewInputMissingColumn(RequiredColumns[0])
	}
	if err != nil {
		return nil, apperrors.NewInputMalformedRow(0, "", err)
	}

	h, err := parseHeader(headerFields)
	if err != nil {
		return nil, err
	}

	report := newReport()
	log := i.logger.With(zap.String("run_id", report.RunID))

	for num := 1; ; num++ {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, apperrors.NewContextCancelled("ingest", err)
		}

		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report.Duration = time.Since(start)
			return report, apperrors.NewInputMalformedRow(num, "", err)
		}

		if err := i.processRow(ctx, log, report, row{num: num, fields: fields, header: h}); err != nil {
			report.Duration = time.Since(start)
			log.Error("Ingestion aborted", zap.Int("row", num), zap.Error(err))
			return report, fmt.Errorf("row %d: %w", num, err)
		}
		report.Rows++
	}

	report.Duration = time.Since(start)
	log.Info("Ingestion complete", report.Fields()...)
	return report, nil
}

func (i *Ingestor) processRow(ctx context.Context, log *zap.Logger, report *Report, r row) error {
	user, err := r.user()
	if err != nil {
		return err
	}
	outcome, err := i.store.CreateUser(ctx, user)
	if err != nil {
		return err
	}
	report.recordNode(graph.LabelUser, outcome)
	if outcome == graph.AlreadyExists {
		log.Info("User already exists", zap.Int("row", r.num), zap.String("username", user.Username))
	}

	if r.get(ColDescription) != "" {
		subreddit, err := r.subreddit()
		if err != nil {
			return err
		}
		outcome, err := i.store.CreateSubreddit(ctx, subreddit)
		if err != nil {
			return err
		}
		report.recordNode(graph.LabelSubreddit, outcome)
		if outcome == graph.AlreadyExists {
			log.Info("Subreddit already exists", zap.Int("row", r.num), zap.String("name", subreddit.Name))
		}
	}

	// Each check is independent; the export never sets more than one type per row.
	rowType := r.get(ColType)
	username := user.Username

	if rowType == TypeSubscribes {
		if err := i.relate(ctx, log, report, r.num, graph.RelSubscribes, username, r.get(ColSubredditName)); err != nil {
			return err
		}
	}

	if rowType == TypeModerates {
		if err := i.relate(ctx, log, report, r.num, graph.RelModerates, username, r.get(ColSubredditName)); err != nil {
			return err
		}
	}

	if rowType == TypePost {
		post, err := r.post()
		if err != nil {
			return err
		}
		outcome, err := i.store.CreatePost(ctx, post)
		if err != nil {
			return err
		}
		report.recordNode(graph.LabelPost, outcome)
		if err := i.relate(ctx, log, report, r.num, graph.RelPublished, username, post.Title); err != nil {
			return err
		}
	}

	if rowType == TypeComment {
		comment, err := r.comment()
		if err != nil {
			return err
		}
		outcome, err := i.store.CreateComment(ctx, comment)
		if err != nil {
			return err
		}
		report.recordNode(graph.LabelComment, outcome)
		if err := i.relate(ctx, log, report, r.num, graph.RelCommented, username, comment.Text); err != nil {
			return err
		}
	}

	// Upvote rows write DOWNVOTES and Downvote rows write UPVOTES. Existing
	// graphs and their queries depend on this mapping.
	if rowType == TypeUpvote {
		if err := i.relate(ctx, log, report, r.num, graph.RelDownvotes, username, r.get(ColTitle)); err != nil {
			return err
		}
	}

	if rowType == TypeDownvote {
		if err := i.relate(ctx, log, report, r.num, graph.RelUpvotes, username, r.get(ColTitle)); err != nil {
			return err
		}
	}

	return nil
}

func (i *Ingestor) relate(ctx context.Context, log *zap.Logger, report *Report, num int, kind graph.RelationshipKind, username, target string) error {
	created, err := i.store.CreateRelationship(ctx, kind, username, target)
	if err != nil {
		return err
	}

	report.recordRelationship(kind, created)
	if created == 0 {
		log.Warn("Relationship endpoint not found",
			zap.Int("row", num),
			zap.String("type", string(kind)),
			zap.String("username", username),
			zap.String("target", target),
		)
	}
	return nil
}
