package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"reddit-graph/backend/internal/graph"
	"reddit-graph/backend/internal/ingest"
	apperrors "reddit-graph/backend/pkg/errors"
	"reddit-graph/backend/pkg/logger"
)

type ingestRunner interface {
	IngestReader(ctx context.Context, src io.Reader) (*ingest.Report, error)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API for ingestion and neighbor scoring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logger.Named("http")

			repo, err := openRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			if err := repo.EnsureConstraints(ctx); err != nil {
				return err
			}

			if cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}
			router := newRouter(log, ingest.NewIngestor(repo, log), repo)

			srv := &http.Server{
				Addr:    ":" + cfg.Port,
				Handler: router,
			}

			errCh := make(chan error, 1)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			log.Info("Server started", zap.String("port", cfg.Port))

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("Shutting down server...")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("Server forced to shutdown", zap.Error(err))
			}

			log.Info("Server exited")
			return nil
		},
	}
}

func newRouter(log *zap.Logger, runner ingestRunner, scorer neighborScorer) *gin.Engine {
	router := gin.New()
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		// Body is the CSV export itself
		api.POST("/ingest", func(c *gin.Context) {
			report, err := runner.IngestReader(c.Request.Context(), c.Request.Body)
			if err != nil {
				log.Error("Ingestion failed", zap.Error(err))
				c.JSON(statusFor(err), gin.H{"error": err.Error(), "report": report})
				return
			}
			c.JSON(http.StatusOK, report)
		})

		api.GET("/neighbors", func(c *gin.Context) {
			var req struct {
				Name1  string `form:"name1" binding:"required"`
				Name2  string `form:"name2" binding:"required"`
				Method string `form:"mode"`
			}
			if err := c.ShouldBindQuery(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}

			method := graph.ScoreMethod(req.Method)
			if method != "" && method != graph.ScoreGDS && method != graph.ScoreCypher {
				c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be gds or cypher"})
				return
			}

			score, err := scorer.ScoreTotalNeighbors(c.Request.Context(), req.Name1, req.Name2, method)
			if err != nil {
				log.Error("Failed to score neighbors", zap.Error(err))
				c.JSON(statusFor(err), gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, score)
		})
	}

	return router
}

func statusFor(err error) int {
	var notFound *apperrors.ErrGraphNodeNotFound
	var ambiguous *apperrors.ErrGraphAmbiguousMatch
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &ambiguous):
		return http.StatusConflict
	case apperrors.IsErrorType(err, apperrors.ErrorTypeInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		)
	}
}
