package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"reddit-graph/backend/internal/ingest"
	"reddit-graph/backend/pkg/logger"
)

func newIngestCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load a Reddit activity CSV into the graph",
		Long: `Load a Reddit activity CSV into the graph.

The count columns (followers, user_karma, subscribers, post_karma,
comment_karma) must hold whole numbers. An empty cell is read as 0; any
other non-integer value such as "1.5k" or "12.0" aborts the run at that
row. Rows before it stay written and the partial report is logged.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logger.Get()

			source := file
			if source == "" {
				source = cfg.IngestSource
			}

			repo, err := openRepository(ctx)
			if err != nil {
				return err
			}
			defer repo.Close()

			log.Info("Creating constraints...")
			if err := repo.EnsureConstraints(ctx); err != nil {
				return err
			}

			report, err := ingest.NewIngestor(repo, log).Ingest(ctx, source)
			if err != nil {
				if report != nil {
					log.Warn("Partial ingestion", report.Fields()...)
				}
				return err
			}

			log.Info("Ingestion finished", zap.String("source", source))
			fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d rows from %s\n", report.Rows, source)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "CSV file to ingest (defaults to INGEST_SOURCE)")
	return cmd
}
