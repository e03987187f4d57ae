package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"reddit-graph/backend/internal/graph"
	"reddit-graph/backend/pkg/config"
	"reddit-graph/backend/pkg/logger"
)

// cfg is populated by the root command before any subcommand runs
var cfg *config.Config

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "redditgraph",
		Short:         "Load Reddit activity into Neo4j and score people by total neighbors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if err := logger.Init(logger.Options{Env: loaded.Env, Level: loaded.LogLevel}); err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			cfg = loaded

			logger.Get().Debug("Configuration loaded",
				zap.String("command", cmd.Name()),
				zap.String("env", cfg.Env),
				zap.String("neo4j_uri", cfg.Neo4jURI),
			)
			return nil
		},
	}

	root.AddCommand(newIngestCmd(), newNeighborsCmd(), newServeCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Get().Error("Command failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

// openRepository connects to Neo4j with the loaded configuration
func openRepository(ctx context.Context) (*graph.Repository, error) {
	driver, err := graph.Connect(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword)
	if err != nil {
		return nil, err
	}
	return graph.NewRepository(driver, cfg.Neo4jDatabase), nil
}
