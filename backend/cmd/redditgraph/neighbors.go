package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/spf13/cobra"
	"reddit-graph/backend/internal/graph"
)

type neighborScorer interface {
	ScoreTotalNeighbors(ctx context.Context, name1, name2 string, method graph.ScoreMethod) (*graph.NeighborScore, error)
}

func newNeighborsCmd() *cobra.Command {
	var (
		name1     string
		name2     string
		useCypher bool
	)

	cmd := &cobra.Command{
		Use:   "neighbors",
		Short: "Score two Person nodes by total neighbors link prediction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			method := graph.ScoreGDS
			if useCypher {
				method = graph.ScoreCypher
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total Neighbors link prediction (%s)\n", method)

			a, b, err := promptNames(cmd.InOrStdin(), out, name1, name2)
			if err != nil {
				return err
			}

			repo, err := openRepository(cmd.Context())
			if err != nil {
				return err
			}
			defer repo.Close()

			return runNeighbors(cmd.Context(), repo, out, a, b, method)
		},
	}

	cmd.Flags().StringVar(&name1, "name1", "", "first person (prompted when empty)")
	cmd.Flags().StringVar(&name2, "name2", "", "second person (prompted when empty)")
	cmd.Flags().BoolVar(&useCypher, "cypher", false, "compute the score with plain Cypher instead of GDS")
	return cmd
}

func runNeighbors(ctx context.Context, scorer neighborScorer, out io.Writer, name1, name2 string, method graph.ScoreMethod) error {
	score, err := scorer.ScoreTotalNeighbors(ctx, name1, name2, method)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatScore(score))
	return nil
}

// promptNames asks for whichever of the two names was not supplied
func promptNames(in io.Reader, out io.Writer, name1, name2 string) (string, string, error) {
	reader := bufio.NewReader(in)

	ask := func(label, current string) (string, error) {
		if current != "" {
			return current, nil
		}
		fmt.Fprintf(out, "Enter %s: ", label)
		text, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && text != "") {
			return "", fmt.Errorf("failed to read %s: %w", label, err)
		}
		return strings.TrimSpace(text), nil
	}

	a, err := ask("name 1", name1)
	if err != nil {
		return "", "", err
	}
	b, err := ask("name 2", name2)
	if err != nil {
		return "", "", err
	}
	return a, b, nil
}

func formatScore(s *graph.NeighborScore) string {
	return fmt.Sprintf("%s and %s have %.0f total neighbors", s.Name1, s.Name2, math.Round(s.Score))
}
