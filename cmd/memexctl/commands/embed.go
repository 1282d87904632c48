// ABOUTME: CLI commands for embedding backfill and coverage stats
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/engine"
	"github.com/memexlabs/memex/internal/model"
)

var (
	embedKind  string
	embedLimit int
	embedForce bool
)

// NewEmbedCmd creates the embed command with its backfill|stats subcommands.
func NewEmbedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "embed",
		Short: "Embedding backfill and coverage stats",
	}
	cmd.AddCommand(newEmbedBackfillCmd(), newEmbedStatsCmd())
	return cmd
}

func newEmbedBackfillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backfill <kind>",
		Short: "Embed rows of a kind missing a vector",
		Args:  cobra.ExactArgs(1),
		RunE:  runEmbedBackfill,
	}
	cmd.Flags().IntVar(&embedLimit, "limit", 100, "maximum rows to embed")
	cmd.Flags().BoolVar(&embedForce, "force", false, "re-embed rows that already have a vector")
	return cmd
}

func runEmbedBackfill(cmd *cobra.Command, args []string) error {
	kind := model.Kind(args[0])
	if !kind.IsValid() {
		return fmt.Errorf("unknown kind %q", args[0])
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	result, err := e.EmbedBackfill(cmd.Context(), engine.EmbedBackfillInput{Kind: kind, Limit: embedLimit, Force: embedForce})
	if err != nil {
		return fmt.Errorf("backfilling embeddings: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ embedded %d %s\n", result.Embedded, kind)
	}
	for _, rowErr := range result.Errors {
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "  error: %v\n", rowErr)
		}
	}
	return nil
}

func newEmbedStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show embedding row count and total vector byte size",
		Args:  cobra.NoArgs,
		RunE:  runEmbedStats,
	}
}

func runEmbedStats(cmd *cobra.Command, args []string) error {
	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	s, err := e.EmbedStats(cmd.Context())
	if err != nil {
		return fmt.Errorf("computing embedding stats: %w", err)
	}

	if wantsJSON() {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "count:\t%d\nbytes:\t%d\n", s.Count, s.TotalBytes)
	return nil
}
