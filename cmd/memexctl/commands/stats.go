// ABOUTME: CLI command to report row counts, store size, and embedding coverage
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/model"
)

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show row counts, store size, and embedding coverage",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	s, err := e.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("computing stats: %w", err)
	}

	if wantsJSON() {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "sessions\t%d\n", s.Sessions)
	for _, k := range model.AllKinds {
		fmt.Fprintf(w, "%s\t%d\n", k, s.Counts[k])
	}
	w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "\ndb size:\t%d bytes\nembeddings:\t%d rows, %d bytes\n",
		s.DBSizeBytes, s.Embeddings.Count, s.Embeddings.TotalBytes)
	return nil
}
