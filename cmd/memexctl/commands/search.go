// ABOUTME: CLI commands for lexical, semantic, and hybrid search
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/engine"
	"github.com/memexlabs/memex/internal/memerr"
	"github.com/memexlabs/memex/internal/model"
	"github.com/memexlabs/memex/internal/search"
)

var (
	searchProject string
	searchTable   string
	searchLimit   int
)

func addSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&searchProject, "project", "", "restrict to a project")
	cmd.Flags().StringVar(&searchTable, "table", "", "restrict to one kind (messages|decisions|learnings|breadcrumbs|loa|telos|documents)")
	cmd.Flags().IntVar(&searchLimit, "limit", 20, "maximum results to return")
}

func kindsFromTableFlag() ([]model.Kind, error) {
	if searchTable == "" {
		return nil, nil
	}
	k := model.Kind(searchTable)
	if !k.IsValid() {
		return nil, fmt.Errorf("unknown table %q: %w", searchTable, memerr.ErrInvalidInput)
	}
	return []model.Kind{k}, nil
}

// NewSearchCmd creates the lexical-only search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Lexical (full-text) search",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
	addSearchFlags(cmd)
	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}
	kinds, err := kindsFromTableFlag()
	if err != nil {
		return err
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	results, err := e.Search(cmd.Context(), args[0], engine.QueryOptions{Project: searchProject, Kinds: kinds, Limit: searchLimit})
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	return renderResults(cmd, results)
}

// NewSemanticCmd creates the vector-only search command.
func NewSemanticCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "semantic <query>",
		Short: "Semantic (vector) search",
		Args:  cobra.ExactArgs(1),
		RunE:  runSemantic,
	}
	addSearchFlags(cmd)
	return cmd
}

func runSemantic(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}
	kinds, err := kindsFromTableFlag()
	if err != nil {
		return err
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	results, err := e.Semantic(cmd.Context(), args[0], engine.QueryOptions{Project: searchProject, Kinds: kinds, Limit: searchLimit})
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	return renderResults(cmd, results)
}

// NewHybridCmd creates the hybrid (RRF-fused) search command.
func NewHybridCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hybrid <query>",
		Short: "Hybrid lexical+semantic search (RRF fusion)",
		Args:  cobra.ExactArgs(1),
		RunE:  runHybrid,
	}
	addSearchFlags(cmd)
	return cmd
}

func runHybrid(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}
	kinds, err := kindsFromTableFlag()
	if err != nil {
		return err
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	outcome, err := e.Hybrid(cmd.Context(), args[0], engine.QueryOptions{Project: searchProject, Kinds: kinds, Limit: searchLimit})
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}
	if !outcome.EmbeddingsAvailable && verbose {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: embedding service unavailable, degraded to lexical-only results")
	}
	return renderResults(cmd, outcome.Results)
}

func renderResults(cmd *cobra.Command, results []search.Result) error {
	if len(results) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No results")
		}
		return nil
	}

	if wantsJSON() {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tTAG\tKIND\tID\tPREVIEW\n")
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%s\t%s\t%d\t%s\n", r.Score, r.Tag, r.Kind, r.ID, truncate(r.Content, 70))
	}
	w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d result(s)\n", len(results))
	}
	return nil
}
