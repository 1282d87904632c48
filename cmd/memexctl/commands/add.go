// ABOUTME: CLI command to add breadcrumbs, decisions, and learnings
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/engine"
)

var (
	addProject    string
	addCategory   string
	addSessionRef string
	addImportance int
	addReasoning  string
	addAlts       string
	addSolution   string
	addPrevention string
	addTags       string
)

// NewAddCmd creates the add command with its three entity subcommands.
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a breadcrumb, decision, or learning",
	}
	cmd.PersistentFlags().StringVar(&addProject, "project", "", "project scope")
	cmd.PersistentFlags().StringVar(&addCategory, "category", "", "category label")
	cmd.PersistentFlags().StringVar(&addSessionRef, "session", "", "originating session id")

	cmd.AddCommand(newAddBreadcrumbCmd(), newAddDecisionCmd(), newAddLearningCmd())
	return cmd
}

func newAddBreadcrumbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "breadcrumb <text>",
		Short: "Add a breadcrumb",
		Args:  cobra.ExactArgs(1),
		RunE:  runAddBreadcrumb,
	}
	cmd.Flags().IntVar(&addImportance, "importance", 0, "importance 1-10 (default 5)")
	return cmd
}

func runAddBreadcrumb(cmd *cobra.Command, args []string) error {
	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	in := engine.AddBreadcrumbInput{Content: args[0]}
	if addProject != "" {
		in.Project = &addProject
	}
	if addCategory != "" {
		in.Category = &addCategory
	}
	if addSessionRef != "" {
		in.SessionRef = &addSessionRef
	}
	if addImportance != 0 {
		in.Importance = &addImportance
	}

	id, err := e.AddBreadcrumb(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("adding breadcrumb: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Added breadcrumb %d\n", id)
	}
	return nil
}

func newAddDecisionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decision <text>",
		Short: "Add a decision",
		Args:  cobra.ExactArgs(1),
		RunE:  runAddDecision,
	}
	cmd.Flags().StringVar(&addReasoning, "reasoning", "", "why this decision was made")
	cmd.Flags().StringVar(&addAlts, "alternatives", "", "alternatives considered")
	return cmd
}

func runAddDecision(cmd *cobra.Command, args []string) error {
	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	in := engine.AddDecisionInput{Decision: args[0]}
	if addProject != "" {
		in.Project = &addProject
	}
	if addCategory != "" {
		in.Category = &addCategory
	}
	if addSessionRef != "" {
		in.SessionRef = &addSessionRef
	}
	if addReasoning != "" {
		in.Reasoning = &addReasoning
	}
	if addAlts != "" {
		in.Alternatives = &addAlts
	}

	id, err := e.AddDecision(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("adding decision: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Added decision %d\n", id)
	}
	return nil
}

func newAddLearningCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learning <problem>",
		Short: "Add a learning",
		Args:  cobra.ExactArgs(1),
		RunE:  runAddLearning,
	}
	cmd.Flags().StringVar(&addSolution, "solution", "", "the fix that was applied")
	cmd.Flags().StringVar(&addPrevention, "prevention", "", "how to prevent recurrence")
	cmd.Flags().StringVar(&addTags, "tags", "", "comma-separated tags")
	return cmd
}

func runAddLearning(cmd *cobra.Command, args []string) error {
	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	in := engine.AddLearningInput{Problem: args[0]}
	if addProject != "" {
		in.Project = &addProject
	}
	if addCategory != "" {
		in.Category = &addCategory
	}
	if addSessionRef != "" {
		in.SessionRef = &addSessionRef
	}
	if addSolution != "" {
		in.Solution = &addSolution
	}
	if addPrevention != "" {
		in.Prevention = &addPrevention
	}
	if addTags != "" {
		in.Tags = &addTags
	}

	id, err := e.AddLearning(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("adding learning: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Added learning %d\n", id)
	}
	return nil
}
