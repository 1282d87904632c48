// ABOUTME: CLI command to batch-import transcripts under a root directory
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/engine"
)

var (
	importRoot      string
	importDryRun    bool
	importYes       bool
	importVerbose   bool
	importLimit     int
	importUnlimited bool
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Batch-import new transcripts under a root directory",
		Args:  cobra.NoArgs,
		RunE:  runImport,
	}
	cmd.Flags().StringVar(&importRoot, "root", "", "transcript root directory (required)")
	cmd.Flags().BoolVar(&importDryRun, "dry-run", false, "list candidates without ingesting")
	cmd.Flags().BoolVar(&importYes, "yes", false, "accepted for compatibility; import never prompts for confirmation")
	cmd.Flags().BoolVar(&importVerbose, "verbose", false, "print per-session detail")
	cmd.Flags().IntVar(&importLimit, "limit", 10, "maximum sessions to import")
	cmd.Flags().BoolVar(&importUnlimited, "unlimited", false, "ignore --limit")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	if importRoot == "" {
		return fmt.Errorf("--root is required")
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	result, err := e.ImportSessions(cmd.Context(), engine.ImportSessionsInput{
		Root:      importRoot,
		Limit:     importLimit,
		Unlimited: importUnlimited,
		DryRun:    importDryRun,
		Verbose:   importVerbose,
	})
	if err != nil {
		return fmt.Errorf("importing: %w", err)
	}

	if importDryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "%d candidate(s) found\n", len(result.Candidates))
		if importVerbose || verbose {
			for _, c := range result.Candidates {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s (%d bytes)\n", c.Path, c.SizeBytes)
			}
		}
		return nil
	}

	imported, skipped, failed := 0, 0, 0
	for _, r := range result.Imported {
		switch {
		case r.Err != nil:
			failed++
			if verbose || importVerbose {
				fmt.Fprintf(cmd.ErrOrStderr(), "  error: %s: %v\n", r.Path, r.Err)
			}
		case r.Skipped:
			skipped++
		default:
			imported++
			if importVerbose || verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "  imported %s (%d messages, project %q)\n", r.ExternalID, r.Messages, r.Project)
			}
		}
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ imported %d, skipped %d, failed %d\n", imported, skipped, failed)
		if len(result.Extracted) > 0 || len(result.ExtractionErrors) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ extracted %d, extraction errors %d\n", len(result.Extracted), len(result.ExtractionErrors))
		}
	}
	return nil
}
