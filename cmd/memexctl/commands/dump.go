// ABOUTME: CLI command to re-ingest the active session transcript and digest it into a LoA entry
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/engine"
)

var (
	dumpTranscript  string
	dumpProject     string
	dumpContinues   int64
	dumpTags        string
	dumpLimit       int
	dumpSkipExtract bool
)

// NewDumpCmd creates the dump command.
func NewDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <title>",
		Short: "Re-ingest the active session transcript and write a LoA entry",
		Long: `Re-ingest the transcript at --transcript (deleting any prior rows for its
external session id), optionally run the extraction pipeline over it, and
finish by writing a LoA entry over the freshly ingested messages.`,
		Args: cobra.ExactArgs(1),
		RunE: runDump,
	}
	cmd.Flags().StringVar(&dumpTranscript, "transcript", "", "transcript path (required)")
	cmd.Flags().StringVar(&dumpProject, "project", "", "project scope")
	cmd.Flags().Int64Var(&dumpContinues, "continues", 0, "parent LoA entry id")
	cmd.Flags().StringVar(&dumpTags, "tags", "", "comma-separated tags")
	cmd.Flags().IntVar(&dumpLimit, "limit", 0, "tail message limit for the LoA digest")
	cmd.Flags().BoolVar(&dumpSkipExtract, "skip-extract", false, "skip the C7 extraction pipeline")
	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	if dumpTranscript == "" {
		return fmt.Errorf("--transcript is required")
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	in := engine.DumpInput{
		TranscriptPath: dumpTranscript,
		Title:          args[0],
		Limit:          dumpLimit,
		SkipExtract:    dumpSkipExtract,
	}
	if dumpProject != "" {
		in.Project = &dumpProject
	}
	if dumpTags != "" {
		in.Tags = &dumpTags
	}
	if dumpContinues != 0 {
		in.Continues = &dumpContinues
	}

	entry, err := e.Dump(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("dumping: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Dumped session into LoA entry %d (%q)\n", entry.ID, entry.Title)
	}
	return nil
}
