// ABOUTME: CLI commands for the Library-of-Alexandria entity: write, show, quote, list
package commands

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/engine"
)

var (
	loaProject   string
	loaContinues int64
	loaTags      string
	loaLimit     int
	loaListLimit int
)

// NewLoACmd creates the loa command with its write|show|quote|list subcommands.
func NewLoACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loa",
		Short: "Library-of-Alexandria entries: curated extracts spanning a range of messages",
	}
	cmd.AddCommand(newLoAWriteCmd(), newLoAShowCmd(), newLoAQuoteCmd(), newLoAListCmd())
	return cmd
}

func newLoAWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write <title>",
		Short: "Digest messages since the last LoA entry (or a tail limit) into a new one",
		Args:  cobra.ExactArgs(1),
		RunE:  runLoAWrite,
	}
	cmd.Flags().StringVar(&loaProject, "project", "", "project scope")
	cmd.Flags().Int64Var(&loaContinues, "continues", 0, "parent LoA entry id")
	cmd.Flags().StringVar(&loaTags, "tags", "", "comma-separated tags")
	cmd.Flags().IntVar(&loaLimit, "limit", 0, "tail message limit (0 means all since last LoA)")
	return cmd
}

func runLoAWrite(cmd *cobra.Command, args []string) error {
	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	in := engine.LoAWriteInput{Title: args[0], Limit: loaLimit}
	if loaProject != "" {
		in.Project = &loaProject
	}
	if loaTags != "" {
		in.Tags = &loaTags
	}
	if loaContinues != 0 {
		in.Continues = &loaContinues
	}

	entry, err := e.LoAWrite(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("writing loa entry: %w", err)
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote LoA entry %d (%q)\n", entry.ID, entry.Title)
	}
	return nil
}

func newLoAShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one LoA entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runLoAShow,
	}
}

func runLoAShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[0], err)
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	entry, err := e.LoAShow(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("showing loa entry %d: %w", id, err)
	}

	if wantsJSON() {
		data, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (#%d, %s)\n\n%s\n", entry.Title, entry.ID, formatTime(entry.CreatedAt), entry.Extract)
	return nil
}

func newLoAQuoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote <id>",
		Short: "Print the messages spanned by a LoA entry",
		Args:  cobra.ExactArgs(1),
		RunE:  runLoAQuote,
	}
}

func runLoAQuote(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[0], err)
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	messages, err := e.LoAQuote(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("quoting loa entry %d: %w", id, err)
	}

	if wantsJSON() {
		data, err := json.MarshalIndent(messages, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	for _, m := range messages {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", m.Role, m.Content)
	}
	return nil
}

func newLoAListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List LoA entries newest-first",
		Args:  cobra.NoArgs,
		RunE:  runLoAList,
	}
	cmd.Flags().IntVar(&loaListLimit, "limit", 20, "maximum entries to return")
	return cmd
}

func runLoAList(cmd *cobra.Command, args []string) error {
	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	entries, err := e.LoAList(cmd.Context(), loaListLimit)
	if err != nil {
		return fmt.Errorf("listing loa entries: %w", err)
	}

	if len(entries) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No LoA entries")
		}
		return nil
	}

	if wantsJSON() {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tCREATED\tTITLE\n")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, formatTime(e.CreatedAt), e.Title)
	}
	w.Flush()
	return nil
}
