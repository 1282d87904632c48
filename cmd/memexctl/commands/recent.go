// ABOUTME: CLI command to list recent rows of a kind
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/model"
)

var (
	recentProject string
	recentLimit   int
)

// NewRecentCmd creates the recent command.
func NewRecentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent [kind]",
		Short: "List the most recent rows of a kind (default messages)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRecent,
	}
	cmd.Flags().StringVar(&recentProject, "project", "", "restrict to a project")
	cmd.Flags().IntVar(&recentLimit, "limit", 20, "maximum rows to return")
	return cmd
}

func runRecent(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(recentLimit, "limit"); err != nil {
		return err
	}
	kind := model.KindMessage
	if len(args) == 1 {
		kind = model.Kind(args[0])
		if !kind.IsValid() {
			return fmt.Errorf("unknown kind %q", args[0])
		}
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	rows, err := e.Recent(cmd.Context(), kind, recentProject, recentLimit)
	if err != nil {
		return fmt.Errorf("listing recent %s: %w", kind, err)
	}

	if len(rows) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No %s found\n", kind)
		}
		return nil
	}

	if wantsJSON() {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tCREATED\tPROJECT\tPREVIEW\n")
	for _, r := range rows {
		project := r.EntityProject()
		if project == "" {
			project = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.EntityID(), formatTime(r.EntityCreatedAt()), project, truncate(r.RenderPreview(), 70))
	}
	w.Flush()
	return nil
}
