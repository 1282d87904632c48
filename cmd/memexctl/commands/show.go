// ABOUTME: CLI command to show a single row by kind and id
package commands

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/model"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <kind> <id>",
		Short: "Show a single row by kind and id",
		Args:  cobra.ExactArgs(2),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	kind := model.Kind(args[0])
	if !kind.IsValid() {
		return fmt.Errorf("unknown kind %q", args[0])
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[1], err)
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	row, err := e.Show(cmd.Context(), kind, id)
	if err != nil {
		return fmt.Errorf("showing %s %d: %w", kind, id, err)
	}

	if wantsJSON() {
		data, err := json.MarshalIndent(row, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s #%d (%s)\n\n%s\n", kind, row.EntityID(), formatTime(row.EntityCreatedAt()), row.RenderPreview())
	return nil
}
