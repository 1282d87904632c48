// ABOUTME: CLI command to import TELOS purpose-framework files
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/model"
)

var telosType string

// NewTelosCmd creates the telos command.
func NewTelosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "telos",
		Short: "TELOS purpose-framework entries",
	}
	cmd.AddCommand(newTelosImportCmd())
	return cmd
}

func newTelosImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file> [file...]",
		Short: "Import TELOS entries from markdown files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runTelosImport,
	}
	cmd.Flags().StringVar(&telosType, "type", "other", "TELOS node type")
	return cmd
}

func runTelosImport(cmd *cobra.Command, args []string) error {
	typ := model.TelosType(telosType)
	if !typ.IsValid() {
		typ = model.TelosOther
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	for _, path := range args {
		id, err := e.ImportTelosFile(cmd.Context(), path, typ)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "  error: %s: %v\n", path, err)
			continue
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ imported %s as telos #%d\n", path, id)
		}
	}
	return nil
}
