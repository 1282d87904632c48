// ABOUTME: CLI command to import arbitrary documents (diary, reference, wisdom, plan, ...)
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/model"
)

var docType string

// NewDocsCmd creates the docs command.
func NewDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Imported documents",
	}
	cmd.AddCommand(newDocsImportCmd())
	return cmd
}

func newDocsImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file> [file...]",
		Short: "Import files as documents",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runDocsImport,
	}
	cmd.Flags().StringVar(&docType, "type", "other", "document type")
	return cmd
}

func runDocsImport(cmd *cobra.Command, args []string) error {
	typ := model.DocumentType(docType)
	if !typ.IsValid() {
		typ = model.DocOther
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	for _, path := range args {
		id, err := e.ImportDocumentFile(cmd.Context(), path, typ)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "  error: %s: %v\n", path, err)
			continue
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ imported %s as document #%d\n", path, id)
		}
	}
	return nil
}
