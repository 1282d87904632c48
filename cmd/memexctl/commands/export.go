// ABOUTME: CLI command to export the whole store to a YAML or Markdown file
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/export"
)

var (
	exportOutput string
	exportFormat string
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export decisions, learnings, breadcrumbs, LoA, TELOS, and documents",
		Long: `Export every decision, learning, breadcrumb, LoA entry, TELOS entry, and
document in the store to a single file, in yaml or markdown format.

Examples:
  memexctl export -o backup.yaml
  memexctl export -o report.md -f markdown`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file path (required)")
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "export format: yaml or markdown")
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportOutput == "" {
		return fmt.Errorf("--output is required")
	}

	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	data, err := e.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer f.Close()

	switch exportFormat {
	case "yaml":
		if err := export.WriteYAML(f, data); err != nil {
			return err
		}
	case "markdown", "md":
		if err := export.WriteMarkdown(f, data); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q: want yaml or markdown", exportFormat)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported to %s (%s)\n", exportOutput, exportFormat)
	}
	return nil
}
