// ABOUTME: CLI command to initialize the store
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize the memory store",
		Long:  `Create the SQLite store at MEM_DB_PATH (default $BASE_DIR/memory.db) if absent. The MEMORY archive directory is not created here; extraction creates it on its first write.`,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	e, err := openEngine(cmd.Context())
	if err != nil {
		return err
	}
	defer e.Close()

	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Memory store initialized")
	}
	return nil
}
