// ABOUTME: Root cobra command wiring every subcommand and shared global flags
// ABOUTME: Grounded on the teacher's cmd/memory/commands root/utils idiom (quiet/verbose/outputFormat package globals)
package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/memexlabs/memex/internal/config"
	"github.com/memexlabs/memex/internal/engine"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// versionInfo carries build metadata set from main via SetVersion.
var versionInfo = struct {
	Version, Commit, Date string
}{Version: "dev", Commit: "none", Date: "unknown"}

// SetVersion records build information for the version command.
func SetVersion(version, commit, date string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.Date = date
}

// NewRootCmd builds the memexctl root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memexctl [query]",
		Short: "Persistent cross-session memory for coding assistants",
		Long: `memexctl is the command-line surface over the memory engine: sessions,
messages, decisions, learnings, breadcrumbs, LoA entries, TELOS, and
documents, with hybrid lexical+vector search and an LLM transcript
extraction pipeline.

A bare query with no subcommand runs hybrid search, e.g. "memexctl
how did we fix the flaky embed test".`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runHybrid(cmd, []string{strings.Join(args, " ")})
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "output format: auto|table|json")

	cmd.AddCommand(
		NewInitCmd(),
		NewAddCmd(),
		NewSearchCmd(),
		NewSemanticCmd(),
		NewHybridCmd(),
		NewRecentCmd(),
		NewShowCmd(),
		NewStatsCmd(),
		NewImportCmd(),
		NewLoACmd(),
		NewDumpCmd(),
		NewEmbedCmd(),
		NewTelosCmd(),
		NewDocsCmd(),
		NewExportCmd(),
		NewMCPCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute builds the root command and runs it.
func Execute() error {
	return NewRootCmd().Execute()
}

// openEngine loads config and returns an initialized Engine, the one path
// every subcommand (other than version) uses to reach the store.
func openEngine(ctx context.Context) (*engine.Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	e := engine.Open(cfg)
	if err := e.Init(ctx); err != nil {
		return nil, fmt.Errorf("initializing engine: %w", err)
	}
	return e, nil
}
