// ABOUTME: Main entry point for the memexctl CLI
// ABOUTME: Sets up the cobra root command and executes it
package main

import (
	"fmt"
	"os"

	"github.com/memexlabs/memex/cmd/memexctl/commands"
	"github.com/memexlabs/memex/internal/memerr"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(memerr.ExitCode(err))
	}
}
