package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for seeker
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seeker",
		Short: "Multi-threaded recursive text search",
		Long: `Seeker recursively searches text files for a pattern, honoring
.gitignore and .ignore exclusion rules discovered along the way.

Files are found by a single directory walker and searched in parallel by a
pool of workers; each file's matches are printed as one contiguous block
under a header naming the file, never interleaved with another file's.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	// Add subcommands
	cmd.AddCommand(NewGrepCommand())

	return cmd
}
