package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags shared across commands.
var (
	flagPath      string
	flagBranch    string
	flagCommit    string
	flagPR        int32
	flagConfig    string
	flagOutput    string
	flagShaLength int
	flagVerbose   bool
	flagExplain   bool
)

// rootCmd is the top-level command for gitsemver.
var rootCmd = &cobra.Command{
	Use:   "gitsemver",
	Short: "Semantic versioning from git history",
	Long:  "gitsemver resolves the next semantic version for a commit by reading its reachable tags, directive-bearing commit messages, and branch metadata.",
	// Default action is resolve.
	RunE: resolveRunE,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", ".", "path to the git repository")
	rootCmd.PersistentFlags().StringVarP(&flagBranch, "branch", "b", "", "branch name override for build metadata (default: detected from HEAD)")
	rootCmd.PersistentFlags().StringVarP(&flagCommit, "commit", "c", "", "commit to resolve (default: HEAD)")
	rootCmd.PersistentFlags().Int32Var(&flagPR, "pr", 0, "pull request number to include in build metadata (0 to omit)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to .gitsemver.yml (default: auto-detect)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "output format: text, json, or yaml")
	rootCmd.PersistentFlags().IntVar(&flagShaLength, "sha-length", 0, "number of characters of the abbreviated commit sha to include in build metadata (0: the config file's sha-length, else 7)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "set the verbose option of the resolver configuration (produces no extra output)")
	rootCmd.PersistentFlags().BoolVar(&flagExplain, "explain", false, "print a human-readable trace of the resolution decision to stderr (never changes the result)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
