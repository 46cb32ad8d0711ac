package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/output"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/repo"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/resolve"
)

var (
	flagToken      string
	flagAppID      int64
	flagAppKeyPath string
	flagGitHubURL  string
	flagRef        string
)

var remoteCmd = &cobra.Command{
	Use:   "remote owner/repo",
	Short: "Resolve a version from a GitHub repository via the REST API",
	Long: `Resolve the next semantic version by reading git history from the
GitHub API. No local clone is required.

Authentication (checked in order):
  1. --token flag or GITHUB_TOKEN env var
  2. --github-app-id + --github-app-key flags or GH_APP_ID + GH_APP_PRIVATE_KEY env vars

Examples:
  GITHUB_TOKEN=ghp_xxx gitsemver remote myorg/myrepo
  gitsemver remote myorg/myrepo --token ghp_xxx --ref main
  gitsemver remote myorg/myrepo --github-app-id 12345 --github-app-key /path/to/key.pem`,
	Args: cobra.ExactArgs(1),
	RunE: remoteRunE,
}

func init() {
	remoteCmd.Flags().StringVar(&flagToken, "token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	remoteCmd.Flags().Int64Var(&flagAppID, "github-app-id", 0, "GitHub App ID (or set GH_APP_ID env var)")
	remoteCmd.Flags().StringVar(&flagAppKeyPath, "github-app-key", "", "path to GitHub App private key PEM file (or set GH_APP_PRIVATE_KEY env var)")
	remoteCmd.Flags().StringVar(&flagGitHubURL, "github-url", "", "GitHub API base URL for GitHub Enterprise (or set GITHUB_API_URL env var)")
	remoteCmd.Flags().StringVar(&flagRef, "ref", "", "git ref to resolve: branch, tag, or sha (default: repo default branch)")

	rootCmd.AddCommand(remoteCmd)
}

func remoteRunE(cmd *cobra.Command, args []string) error {
	owner, repoName, err := parseOwnerRepo(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	client, err := repo.NewGitHubClient(ctx, repo.GitHubClientConfig{
		Token:      flagToken,
		AppID:      flagAppID,
		AppKeyPath: flagAppKeyPath,
		BaseURL:    flagGitHubURL,
		Owner:      owner,
	})
	if err != nil {
		return fmt.Errorf("creating GitHub client: %w", err)
	}

	ref := flagRef
	if ref == "" {
		ref = "HEAD"
	}
	ghRepo := repo.NewGitHubRepository(client, owner, repoName, ref)

	cfg, err := buildConfig(".")
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	v, err := resolve.Resolve(ctx, ghRepo, cfg)
	if err != nil {
		return fmt.Errorf("resolving version: %w", err)
	}

	return output.Write(cmd.OutOrStdout(), output.NewResult(v), output.Format(flagOutput))
}

func parseOwnerRepo(s string) (string, string, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format %q, expected owner/repo", s)
	}
	return parts[0], parts[1], nil
}
