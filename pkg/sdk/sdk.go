// Package sdk provides a public Go API for resolving semantic versions
// from git history. It supports both local repositories (via go-git) and
// remote GitHub repositories (via the GitHub API).
//
// Basic usage:
//
//	result, err := sdk.Resolve(sdk.LocalOptions{
//	    Path: "/path/to/repo",
//	})
//	fmt.Println(result.Version) // "1.2.3-SNAPSHOT+branchmain.commits2.sha1234567"
//
//	result, err := sdk.ResolveRemote(sdk.RemoteOptions{
//	    Owner: "myorg",
//	    Repo:  "myrepo",
//	    Token: os.Getenv("GITHUB_TOKEN"),
//	})
//	fmt.Println(result.Version)
package sdk

import (
	"context"
	"errors"
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/config"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/output"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/repo"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/resolve"
)

// LocalOptions configures resolution against a local git repository.
type LocalOptions struct {
	// Path to the git repository. Defaults to "." if empty.
	Path string

	// Branch overrides the branch name recorded in build metadata. Empty
	// means use the branch HEAD points to.
	Branch string

	// Commit is the revision to resolve. Empty means HEAD.
	Commit string

	// PRNumber, if non-nil, is included in build metadata.
	PRNumber *int32

	// ShaLength is the abbreviated commit sha length in build metadata.
	// Defaults to 7 if zero.
	ShaLength int

	// ConfigPath is the path to a .gitsemver.yml file. If empty,
	// auto-detects .gitsemver.yml in the repo root.
	ConfigPath string
}

// RemoteOptions configures resolution via the GitHub API.
type RemoteOptions struct {
	// Owner is the GitHub repository owner (required).
	Owner string

	// Repo is the GitHub repository name (required).
	Repo string

	// Token is a GitHub personal access token, or GITHUB_TOKEN is used.
	Token string

	// AppID is the GitHub App ID for app authentication.
	AppID int64

	// AppKeyPath is the path to a GitHub App private key PEM file.
	AppKeyPath string

	// BaseURL is a custom GitHub API base URL for GitHub Enterprise.
	BaseURL string

	// Ref is the git ref to resolve: branch, tag, or sha. Defaults to
	// "HEAD" (the repository's default branch).
	Ref string

	// PRNumber, if non-nil, is included in build metadata.
	PRNumber *int32

	// ShaLength is the abbreviated commit sha length in build metadata.
	// Defaults to 7 if zero.
	ShaLength int

	// ConfigPath is a local config file path. No remote lookup is
	// performed: a GitHub-hosted repository has no working directory to
	// search for .gitsemver.yml.
	ConfigPath string
}

// Result holds the resolved version in every rendering a caller might
// need.
type Result struct {
	// Version is the full extended rendering: M.m.p[-pre][+meta].
	Version string

	// Standard is the standard rendering without build metadata:
	// M.m.p[-pre].
	Standard string

	Major, Minor, Patch int32
	PreRelease          string
	BuildMetadata       string
	IsFinal             bool
}

func toResult(r output.Result) *Result {
	return &Result{
		Version:       r.FullVersion,
		Standard:      r.Version,
		Major:         r.Major,
		Minor:         r.Minor,
		Patch:         r.Patch,
		PreRelease:    r.PreRelease,
		BuildMetadata: r.BuildMetadata,
		IsFinal:       r.IsFinal,
	}
}

// Resolve resolves the next semantic version from a local git repository.
func Resolve(opts LocalOptions) (*Result, error) {
	path := opts.Path
	if path == "" {
		path = "."
	}

	r, err := repo.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}

	cfg, err := loadLocalConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	v, err := resolve.Resolve(context.Background(), r, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving version: %w", err)
	}
	return toResult(output.NewResult(v)), nil
}

// ResolveRemote resolves the next semantic version via the GitHub API.
func ResolveRemote(opts RemoteOptions) (*Result, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, errors.New("owner and repo are required")
	}

	ctx := context.Background()
	client, err := repo.NewGitHubClient(ctx, repo.GitHubClientConfig{
		Token:      opts.Token,
		AppID:      opts.AppID,
		AppKeyPath: opts.AppKeyPath,
		BaseURL:    opts.BaseURL,
		Owner:      opts.Owner,
	})
	if err != nil {
		return nil, fmt.Errorf("creating GitHub client: %w", err)
	}

	ref := opts.Ref
	if ref == "" {
		ref = "HEAD"
	}
	ghRepo := repo.NewGitHubRepository(client, opts.Owner, opts.Repo, ref)

	cfg, err := loadRemoteConfig(opts)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	v, err := resolve.Resolve(ctx, ghRepo, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving version: %w", err)
	}
	return toResult(output.NewResult(v)), nil
}

func loadLocalConfig(opts LocalOptions) (resolve.Config, error) {
	cfg := resolve.Config{
		BasisCommit:    opts.Commit,
		BranchOverride: opts.Branch,
		PRNumber:       opts.PRNumber,
		ShaLength:      opts.ShaLength,
	}

	path := opts.ConfigPath
	if path == "" {
		path = config.Find(opts.Path)
	}

	builder := config.NewBuilder()
	if path != "" {
		fc, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		builder.Add(fc)
	}
	if err := builder.ApplyDefaults(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadRemoteConfig(opts RemoteOptions) (resolve.Config, error) {
	// BranchOverride is left unset: the GitHubRepository backend already
	// reports opts.Ref as the branch name via GetBranchName when it isn't
	// a bare sha, so the metadata builder picks it up without help.
	cfg := resolve.Config{
		PRNumber:  opts.PRNumber,
		ShaLength: opts.ShaLength,
	}

	builder := config.NewBuilder()
	if opts.ConfigPath != "" {
		fc, err := config.LoadFromFile(opts.ConfigPath)
		if err != nil {
			return cfg, err
		}
		builder.Add(fc)
	}
	if err := builder.ApplyDefaults(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
