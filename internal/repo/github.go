package repo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"strconv"

	"github.com/bradleyfalzon/ghinstallation/v2"
	gh "github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// Compile-time check that GitHubRepository implements Repository.
var _ Repository = (*GitHubRepository)(nil)

// GitHubClientConfig configures authentication to the GitHub REST API.
// Auth resolution order: Token -> GITHUB_TOKEN env -> GitHub App
// credentials -> error.
type GitHubClientConfig struct {
	Token      string
	AppID      int64
	AppKeyPath string
	BaseURL    string
	Owner      string
}

// NewGitHubClient builds an authenticated go-github client per
// GitHubClientConfig's resolution order.
func NewGitHubClient(ctx context.Context, cfg GitHubClientConfig) (*gh.Client, error) {
	baseURL := resolveEnv(cfg.BaseURL, "GITHUB_API_URL")

	if token := resolveEnv(cfg.Token, "GITHUB_TOKEN"); token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient := oauth2.NewClient(ctx, ts)
		if baseURL != "" {
			return gh.NewClient(httpClient).WithEnterpriseURLs(baseURL, baseURL)
		}
		return gh.NewClient(httpClient), nil
	}

	appID := cfg.AppID
	if appID == 0 {
		if s := os.Getenv("GH_APP_ID"); s != "" {
			if v, err := strconv.ParseInt(s, 10, 64); err == nil {
				appID = v
			}
		}
	}
	appKey := resolveEnv(cfg.AppKeyPath, "GH_APP_PRIVATE_KEY")
	if appID != 0 && appKey != "" {
		return newAppClient(appID, appKey, baseURL)
	}

	return nil, errors.New("no GitHub authentication provided: set GITHUB_TOKEN or provide an app id and key")
}

func newAppClient(appID int64, keyPath, baseURL string) (*gh.Client, error) {
	transport, err := ghinstallation.NewAppsTransportKeyFromFile(http.DefaultTransport, appID, keyPath)
	if err != nil {
		return nil, fmt.Errorf("creating GitHub App transport: %w", err)
	}
	if baseURL != "" {
		transport.BaseURL = baseURL
	}
	client := gh.NewClient(&http.Client{Transport: transport})
	if baseURL != "" {
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("configuring enterprise URLs: %w", err)
		}
	}
	return client, nil
}

func resolveEnv(value, envVar string) string {
	if value != "" {
		return value
	}
	return os.Getenv(envVar)
}

// GitHubRepository implements Repository against the GitHub REST API, for
// resolving a version against a repository the caller hasn't cloned (e.g.
// a CI job evaluating a pull request from a bot context).
type GitHubRepository struct {
	client *gh.Client
	owner  string
	repo   string
	ref    string
}

// NewGitHubRepository builds a GitHubRepository. ref is the branch, tag,
// or SHA the resolver treats as HEAD.
func NewGitHubRepository(client *gh.Client, owner, repoName, ref string) *GitHubRepository {
	return &GitHubRepository{client: client, owner: owner, repo: repoName, ref: ref}
}

var shaPattern = regexp.MustCompile(`^[0-9a-f]{7,40}$`)

func (r *GitHubRepository) ResolveRev(ctx context.Context, rev string) (string, error) {
	if rev == "" || rev == "HEAD" {
		rev = r.ref
	}
	if shaPattern.MatchString(rev) {
		commit, _, err := r.client.Repositories.GetCommit(ctx, r.owner, r.repo, rev, nil)
		if err != nil {
			return "", fmt.Errorf("resolving sha %s: %w", rev, err)
		}
		return commit.GetSHA(), nil
	}
	branch, _, err := r.client.Repositories.GetBranch(ctx, r.owner, r.repo, rev, 0)
	if err != nil {
		return "", fmt.Errorf("resolving branch %s: %w", rev, err)
	}
	return branch.GetCommit().GetSHA(), nil
}

func (r *GitHubRepository) ListAllTags(ctx context.Context) ([]Tag, error) {
	opts := &gh.ListOptions{PerPage: 100}
	var tags []Tag
	for {
		ghTags, resp, err := r.client.Repositories.ListTags(ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing tags: %w", err)
		}
		for _, t := range ghTags {
			v, verr := ParseTagVersion(t.GetName())
			if verr != nil {
				continue
			}
			tags = append(tags, Tag{Name: t.GetName(), CommitSha: t.GetCommit().GetSHA(), Version: v})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return tags, nil
}

func (r *GitHubRepository) FindReachableTags(ctx context.Context, commitSha string) ([]Tag, error) {
	all, err := r.ListAllTags(ctx)
	if err != nil {
		return nil, err
	}
	var reachable []Tag
	for _, t := range all {
		comparison, _, err := r.client.Repositories.CompareCommits(ctx, r.owner, r.repo, t.CommitSha, commitSha, nil)
		if err != nil {
			return nil, fmt.Errorf("comparing %s..%s: %w", t.CommitSha, commitSha, err)
		}
		// t.CommitSha is an ancestor of commitSha when it IS commitSha or
		// GitHub reports commitSha strictly ahead of it.
		if t.CommitSha == commitSha || comparison.GetStatus() == "ahead" {
			reachable = append(reachable, t)
		}
	}
	return reachable, nil
}

// IsWorkingDirectoryClean is always true: the remote backend has no
// working tree to be dirty.
func (r *GitHubRepository) IsWorkingDirectoryClean(context.Context) (bool, error) {
	return true, nil
}

func (r *GitHubRepository) GetBranchName(ctx context.Context) (string, error) {
	if shaPattern.MatchString(r.ref) {
		return "", nil
	}
	return r.ref, nil
}

func (r *GitHubRepository) GetCommitsSince(ctx context.Context, from, to string) ([]Commit, error) {
	opts := &gh.CommitsListOptions{SHA: to, ListOptions: gh.ListOptions{PerPage: 100}}
	var out []Commit
	for {
		ghCommits, resp, err := r.client.Repositories.ListCommits(ctx, r.owner, r.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("listing commits: %w", err)
		}
		for _, c := range ghCommits {
			if from != "" && c.GetSHA() == from {
				return out, nil
			}
			out = append(out, convertGitHubCommit(c))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (r *GitHubRepository) CountCommitsSince(ctx context.Context, from, to string) (int, error) {
	if from == "" {
		commits, err := r.GetCommitsSince(ctx, from, to)
		if err != nil {
			return 0, err
		}
		return len(commits), nil
	}
	comparison, _, err := r.client.Repositories.CompareCommits(ctx, r.owner, r.repo, from, to, nil)
	if err != nil {
		return 0, fmt.Errorf("comparing %s..%s: %w", from, to, err)
	}
	return comparison.GetAheadBy(), nil
}

func (r *GitHubRepository) GetAbbreviatedSha(_ context.Context, sha string, n int) (string, error) {
	if n >= len(sha) {
		return sha, nil
	}
	return sha[:n], nil
}

// GetMergedCommits on the REST backend cannot distinguish first-parent
// ancestry from full ancestry without walking parent graphs commit by
// commit (the REST compare endpoint reports linear ahead/behind counts
// only), so it conservatively reports no merged-only commits. Callers
// that need exact merge attribution on GitHub-hosted history should use
// the local go-git backend against a clone.
func (r *GitHubRepository) GetMergedCommits(context.Context, string, string) ([]Commit, error) {
	return nil, nil
}

func convertGitHubCommit(c *gh.RepositoryCommit) Commit {
	var parents []string
	for _, p := range c.Parents {
		parents = append(parents, p.GetSHA())
	}
	when := c.GetCommit().GetCommitter().GetDate().Time
	return Commit{
		Sha:     c.GetSHA(),
		Message: c.GetCommit().GetMessage(),
		Parents: parents,
		When:    when,
	}
}
