// Package repo provides the repository abstraction the resolver queries:
// tags, commits, branch name and working-directory cleanliness, for both
// local (go-git) and remote (GitHub API) backends.
package repo

import (
	"context"
	"time"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/semver"
)

// Commit is a single commit as seen by the resolver: just enough to drive
// directive scanning and merge-aware traversal.
type Commit struct {
	Sha     string
	Message string
	// Parents holds every parent SHA; len > 1 marks a merge commit.
	Parents []string
	When    time.Time
}

// IsMerge reports whether this commit has more than one parent.
func (c Commit) IsMerge() bool { return len(c.Parents) > 1 }

// ShortSha returns the first n characters of the SHA, or the whole SHA if
// it is shorter than n.
func (c Commit) ShortSha(n int) string {
	if n >= len(c.Sha) {
		return c.Sha
	}
	return c.Sha[:n]
}

// Tag is a tag whose name parses as a version, together with the commit
// it points to.
type Tag struct {
	Name      string
	CommitSha string
	Version   semver.Version
}

// ParseTagVersion parses a tag name as a version, tolerating a leading
// "v"/"V" (e.g. "v2.3.1"), the conventional prefix git tags carry.
func ParseTagVersion(name string) (semver.Version, error) {
	if len(name) > 1 && (name[0] == 'v' || name[0] == 'V') && name[1] >= '0' && name[1] <= '9' {
		return semver.Parse(name[1:])
	}
	return semver.Parse(name)
}

// Repository is the abstraction the resolver drives. Every method is
// context-aware because the remote (GitHub API) implementation makes
// network calls; the local (go-git) implementation ignores the context
// except for cancellation.
type Repository interface {
	// ResolveRev resolves a revision expression (sha, sha prefix, branch,
	// "HEAD") to a full commit SHA.
	ResolveRev(ctx context.Context, rev string) (string, error)

	// ListAllTags returns every tag in the repository whose name parses as
	// a version, regardless of reachability from any particular commit.
	ListAllTags(ctx context.Context) ([]Tag, error)

	// FindReachableTags returns the subset of version tags reachable from
	// the given commit.
	FindReachableTags(ctx context.Context, commitSha string) ([]Tag, error)

	// IsWorkingDirectoryClean reports whether the working tree has no
	// uncommitted changes. Always true for the remote backend, which has
	// no working tree.
	IsWorkingDirectoryClean(ctx context.Context) (bool, error)

	// GetBranchName returns the friendly name of the branch HEAD points
	// to, or "" when HEAD is detached.
	GetBranchName(ctx context.Context) (string, error)

	// GetCommitsSince returns every commit reachable from `to` but not
	// from `from` (exclusive of from, inclusive of to), in reverse
	// chronological order, walking all parents.
	GetCommitsSince(ctx context.Context, from, to string) ([]Commit, error)

	// CountCommitsSince is the first-parent-only count of commits between
	// from (exclusive) and to (inclusive); it undercounts relative to
	// GetCommitsSince whenever merge commits are present.
	CountCommitsSince(ctx context.Context, from, to string) (int, error)

	// GetAbbreviatedSha returns the first n characters of a commit's SHA.
	GetAbbreviatedSha(ctx context.Context, sha string, n int) (string, error)

	// GetMergedCommits returns every commit reachable only through a
	// merge commit's non-first parents between from (exclusive) and to
	// (inclusive) -- the complement of the first-parent chain.
	GetMergedCommits(ctx context.Context, from, to string) ([]Commit, error)
}
