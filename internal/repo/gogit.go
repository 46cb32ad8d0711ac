package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// GoGitRepository implements Repository against a local working tree
// using go-git.
type GoGitRepository struct {
	repo    *gogit.Repository
	workDir string
}

// Open opens the git repository containing path, searching parent
// directories the way the git CLI does.
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}
	return &GoGitRepository{repo: r, workDir: wt.Filesystem.Root()}, nil
}

func (r *GoGitRepository) ResolveRev(_ context.Context, rev string) (string, error) {
	h, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", fmt.Errorf("resolving revision %s: %w", rev, err)
	}
	return h.String(), nil
}

// ListAllTags returns every annotated version tag in the repository.
// Lightweight tags (a bare ref with no tag object to peel) are excluded:
// peelToCommit errors for them, and that error is treated the same as a
// non-version tag name — skipped silently rather than surfaced.
func (r *GoGitRepository) ListAllTags(_ context.Context) ([]Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := strings.TrimPrefix(ref.Name().String(), "refs/tags/")
		v, verr := ParseTagVersion(name)
		if verr != nil {
			return nil // not a version tag, skip silently
		}
		sha, perr := r.peelToCommit(ref.Hash())
		if perr != nil {
			return nil // lightweight tag, skip silently
		}
		tags = append(tags, Tag{Name: name, CommitSha: sha, Version: v})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return tags, nil
}

func (r *GoGitRepository) FindReachableTags(ctx context.Context, commitSha string) ([]Tag, error) {
	all, err := r.ListAllTags(ctx)
	if err != nil {
		return nil, err
	}
	ancestors, err := r.ancestorSet(commitSha)
	if err != nil {
		return nil, err
	}
	var reachable []Tag
	for _, t := range all {
		if ancestors[t.CommitSha] {
			reachable = append(reachable, t)
		}
	}
	return reachable, nil
}

func (r *GoGitRepository) IsWorkingDirectoryClean(_ context.Context) (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("getting worktree status: %w", err)
	}
	return status.IsClean(), nil
}

func (r *GoGitRepository) GetBranchName(_ context.Context) (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}
	if !ref.Name().IsBranch() {
		return "", nil
	}
	return strings.TrimPrefix(ref.Name().String(), "refs/heads/"), nil
}

func (r *GoGitRepository) GetCommitsSince(_ context.Context, from, to string) ([]Commit, error) {
	excluded, err := r.ancestorSetIfNonEmpty(from)
	if err != nil {
		return nil, err
	}

	toHash := plumbing.NewHash(to)
	iter, err := r.repo.Log(&gogit.LogOptions{From: toHash, Order: gogit.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("getting commit log: %w", err)
	}

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if excluded[c.Hash.String()] {
			return nil
		}
		commits = append(commits, convertCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating commits: %w", err)
	}
	return commits, nil
}

// CountCommitsSince walks only first parents, so a merge commit counts as
// one step regardless of how many commits its non-first parents bring in.
func (r *GoGitRepository) CountCommitsSince(_ context.Context, from, to string) (int, error) {
	chain, err := r.firstParentChain(from, to)
	if err != nil {
		return 0, err
	}
	return len(chain), nil
}

func (r *GoGitRepository) GetAbbreviatedSha(_ context.Context, sha string, n int) (string, error) {
	if n >= len(sha) {
		return sha, nil
	}
	return sha[:n], nil
}

// GetMergedCommits returns every commit in GetCommitsSince's full ancestry
// walk that is absent from the first-parent-only chain: the commits that
// entered history only through a merge.
func (r *GoGitRepository) GetMergedCommits(ctx context.Context, from, to string) ([]Commit, error) {
	all, err := r.GetCommitsSince(ctx, from, to)
	if err != nil {
		return nil, err
	}
	mainline, err := r.firstParentChain(from, to)
	if err != nil {
		return nil, err
	}
	onMainline := make(map[string]bool, len(mainline))
	for _, c := range mainline {
		onMainline[c.Sha] = true
	}

	var merged []Commit
	for _, c := range all {
		if !onMainline[c.Sha] {
			merged = append(merged, c)
		}
	}
	return merged, nil
}

// firstParentChain walks only first parents from `to`, stopping at (but
// excluding) `from`.
func (r *GoGitRepository) firstParentChain(from, to string) ([]Commit, error) {
	var chain []Commit
	hash := plumbing.NewHash(to)
	for {
		if hash.IsZero() {
			break
		}
		if from != "" && hash.String() == from {
			break
		}
		c, err := r.repo.CommitObject(hash)
		if err != nil {
			return nil, fmt.Errorf("loading commit %s: %w", hash, err)
		}
		chain = append(chain, convertCommit(c))
		if c.NumParents() == 0 {
			break
		}
		hash = c.ParentHashes[0]
	}
	return chain, nil
}

// ancestorSet returns every commit sha reachable from commitSha, inclusive.
func (r *GoGitRepository) ancestorSet(commitSha string) (map[string]bool, error) {
	set := make(map[string]bool)
	iter, err := r.repo.Log(&gogit.LogOptions{From: plumbing.NewHash(commitSha)})
	if err != nil {
		return nil, fmt.Errorf("walking ancestry of %s: %w", commitSha, err)
	}
	err = iter.ForEach(func(c *object.Commit) error {
		set[c.Hash.String()] = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating ancestry of %s: %w", commitSha, err)
	}
	return set, nil
}

func (r *GoGitRepository) ancestorSetIfNonEmpty(sha string) (map[string]bool, error) {
	if sha == "" {
		return map[string]bool{}, nil
	}
	return r.ancestorSet(sha)
}

// peelToCommit resolves an annotated tag object to the commit it points
// at. It errors for lightweight tags (no TagObject at hash), which have
// no annotation to peel and are excluded from ListAllTags entirely.
func (r *GoGitRepository) peelToCommit(hash plumbing.Hash) (string, error) {
	obj, err := r.repo.TagObject(hash)
	if err != nil {
		return "", fmt.Errorf("not an annotated tag: %w", err)
	}
	c, err := obj.Commit()
	if err != nil {
		return "", fmt.Errorf("peeling annotated tag: %w", err)
	}
	return c.Hash.String(), nil
}

func convertCommit(c *object.Commit) Commit {
	parents := make([]string, len(c.ParentHashes))
	for i, p := range c.ParentHashes {
		parents[i] = p.String()
	}
	return Commit{
		Sha:     c.Hash.String(),
		Message: c.Message,
		Parents: parents,
		When:    c.Committer.When,
	}
}

// WorkingDirectory returns the root of the worktree, used by callers that
// need the filesystem path (e.g. discovering a .gitsemver.yml).
func (r *GoGitRepository) WorkingDirectory() string {
	return filepath.Clean(r.workDir)
}
