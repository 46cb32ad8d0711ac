package repo

import "context"

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for
// testing the resolver without a real git repository or network access.
// Each method is backed by a function field; a nil field returns sensible
// zero values.
type MockRepository struct {
	ResolveRevFunc              func(ctx context.Context, rev string) (string, error)
	ListAllTagsFunc             func(ctx context.Context) ([]Tag, error)
	FindReachableTagsFunc       func(ctx context.Context, commitSha string) ([]Tag, error)
	IsWorkingDirectoryCleanFunc func(ctx context.Context) (bool, error)
	GetBranchNameFunc           func(ctx context.Context) (string, error)
	GetCommitsSinceFunc         func(ctx context.Context, from, to string) ([]Commit, error)
	CountCommitsSinceFunc       func(ctx context.Context, from, to string) (int, error)
	GetAbbreviatedShaFunc       func(ctx context.Context, sha string, n int) (string, error)
	GetMergedCommitsFunc        func(ctx context.Context, from, to string) ([]Commit, error)
}

func (m *MockRepository) ResolveRev(ctx context.Context, rev string) (string, error) {
	if m.ResolveRevFunc != nil {
		return m.ResolveRevFunc(ctx, rev)
	}
	return rev, nil
}

func (m *MockRepository) ListAllTags(ctx context.Context) ([]Tag, error) {
	if m.ListAllTagsFunc != nil {
		return m.ListAllTagsFunc(ctx)
	}
	return nil, nil
}

func (m *MockRepository) FindReachableTags(ctx context.Context, commitSha string) ([]Tag, error) {
	if m.FindReachableTagsFunc != nil {
		return m.FindReachableTagsFunc(ctx, commitSha)
	}
	return nil, nil
}

func (m *MockRepository) IsWorkingDirectoryClean(ctx context.Context) (bool, error) {
	if m.IsWorkingDirectoryCleanFunc != nil {
		return m.IsWorkingDirectoryCleanFunc(ctx)
	}
	return true, nil
}

func (m *MockRepository) GetBranchName(ctx context.Context) (string, error) {
	if m.GetBranchNameFunc != nil {
		return m.GetBranchNameFunc(ctx)
	}
	return "", nil
}

func (m *MockRepository) GetCommitsSince(ctx context.Context, from, to string) ([]Commit, error) {
	if m.GetCommitsSinceFunc != nil {
		return m.GetCommitsSinceFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *MockRepository) CountCommitsSince(ctx context.Context, from, to string) (int, error) {
	if m.CountCommitsSinceFunc != nil {
		return m.CountCommitsSinceFunc(ctx, from, to)
	}
	return 0, nil
}

func (m *MockRepository) GetAbbreviatedSha(ctx context.Context, sha string, n int) (string, error) {
	if m.GetAbbreviatedShaFunc != nil {
		return m.GetAbbreviatedShaFunc(ctx, sha, n)
	}
	if n >= len(sha) {
		return sha, nil
	}
	return sha[:n], nil
}

func (m *MockRepository) GetMergedCommits(ctx context.Context, from, to string) ([]Commit, error) {
	if m.GetMergedCommitsFunc != nil {
		return m.GetMergedCommitsFunc(ctx, from, to)
	}
	return nil, nil
}
