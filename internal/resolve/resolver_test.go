package resolve_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/repo"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/resolve"
)

// Scenario 1: repository tagged v2.3.1 on HEAD, clean worktree => "2.3.1".
func TestResolve_Scenario1_TaggedHeadCleanWorktreeReturnsTagVerbatim(t *testing.T) {
	tagVersion := mustParse(t, "2.3.1")
	r := &repo.MockRepository{
		ResolveRevFunc: func(context.Context, string) (string, error) { return "head0001", nil },
		ListAllTagsFunc: func(context.Context) ([]repo.Tag, error) {
			return []repo.Tag{{Name: "v2.3.1", CommitSha: "head0001", Version: tagVersion}}, nil
		},
		IsWorkingDirectoryCleanFunc: func(context.Context) (bool, error) { return true, nil },
	}
	got, err := resolve.Resolve(context.Background(), r, resolve.Config{})
	require.NoError(t, err)
	require.Equal(t, "2.3.1", got.String())
	require.True(t, got.IsFinal())
}

// Scenario 2: base 1.4.5 (final), no directives, clean branch main, 0
// non-merge commits, sha prefix 1234567, clean worktree =>
// "1.4.6-SNAPSHOT+branchmain.commits0.sha1234567".
func TestResolve_Scenario2_FinalBaseNoDirectivesPatchIncrement(t *testing.T) {
	base := mustParse(t, "1.4.5")
	r := &repo.MockRepository{
		ResolveRevFunc: func(context.Context, string) (string, error) { return "1234567890", nil },
		ListAllTagsFunc: func(context.Context) ([]repo.Tag, error) {
			return []repo.Tag{{Name: "1.4.5", CommitSha: "base000000", Version: base}}, nil
		},
		IsWorkingDirectoryCleanFunc: func(context.Context) (bool, error) { return true, nil },
		FindReachableTagsFunc: func(context.Context, string) ([]repo.Tag, error) {
			return []repo.Tag{{Name: "1.4.5", CommitSha: "base000000", Version: base}}, nil
		},
		GetCommitsSinceFunc: func(context.Context, string, string) ([]repo.Commit, error) {
			return nil, nil
		},
		GetBranchNameFunc: func(context.Context) (string, error) { return "main", nil },
		CountCommitsSinceFunc: func(context.Context, string, string) (int, error) {
			return 0, nil
		},
		GetAbbreviatedShaFunc: func(_ context.Context, sha string, n int) (string, error) {
			return "1234567", nil
		},
	}
	got, err := resolve.Resolve(context.Background(), r, resolve.Config{})
	require.NoError(t, err)
	require.Equal(t, "1.4.6-SNAPSHOT+branchmain.commits0.sha1234567", got.Extended())
}

// Scenario 3: base 3.0.0-rc.3, no directives => target core 3.0.0 =>
// "3.0.0-SNAPSHOT+<meta>".
func TestResolve_Scenario3_PreReleaseBaseUnchangedCore(t *testing.T) {
	base := mustParse(t, "3.0.0-rc.3")
	r := &repo.MockRepository{
		ResolveRevFunc: func(context.Context, string) (string, error) { return "headsha0000", nil },
		ListAllTagsFunc: func(context.Context) ([]repo.Tag, error) {
			return []repo.Tag{{Name: "3.0.0-rc.3", CommitSha: "base000000", Version: base}}, nil
		},
		IsWorkingDirectoryCleanFunc: func(context.Context) (bool, error) { return true, nil },
		FindReachableTagsFunc: func(context.Context, string) ([]repo.Tag, error) {
			return []repo.Tag{{Name: "3.0.0-rc.3", CommitSha: "base000000", Version: base}}, nil
		},
		GetCommitsSinceFunc: func(context.Context, string, string) ([]repo.Commit, error) {
			return nil, nil
		},
		GetBranchNameFunc: func(context.Context) (string, error) { return "main", nil },
		GetAbbreviatedShaFunc: func(_ context.Context, sha string, n int) (string, error) {
			return "headsha", nil
		},
	}
	got, err := resolve.Resolve(context.Background(), r, resolve.Config{})
	require.NoError(t, err)
	require.Equal(t, "3.0.0-SNAPSHOT", got.String())
}

// Scenario 4: reachable final 2.2.5, commit "target: 2.2.4" => rejected by
// Rule A => falls back to the default derivation => "2.2.6-SNAPSHOT+<meta>".
func TestResolve_Scenario4_TargetBelowReachableFinalIsRejectedByRuleA(t *testing.T) {
	base := mustParse(t, "2.2.5")
	r := &repo.MockRepository{
		ResolveRevFunc: func(context.Context, string) (string, error) { return "headsha0000", nil },
		ListAllTagsFunc: func(context.Context) ([]repo.Tag, error) {
			return []repo.Tag{{Name: "2.2.5", CommitSha: "base000000", Version: base}}, nil
		},
		IsWorkingDirectoryCleanFunc: func(context.Context) (bool, error) { return true, nil },
		FindReachableTagsFunc: func(context.Context, string) ([]repo.Tag, error) {
			return []repo.Tag{{Name: "2.2.5", CommitSha: "base000000", Version: base}}, nil
		},
		GetCommitsSinceFunc: func(context.Context, string, string) ([]repo.Commit, error) {
			return []repo.Commit{{Sha: "commitaaa1", Message: "target: 2.2.4"}}, nil
		},
		GetBranchNameFunc: func(context.Context) (string, error) { return "main", nil },
		GetAbbreviatedShaFunc: func(_ context.Context, sha string, n int) (string, error) {
			return "headsha", nil
		},
	}
	got, err := resolve.Resolve(context.Background(), r, resolve.Config{})
	require.NoError(t, err)
	require.Equal(t, "2.2.6-SNAPSHOT", got.String())
}

// Scenario 5: no base tag, repo's highest final 4.3.0, no valid target =>
// "5.0.0-SNAPSHOT+<meta>".
func TestResolve_Scenario5_NoReachableBaseFallsBackToRepoHighestPlusOneMajor(t *testing.T) {
	repoHighest := mustParse(t, "4.3.0")
	r := &repo.MockRepository{
		ResolveRevFunc: func(context.Context, string) (string, error) { return "headsha0000", nil },
		ListAllTagsFunc: func(context.Context) ([]repo.Tag, error) {
			return []repo.Tag{{Name: "4.3.0", CommitSha: "unreachable0", Version: repoHighest}}, nil
		},
		IsWorkingDirectoryCleanFunc: func(context.Context) (bool, error) { return true, nil },
		FindReachableTagsFunc: func(context.Context, string) ([]repo.Tag, error) {
			return nil, nil
		},
		GetCommitsSinceFunc: func(context.Context, string, string) ([]repo.Commit, error) {
			return nil, nil
		},
		GetBranchNameFunc: func(context.Context) (string, error) { return "main", nil },
		GetAbbreviatedShaFunc: func(_ context.Context, sha string, n int) (string, error) {
			return "headsha", nil
		},
	}
	got, err := resolve.Resolve(context.Background(), r, resolve.Config{})
	require.NoError(t, err)
	require.Equal(t, "5.0.0-SNAPSHOT", got.String())
}

// Scenario 6: branch raw "Feature/ABC_123!!", 7 non-merge commits, PR 42,
// sha abc1234, clean => metadata pr42.branchfeature-abc-123.commits7.shaabc1234.
func TestResolve_Scenario6_MetadataNormalizesBranchAndIncludesPR(t *testing.T) {
	base := mustParse(t, "1.0.0")
	pr := int32(42)
	r := &repo.MockRepository{
		ResolveRevFunc: func(context.Context, string) (string, error) { return "abc1234000", nil },
		ListAllTagsFunc: func(context.Context) ([]repo.Tag, error) {
			return []repo.Tag{{Name: "1.0.0", CommitSha: "base000000", Version: base}}, nil
		},
		IsWorkingDirectoryCleanFunc: func(context.Context) (bool, error) { return true, nil },
		FindReachableTagsFunc: func(context.Context, string) ([]repo.Tag, error) {
			return []repo.Tag{{Name: "1.0.0", CommitSha: "base000000", Version: base}}, nil
		},
		GetCommitsSinceFunc: func(context.Context, string, string) ([]repo.Commit, error) {
			return nil, nil
		},
		GetBranchNameFunc: func(context.Context) (string, error) { return "Feature/ABC_123!!", nil },
		CountCommitsSinceFunc: func(context.Context, string, string) (int, error) {
			return 7, nil
		},
		GetAbbreviatedShaFunc: func(_ context.Context, sha string, n int) (string, error) {
			return "abc1234", nil
		},
	}
	got, err := resolve.Resolve(context.Background(), r, resolve.Config{PRNumber: &pr})
	require.NoError(t, err)
	require.Equal(t, "1.0.1-SNAPSHOT+pr42.branchfeature-abc-123.commits7.shaabc1234", got.Extended())
}
