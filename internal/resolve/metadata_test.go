package resolve_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/repo"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/resolve"
)

func TestNormalizeBranch_LowercasesAndFoldsInvalidCharacters(t *testing.T) {
	require.Equal(t, "feature-abc-123", resolve.NormalizeBranch("Feature/ABC_123!!"))
}

func TestNormalizeBranch_CollapsesRunsAndTrims(t *testing.T) {
	require.Equal(t, "foo-bar", resolve.NormalizeBranch("--foo---bar--"))
}

func TestNormalizeBranch_EmptyAfterFoldingFallsBackToDetached(t *testing.T) {
	require.Equal(t, "detached", resolve.NormalizeBranch("///!!!"))
}

func TestNormalizeBranch_AlreadyCleanIsUnchanged(t *testing.T) {
	require.Equal(t, "main", resolve.NormalizeBranch("main"))
}

func TestBuildMetadata_OrdersIdentifiersPrBranchCommitsShaDirty(t *testing.T) {
	pr := int32(42)
	r := &repo.MockRepository{
		GetBranchNameFunc: func(context.Context) (string, error) {
			return "Feature/ABC_123!!", nil
		},
		CountCommitsSinceFunc: func(_ context.Context, from, to string) (int, error) {
			return 7, nil
		},
		GetAbbreviatedShaFunc: func(_ context.Context, sha string, n int) (string, error) {
			return "abc1234", nil
		},
	}
	m, err := resolve.BuildMetadata(context.Background(), r, resolve.MetadataInput{
		ShaLength: 7,
		PRNumber:  &pr,
		BasisSha:  "abc1234000",
		Dirty:     false,
	})
	require.NoError(t, err)
	require.Equal(t, []string{"pr42", "branchfeature-abc-123", "commits7", "shaabc1234"}, m.Identifiers())
}

func TestBuildMetadata_BranchOverrideWinsOverDetectedBranch(t *testing.T) {
	r := &repo.MockRepository{
		GetBranchNameFunc: func(context.Context) (string, error) {
			return "should-not-be-used", nil
		},
		GetAbbreviatedShaFunc: func(_ context.Context, sha string, n int) (string, error) {
			return "1234567", nil
		},
	}
	m, err := resolve.BuildMetadata(context.Background(), r, resolve.MetadataInput{
		ShaLength:      7,
		BranchOverride: "main",
		BasisSha:       "1234567890",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"branchmain", "commits0", "sha1234567"}, m.Identifiers())
}

func TestBuildMetadata_DetachedHeadFallsBackToDetachedBranch(t *testing.T) {
	r := &repo.MockRepository{
		GetAbbreviatedShaFunc: func(_ context.Context, sha string, n int) (string, error) {
			return "1234567", nil
		},
	}
	m, err := resolve.BuildMetadata(context.Background(), r, resolve.MetadataInput{
		ShaLength: 7,
		BasisSha:  "1234567890",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"branchdetached", "commits0", "sha1234567"}, m.Identifiers())
}

func TestBuildMetadata_DirtyAppendsFinalIdentifier(t *testing.T) {
	r := &repo.MockRepository{
		GetAbbreviatedShaFunc: func(_ context.Context, sha string, n int) (string, error) {
			return "1234567", nil
		},
	}
	m, err := resolve.BuildMetadata(context.Background(), r, resolve.MetadataInput{
		ShaLength:      7,
		BranchOverride: "main",
		BasisSha:       "1234567890",
		Dirty:          true,
	})
	require.NoError(t, err)
	ids := m.Identifiers()
	require.Equal(t, "dirty", ids[len(ids)-1])
}

func TestBuildMetadata_NegativePRNumberIsOmitted(t *testing.T) {
	pr := int32(-1)
	r := &repo.MockRepository{
		GetAbbreviatedShaFunc: func(_ context.Context, sha string, n int) (string, error) {
			return "1234567", nil
		},
	}
	m, err := resolve.BuildMetadata(context.Background(), r, resolve.MetadataInput{
		ShaLength:      7,
		PRNumber:       &pr,
		BranchOverride: "main",
		BasisSha:       "1234567890",
	})
	require.NoError(t, err)
	for _, id := range m.Identifiers() {
		require.NotContains(t, id, "pr")
	}
}

func TestBuildMetadata_RejectsShaLengthOutOfBounds(t *testing.T) {
	r := &repo.MockRepository{}
	_, err := resolve.BuildMetadata(context.Background(), r, resolve.MetadataInput{ShaLength: 6})
	require.Error(t, err)

	_, err = resolve.BuildMetadata(context.Background(), r, resolve.MetadataInput{ShaLength: 41})
	require.Error(t, err)
}
