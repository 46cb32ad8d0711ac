package semver

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifierByAlias_CaseInsensitiveAndKnownAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  PreReleaseClassifier
	}{
		{"dev", Dev},
		{"DEV", Dev},
		{"milestone", Milestone},
		{"M", Milestone},
		{"alpha", Alpha},
		{"a", Alpha},
		{"beta", Beta},
		{"b", Beta},
		{"rc", ReleaseCandidate},
		{"CR", ReleaseCandidate},
		{"SNAPSHOT", Snapshot},
		{"snapshot", Snapshot},
	}
	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			got, ok := ClassifierByAlias(tt.alias)
			require.True(t, ok)
			require.True(t, got.Equal(tt.want))
		})
	}
}

func TestClassifierByAlias_Unknown(t *testing.T) {
	_, ok := ClassifierByAlias("bogus")
	require.False(t, ok)
}

func TestPrecedenceOrdering(t *testing.T) {
	ordered := []PreReleaseClassifier{Dev, Milestone, Alpha, Beta, ReleaseCandidate, Snapshot}
	for i := 0; i < len(ordered)-1; i++ {
		require.Less(t, ordered[i].Rank(), ordered[i+1].Rank())
	}
}

func TestSnapshot_NotVersioned(t *testing.T) {
	require.False(t, Snapshot.Versioned())
	for _, c := range []PreReleaseClassifier{Dev, Milestone, Alpha, Beta, ReleaseCandidate} {
		require.True(t, c.Versioned())
	}
}
