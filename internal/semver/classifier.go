package semver

import "strings"

// PreReleaseClassifier is one of the six variants in the fixed pre-release
// hierarchy. The zero value is not a valid classifier; always obtain one
// from the exported constants or ClassifierByAlias.
type PreReleaseClassifier struct {
	rank     uint8
	aliases  []string
	versioned bool
}

// The six classifiers, in ascending precedence order. Precedence is
// total and fixed: Dev < Milestone < Alpha < Beta < ReleaseCandidate <
// Snapshot.
var (
	Dev               = PreReleaseClassifier{rank: 0, aliases: []string{"dev"}, versioned: true}
	Milestone         = PreReleaseClassifier{rank: 1, aliases: []string{"milestone", "m"}, versioned: true}
	Alpha             = PreReleaseClassifier{rank: 2, aliases: []string{"alpha", "a"}, versioned: true}
	Beta              = PreReleaseClassifier{rank: 3, aliases: []string{"beta", "b"}, versioned: true}
	ReleaseCandidate  = PreReleaseClassifier{rank: 4, aliases: []string{"rc", "cr"}, versioned: true}
	Snapshot          = PreReleaseClassifier{rank: 5, aliases: []string{"SNAPSHOT", "snapshot"}, versioned: false}
)

// allClassifiers lists every classifier for alias lookup, in precedence order.
var allClassifiers = []PreReleaseClassifier{Dev, Milestone, Alpha, Beta, ReleaseCandidate, Snapshot}

// Rank returns the classifier's position in the total precedence order.
// Higher ranks outrank lower ones.
func (c PreReleaseClassifier) Rank() uint8 { return c.rank }

// Versioned reports whether this classifier requires a pre-release number.
// Every classifier except Snapshot is versioned.
func (c PreReleaseClassifier) Versioned() bool { return c.versioned }

// Canonical returns the canonical (first-listed) alias for rendering.
func (c PreReleaseClassifier) Canonical() string { return c.aliases[0] }

// String implements fmt.Stringer using the canonical alias.
func (c PreReleaseClassifier) String() string { return c.Canonical() }

// Equal reports whether two classifiers are the same variant.
func (c PreReleaseClassifier) Equal(other PreReleaseClassifier) bool {
	return c.rank == other.rank
}

// ClassifierByAlias looks up a classifier by one of its case-insensitive
// aliases. Returns ok=false when no classifier recognizes the alias.
func ClassifierByAlias(alias string) (PreReleaseClassifier, bool) {
	lower := strings.ToLower(alias)
	for _, c := range allClassifiers {
		for _, a := range c.aliases {
			if strings.ToLower(a) == lower {
				return c, true
			}
		}
	}
	return PreReleaseClassifier{}, false
}
