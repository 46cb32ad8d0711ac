package semver

// PreRelease pairs a classifier with its optional number. The invariant is
// enforced at construction: versioned classifiers always carry a number,
// Snapshot never does.
type PreRelease struct {
	classifier PreReleaseClassifier
	number     PreReleaseNumber
	hasNumber  bool
}

// NewPreRelease validates and constructs a PreRelease. Pass a nil number
// for Snapshot; pass a non-nil number for every other classifier.
func NewPreRelease(classifier PreReleaseClassifier, number *PreReleaseNumber) (PreRelease, error) {
	if classifier.Versioned() {
		if number == nil {
			return PreRelease{}, &MissingPreReleaseNumberError{Classifier: classifier}
		}
		return PreRelease{classifier: classifier, number: *number, hasNumber: true}, nil
	}
	if number != nil {
		return PreRelease{}, &UnexpectedPreReleaseNumberError{Classifier: classifier}
	}
	return PreRelease{classifier: classifier}, nil
}

// NewSnapshot constructs the unversioned Snapshot pre-release.
func NewSnapshot() PreRelease {
	pr, _ := NewPreRelease(Snapshot, nil)
	return pr
}

// Classifier returns the pre-release's classifier.
func (p PreRelease) Classifier() PreReleaseClassifier { return p.classifier }

// Number returns the pre-release number and whether one is present.
func (p PreRelease) Number() (PreReleaseNumber, bool) { return p.number, p.hasNumber }

// compare orders two PreReleases by classifier rank, then by number.
func (p PreRelease) compare(o PreRelease) int {
	if p.classifier.rank != o.classifier.rank {
		if p.classifier.rank < o.classifier.rank {
			return -1
		}
		return 1
	}
	if p.hasNumber && o.hasNumber {
		return p.number.compare(o.number)
	}
	return 0
}

// render returns the dotted pre-release string, e.g. "alpha.1" or "SNAPSHOT".
func (p PreRelease) render() string {
	if !p.hasNumber {
		return p.classifier.Canonical()
	}
	return p.classifier.Canonical() + "." + p.number.String()
}
