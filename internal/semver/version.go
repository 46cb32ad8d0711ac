package semver

// Core is the (major, minor, patch) triple, independent of any
// pre-release classifier or build metadata.
type Core struct {
	Major MajorVersion
	Minor MinorVersion
	Patch PatchNumber
}

// NewCore constructs a Core from already-validated components.
func NewCore(major MajorVersion, minor MinorVersion, patch PatchNumber) Core {
	return Core{Major: major, Minor: minor, Patch: patch}
}

// Compare orders two cores purely numerically.
func (c Core) Compare(o Core) int {
	if c.Major.v != o.Major.v {
		if c.Major.v < o.Major.v {
			return -1
		}
		return 1
	}
	if c.Minor.v != o.Minor.v {
		if c.Minor.v < o.Minor.v {
			return -1
		}
		return 1
	}
	if c.Patch.v != o.Patch.v {
		if c.Patch.v < o.Patch.v {
			return -1
		}
		return 1
	}
	return 0
}

func (c Core) String() string {
	return c.Major.String() + "." + c.Minor.String() + "." + c.Patch.String()
}

// Version is the full tuple (major, minor, patch, preRelease?, metadata?).
// Every method is pure: it returns a new Version rather than mutating the
// receiver.
type Version struct {
	core       Core
	preRelease PreRelease
	hasPre     bool
	metadata   Metadata
	hasMeta    bool
}

// NewVersion constructs a Version from its components. Pass preRelease=nil
// for a final version and metadata=nil for no build metadata.
func NewVersion(major MajorVersion, minor MinorVersion, patch PatchNumber, preRelease *PreRelease, metadata *Metadata) Version {
	v := Version{core: Core{major, minor, patch}}
	if preRelease != nil {
		v.preRelease = *preRelease
		v.hasPre = true
	}
	if metadata != nil {
		v.metadata = *metadata
		v.hasMeta = true
	}
	return v
}

// Core returns the version's (major, minor, patch) triple as a Version
// with pre-release and metadata stripped.
func (v Version) Core() Version {
	return Version{core: v.core}
}

// CoreTriple returns the raw Core value for use by the target calculator.
func (v Version) CoreTriple() Core { return v.core }

// Major, Minor, Patch expose the numeric components directly.
func (v Version) Major() MajorVersion { return v.core.Major }
func (v Version) Minor() MinorVersion { return v.core.Minor }
func (v Version) Patch() PatchNumber  { return v.core.Patch }

// PreRelease returns the pre-release and whether one is present.
func (v Version) PreRelease() (PreRelease, bool) { return v.preRelease, v.hasPre }

// Metadata returns the build metadata and whether any is present.
func (v Version) Metadata() (Metadata, bool) { return v.metadata, v.hasMeta }

// IsFinal reports that the version carries no pre-release classifier.
func (v Version) IsFinal() bool { return !v.hasPre }

// IsPreRelease is the negation of IsFinal.
func (v Version) IsPreRelease() bool { return v.hasPre }

// IsSnapshot reports whether the pre-release classifier is Snapshot.
func (v Version) IsSnapshot() bool {
	return v.hasPre && v.preRelease.classifier.Equal(Snapshot)
}

// IsStable reports major > 0 and not a snapshot.
func (v Version) IsStable() bool {
	return v.core.Major.v > 0 && !v.IsSnapshot()
}

// WithMetadata returns a copy with the given metadata attached.
func (v Version) WithMetadata(m Metadata) Version {
	v.metadata = m
	v.hasMeta = true
	return v
}

// WithoutMetadata returns a copy with build metadata cleared.
func (v Version) WithoutMetadata() Version {
	v.metadata = Metadata{}
	v.hasMeta = false
	return v
}

// Compare implements the total ordering from spec section 3: compare cores
// numerically; if cores are equal, a final version outranks a pre-release
// of the same core; otherwise compare pre-releases by classifier
// precedence then by number. Metadata never participates.
func (v Version) Compare(o Version) int {
	if c := v.core.Compare(o.core); c != 0 {
		return c
	}
	switch {
	case !v.hasPre && !o.hasPre:
		return 0
	case !v.hasPre:
		return 1
	case !o.hasPre:
		return -1
	default:
		return v.preRelease.compare(o.preRelease)
	}
}

// Less reports v < o under Compare's ordering.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// Equal reports v and o compare equal (ignoring metadata).
func (v Version) Equal(o Version) bool { return v.Compare(o) == 0 }

// Component names the field NextComponent increments.
type Component int

const (
	ComponentMajor Component = iota
	ComponentMinor
	ComponentPatch
)

// NextComponent increments the named component, resets all
// lower-precedence components to zero, and clears pre-release and
// metadata.
func (v Version) NextComponent(c Component) Version {
	switch c {
	case ComponentMajor:
		return Version{core: Core{Major: v.core.Major.Increment(), Minor: ZeroMinorVersion, Patch: ZeroPatchNumber}}
	case ComponentMinor:
		return Version{core: Core{Major: v.core.Major, Minor: v.core.Minor.Increment(), Patch: ZeroPatchNumber}}
	default:
		return Version{core: Core{Major: v.core.Major, Minor: v.core.Minor, Patch: v.core.Patch.Increment()}}
	}
}

// NextClassifier advances the pre-release in a precedence-aware way:
//   - if the current pre-release already has classifier c, its number is
//     incremented;
//   - if v is final, or c outranks the current pre-release's classifier,
//     a new cycle starts at 1 on the same core;
//   - if c is lower-ranked than the current pre-release's classifier, the
//     patch is bumped and a new cycle starts at 1.
//
// Snapshot has no next() transition; use As(Snapshot, nil) instead.
func (v Version) NextClassifier(c PreReleaseClassifier) (Version, error) {
	if c.Equal(Snapshot) {
		return Version{}, &InvalidPreReleaseTransitionError{Classifier: c}
	}

	one := MustPreReleaseNumber(1)

	if !v.hasPre {
		pr, _ := NewPreRelease(c, &one)
		return Version{core: v.core, preRelease: pr, hasPre: true}, nil
	}

	cur := v.preRelease.classifier
	switch {
	case cur.Equal(c):
		n := v.preRelease.number.Increment()
		pr, _ := NewPreRelease(c, &n)
		return Version{core: v.core, preRelease: pr, hasPre: true}, nil
	case c.Rank() > cur.Rank():
		pr, _ := NewPreRelease(c, &one)
		return Version{core: v.core, preRelease: pr, hasPre: true}, nil
	default:
		newCore := Core{Major: v.core.Major, Minor: v.core.Minor, Patch: v.core.Patch.Increment()}
		pr, _ := NewPreRelease(c, &one)
		return Version{core: newCore, preRelease: pr, hasPre: true}, nil
	}
}

// As sets the pre-release classifier directly, ignoring precedence, and
// clears metadata. number is required for versioned classifiers (defaults
// to 1 when nil) and forbidden for Snapshot.
func (v Version) As(c PreReleaseClassifier, number *PreReleaseNumber) (Version, error) {
	if c.Equal(Snapshot) {
		if number != nil {
			return Version{}, &ClassifierNotVersionedError{Classifier: c}
		}
		pr, _ := NewPreRelease(c, nil)
		return Version{core: v.core, preRelease: pr, hasPre: true}, nil
	}

	n := number
	if n == nil {
		one := MustPreReleaseNumber(1)
		n = &one
	}
	pr, err := NewPreRelease(c, n)
	if err != nil {
		return Version{}, err
	}
	return Version{core: v.core, preRelease: pr, hasPre: true}, nil
}

// String renders the Standard form: M.m.p[-pre]. Metadata is omitted.
func (v Version) String() string {
	s := v.core.String()
	if v.hasPre {
		s += "-" + v.preRelease.render()
	}
	return s
}

// Extended renders the full form including build metadata: M.m.p[-pre][+meta].
func (v Version) Extended() string {
	s := v.String()
	if v.hasMeta && !v.metadata.IsEmpty() {
		s += "+" + v.metadata.render()
	}
	return s
}
