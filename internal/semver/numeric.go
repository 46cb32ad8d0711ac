// Package semver provides the immutable semantic-versioning value algebra:
// numeric components, pre-release classifiers, the Version type itself, its
// total ordering, its polymorphic bump operations, and the parser that turns
// a version string back into a Version. All types are immutable — every
// method returns a new value rather than mutating the receiver.
package semver

import "fmt"

// MajorVersion wraps a non-negative major version component.
type MajorVersion struct{ v int32 }

// MinorVersion wraps a non-negative minor version component.
type MinorVersion struct{ v int32 }

// PatchNumber wraps a non-negative patch version component.
type PatchNumber struct{ v int32 }

// PreReleaseNumber wraps a positive (>= 1) pre-release counter.
type PreReleaseNumber struct{ v int32 }

// ZeroMajorVersion, ZeroMinorVersion, and ZeroPatchNumber are the reset
// values used when a higher-precedence component is incremented.
var (
	ZeroMajorVersion = MajorVersion{0}
	ZeroMinorVersion = MinorVersion{0}
	ZeroPatchNumber  = PatchNumber{0}
)

// NewMajorVersion validates and constructs a MajorVersion.
func NewMajorVersion(i int32) (MajorVersion, error) {
	if i < 0 {
		return MajorVersion{}, &InvalidMajorVersionError{Value: i}
	}
	return MajorVersion{i}, nil
}

// MustMajorVersion constructs a MajorVersion without validation, for use
// with values already known to be valid (e.g. literals in tests).
func MustMajorVersion(i int32) MajorVersion { return MajorVersion{i} }

// Value returns the wrapped integer.
func (m MajorVersion) Value() int32 { return m.v }

// Increment returns m+1.
func (m MajorVersion) Increment() MajorVersion { return MajorVersion{m.v + 1} }

func (m MajorVersion) String() string { return fmt.Sprintf("%d", m.v) }

// NewMinorVersion validates and constructs a MinorVersion.
func NewMinorVersion(i int32) (MinorVersion, error) {
	if i < 0 {
		return MinorVersion{}, &InvalidMinorVersionError{Value: i}
	}
	return MinorVersion{i}, nil
}

// MustMinorVersion constructs a MinorVersion without validation.
func MustMinorVersion(i int32) MinorVersion { return MinorVersion{i} }

func (m MinorVersion) Value() int32            { return m.v }
func (m MinorVersion) Increment() MinorVersion { return MinorVersion{m.v + 1} }
func (m MinorVersion) String() string          { return fmt.Sprintf("%d", m.v) }

// NewPatchNumber validates and constructs a PatchNumber.
func NewPatchNumber(i int32) (PatchNumber, error) {
	if i < 0 {
		return PatchNumber{}, &InvalidPatchNumberError{Value: i}
	}
	return PatchNumber{i}, nil
}

// MustPatchNumber constructs a PatchNumber without validation.
func MustPatchNumber(i int32) PatchNumber { return PatchNumber{i} }

func (p PatchNumber) Value() int32           { return p.v }
func (p PatchNumber) Increment() PatchNumber { return PatchNumber{p.v + 1} }
func (p PatchNumber) String() string         { return fmt.Sprintf("%d", p.v) }

// NewPreReleaseNumber validates and constructs a PreReleaseNumber. The
// domain minimum is 1 — pre-release counters never start at zero.
func NewPreReleaseNumber(i int32) (PreReleaseNumber, error) {
	if i < 1 {
		return PreReleaseNumber{}, &InvalidPreReleaseNumberError{Value: i}
	}
	return PreReleaseNumber{i}, nil
}

// MustPreReleaseNumber constructs a PreReleaseNumber without validation.
func MustPreReleaseNumber(i int32) PreReleaseNumber { return PreReleaseNumber{i} }

func (n PreReleaseNumber) Value() int32                  { return n.v }
func (n PreReleaseNumber) Increment() PreReleaseNumber    { return PreReleaseNumber{n.v + 1} }
func (n PreReleaseNumber) String() string                { return fmt.Sprintf("%d", n.v) }
func (n PreReleaseNumber) compare(o PreReleaseNumber) int {
	switch {
	case n.v < o.v:
		return -1
	case n.v > o.v:
		return 1
	default:
		return 0
	}
}
