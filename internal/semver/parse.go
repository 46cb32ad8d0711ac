package semver

import (
	"regexp"
	"strconv"
	"strings"
)

// versionRe splits a version string into its four syntactic groups:
// major, minor, patch, an optional "-<pre-release>" body and an optional
// "+<metadata>" body. A leading "v"/"V" is tolerated and discarded, so
// tag-style literals ("v1.2.3") and bare literals ("1.2.3") parse
// identically. The numeric groups are matched loosely (any digit run) so
// that overflow and leading-zero problems surface as
// InvalidNumericFieldError rather than a generic format error.
var versionRe = regexp.MustCompile(`^[vV]?(\d+)\.(\d+)\.(\d+)(?:-([0-9A-Za-z.-]+))?(?:\+([0-9A-Za-z.-]+))?$`)

// Parse parses a version string using the default resolver chain. Most
// callers should use this; Parser exists for callers that need a custom
// PreReleaseResolver (e.g. to recognize a vendor-specific pre-release
// spelling).
func Parse(s string) (Version, error) {
	return Parser{Resolver: DefaultResolverChain()}.Parse(s)
}

// Parser parses version strings with a configurable pre-release resolver.
type Parser struct {
	Resolver ChainResolver
}

// Parse interprets s as a SemVer version. Numeric fields are parsed with
// strconv so that values too large for int32 surface as
// InvalidNumericFieldError instead of silently wrapping.
func (p Parser) Parse(s string) (Version, error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return Version{}, &InvalidVersionFormatError{Input: s}
	}

	major, err := parseComponent("major", m[1])
	if err != nil {
		return Version{}, err
	}
	minor, err := parseComponent("minor", m[2])
	if err != nil {
		return Version{}, err
	}
	patch, err := parseComponent("patch", m[3])
	if err != nil {
		return Version{}, err
	}

	majorV, err := NewMajorVersion(major)
	if err != nil {
		return Version{}, err
	}
	minorV, err := NewMinorVersion(minor)
	if err != nil {
		return Version{}, err
	}
	patchV, err := NewPatchNumber(patch)
	if err != nil {
		return Version{}, err
	}

	v := NewVersion(majorV, minorV, patchV, nil, nil)

	if preBody := m[4]; preBody != "" {
		ids := strings.Split(preBody, ".")
		pr, err := p.Resolver.Resolve(ids)
		if err != nil {
			return Version{}, err
		}
		v = Version{core: v.core, preRelease: pr, hasPre: true}
	}

	if metaBody := m[5]; metaBody != "" {
		ids := strings.Split(metaBody, ".")
		md, err := NewMetadata(ids)
		if err != nil {
			return Version{}, err
		}
		v = v.WithMetadata(md)
	}

	return v, nil
}

func parseComponent(field, raw string) (int32, error) {
	if len(raw) > 1 && raw[0] == '0' {
		return 0, &InvalidNumericFieldError{Field: field, Value: raw}
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, &InvalidNumericFieldError{Field: field, Value: raw}
	}
	return int32(n), nil
}
