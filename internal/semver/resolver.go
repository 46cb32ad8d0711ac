package semver

import "strconv"

// PreReleaseResolver turns the raw dot-separated identifiers following a
// '-' in a version string into a PreRelease. Implementations are tried in
// sequence by ChainResolver so that more specific reconciliation rules
// (e.g. splitting a fused "RC1" identifier) can run before the default
// classifier/number split.
type PreReleaseResolver interface {
	// Resolve attempts to interpret ids as a pre-release. ok is false when
	// this resolver does not recognize the shape of ids, letting the chain
	// fall through to the next resolver.
	Resolve(ids []string) (pr PreRelease, ok bool, err error)
}

// ChainResolver tries each resolver in order and returns the first match.
type ChainResolver struct {
	resolvers []PreReleaseResolver
}

// NewChainResolver builds a ChainResolver trying resolvers in the given order.
func NewChainResolver(resolvers ...PreReleaseResolver) ChainResolver {
	return ChainResolver{resolvers: resolvers}
}

// Resolve runs the chain, returning the first resolver's success, or
// UnrecognizedPreReleaseError if none match.
func (c ChainResolver) Resolve(ids []string) (PreRelease, error) {
	for _, r := range c.resolvers {
		pr, ok, err := r.Resolve(ids)
		if err != nil {
			return PreRelease{}, err
		}
		if ok {
			return pr, nil
		}
	}
	return PreRelease{}, &UnrecognizedPreReleaseError{Identifiers: ids}
}

// DefaultPreReleaseResolver handles the canonical two-identifier shape
// ["alpha", "1"] and the bare unversioned shape ["SNAPSHOT"].
type DefaultPreReleaseResolver struct{}

func (DefaultPreReleaseResolver) Resolve(ids []string) (PreRelease, bool, error) {
	if len(ids) == 1 {
		classifier, ok := ClassifierByAlias(ids[0])
		if !ok || classifier.Versioned() {
			return PreRelease{}, false, nil
		}
		pr, err := NewPreRelease(classifier, nil)
		return pr, true, err
	}
	if len(ids) == 2 {
		classifier, ok := ClassifierByAlias(ids[0])
		if !ok || !classifier.Versioned() {
			return PreRelease{}, false, nil
		}
		n, err := strconv.ParseInt(ids[1], 10, 32)
		if err != nil {
			return PreRelease{}, false, nil
		}
		num, err := NewPreReleaseNumber(int32(n))
		if err != nil {
			return PreRelease{}, true, err
		}
		pr, err := NewPreRelease(classifier, &num)
		return pr, true, err
	}
	return PreRelease{}, false, nil
}

// FusedIdentifierResolver reconciles a single identifier that fuses a
// classifier alias with its number, e.g. "RC1" or "beta2", splitting it
// into the equivalent of ["rc", "1"] before delegating to the default
// two-identifier rule. Only ever considers ids of length 1.
type FusedIdentifierResolver struct{}

func (FusedIdentifierResolver) Resolve(ids []string) (PreRelease, bool, error) {
	if len(ids) != 1 {
		return PreRelease{}, false, nil
	}
	raw := ids[0]

	splitAt := -1
	for i, r := range raw {
		if r >= '0' && r <= '9' {
			splitAt = i
			break
		}
	}
	if splitAt <= 0 || splitAt == len(raw) {
		return PreRelease{}, false, nil
	}

	alias := raw[:splitAt]
	digits := raw[splitAt:]
	classifier, ok := ClassifierByAlias(alias)
	if !ok || !classifier.Versioned() {
		return PreRelease{}, false, nil
	}
	n, err := strconv.ParseInt(digits, 10, 32)
	if err != nil {
		return PreRelease{}, false, nil
	}
	num, err := NewPreReleaseNumber(int32(n))
	if err != nil {
		return PreRelease{}, true, err
	}
	pr, err := NewPreRelease(classifier, &num)
	return pr, true, err
}

// DefaultResolverChain is the resolver order used by Parse: try the fused
// single-identifier shape first (it is the pickier, more specific rule),
// then fall back to the canonical [classifier, number] / [classifier] shapes.
func DefaultResolverChain() ChainResolver {
	return NewChainResolver(FusedIdentifierResolver{}, DefaultPreReleaseResolver{})
}
