// Package resolve implements the version resolution engine: the target
// calculator, metadata builder, ignore engine, and the top-level
// orchestration that ties them to a repo.Repository.
package resolve

import (
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/directive"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/repo"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/semver"
)

// TargetCalculatorInput bundles everything SelectTarget needs to judge a
// candidate core: the highest reachable tag, the highest reachable final
// tag (which may differ from the former when the highest reachable tag is
// itself a pre-release), the repository's overall highest tag, every
// final tag in the repository, and whether HEAD itself sits on a final
// tag.
type TargetCalculatorInput struct {
	Candidates            []semver.Version
	HighestReachable      *repo.Tag
	HighestReachableFinal *repo.Tag
	RepoHighest           *repo.Tag
	RepoFinalTags         []repo.Tag
	IsHeadOnFinalTag      bool
}

// SelectTarget applies rules A, D, B, C in that order to every candidate,
// then selects the greatest accepted candidate (rule F). Candidates are
// already core-only and well-formed by construction (rule E: malformed
// candidates never reach the calculator, having been dropped during
// directive parsing).
func SelectTarget(in TargetCalculatorInput) (semver.Version, bool) {
	var accepted []semver.Version
	for _, t := range in.Candidates {
		if acceptTarget(t, in) {
			accepted = append(accepted, t)
		}
	}
	if len(accepted) == 0 {
		return semver.Version{}, false
	}
	best := accepted[0]
	for _, c := range accepted[1:] {
		if c.Compare(best) > 0 {
			best = c
		}
	}
	return best, true
}

func acceptTarget(t semver.Version, in TargetCalculatorInput) bool {
	if in.HighestReachableFinal != nil {
		tf := in.HighestReachableFinal.Version
		if t.Compare(tf) <= 0 { // Rule A
			return false
		}
		if in.IsHeadOnFinalTag && t.Equal(tf) { // Rule D, subsumed by A above
			return false
		}
		if in.HighestReachable != nil && !in.HighestReachable.Version.Equal(tf) {
			tpr := in.HighestReachable.Version // Rule B: a higher pre-release is also reachable
			if t.Compare(tpr) < 0 {
				return false
			}
		}
		return true
	}

	if in.HighestReachable != nil {
		tpr := in.HighestReachable.Version // Rule B: H is necessarily a pre-release here
		return t.Compare(tpr) >= 0
	}

	return acceptAgainstRepo(t, in) // Rule C
}

func acceptAgainstRepo(t semver.Version, in TargetCalculatorInput) bool {
	var rf *semver.Version
	for i, tag := range in.RepoFinalTags {
		if i == 0 || tag.Version.Compare(*rf) > 0 {
			v := tag.Version
			rf = &v
		}
	}
	if rf != nil {
		return t.Compare(*rf) > 0
	}
	if in.RepoHighest != nil && in.RepoHighest.Version.IsPreRelease() {
		return t.Compare(in.RepoHighest.Version) >= 0
	}
	return true
}

// DeriveCoreInput bundles the inputs to the §4.5 fallback derivation used
// when no TargetSet candidate survives rules A-F.
type DeriveCoreInput struct {
	Directives     []directive.Directive
	Base           *semver.Version
	RepoHighestTag *repo.Tag
}

// DeriveCore implements the seven-step fallback: absolute sets win over
// relative changes within the same component; among absolutes on the same
// component the maximum wins; duplicate relatives collapse to one. The
// result is a core-only Version (no pre-release, no metadata).
func DeriveCore(in DeriveCoreInput) semver.Version {
	var (
		majorSet    *int32
		minorSet    *int32
		patchSet    *int32
		majorChange bool
		minorChange bool
		patchChange bool
	)

	for _, d := range in.Directives {
		switch d.Kind {
		case directive.MajorSet:
			majorSet = maxPtr(majorSet, d.Value)
		case directive.MajorChange:
			majorChange = true
		case directive.MinorSet:
			minorSet = maxPtr(minorSet, d.Value)
		case directive.MinorChange:
			minorChange = true
		case directive.PatchSet:
			patchSet = maxPtr(patchSet, d.Value)
		case directive.PatchChange:
			patchChange = true
		}
	}

	var baseMajor, baseMinor, basePatch int32
	if in.Base != nil {
		t := in.Base.CoreTriple()
		baseMajor, baseMinor, basePatch = t.Major.Value(), t.Minor.Value(), t.Patch.Value()
	}

	switch {
	case majorSet != nil || majorChange:
		m := baseMajor + 1
		if majorSet != nil {
			m = *majorSet
		}
		return semver.NewVersion(semver.MustMajorVersion(m), semver.ZeroMinorVersion, semver.ZeroPatchNumber, nil, nil)

	case minorSet != nil || minorChange:
		m := baseMinor + 1
		if minorSet != nil {
			m = *minorSet
		}
		return semver.NewVersion(semver.MustMajorVersion(baseMajor), semver.MustMinorVersion(m), semver.ZeroPatchNumber, nil, nil)

	case patchSet != nil || patchChange:
		p := basePatch + 1
		if patchSet != nil {
			p = *patchSet
		}
		return semver.NewVersion(semver.MustMajorVersion(baseMajor), semver.MustMinorVersion(baseMinor), semver.MustPatchNumber(p), nil, nil)

	case in.Base != nil && in.Base.IsPreRelease():
		return in.Base.Core()

	case in.Base != nil && in.Base.IsFinal():
		return semver.NewVersion(semver.MustMajorVersion(baseMajor), semver.MustMinorVersion(baseMinor), semver.MustPatchNumber(basePatch+1), nil, nil)

	case in.RepoHighestTag != nil:
		h := in.RepoHighestTag.Version.CoreTriple()
		return semver.NewVersion(semver.MustMajorVersion(h.Major.Value()+1), semver.ZeroMinorVersion, semver.ZeroPatchNumber, nil, nil)

	default:
		return semver.NewVersion(semver.ZeroMajorVersion, semver.MustMinorVersion(1), semver.ZeroPatchNumber, nil, nil)
	}
}

func maxPtr(cur *int32, v int32) *int32 {
	if cur == nil || v > *cur {
		return &v
	}
	return cur
}
