package resolve

import (
	"context"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/directive"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/repo"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/semver"
)

// Config is the exhaustive input surface of the resolver.
type Config struct {
	BasisCommit    string // default "HEAD"
	PRNumber       *int32
	BranchOverride string
	ShaLength      int
	Verbose        bool
}

// Resolve implements the two-mode orchestration: Mode 1 returns a tagged
// commit's version verbatim; Mode 2 derives a development version.
func Resolve(ctx context.Context, r repo.Repository, cfg Config) (semver.Version, error) {
	basis := cfg.BasisCommit
	if basis == "" {
		basis = "HEAD"
	}
	basisSha, err := r.ResolveRev(ctx, basis)
	if err != nil {
		return semver.Version{}, err
	}

	allTags, err := r.ListAllTags(ctx)
	if err != nil {
		return semver.Version{}, err
	}
	clean, err := r.IsWorkingDirectoryClean(ctx)
	if err != nil {
		return semver.Version{}, err
	}

	var tagOnBasis *repo.Tag
	for i, t := range allTags {
		if t.CommitSha == basisSha {
			if tagOnBasis == nil || higherTag(t, *tagOnBasis) {
				tagOnBasis = &allTags[i]
			}
		}
	}

	// Mode 1: concrete.
	if tagOnBasis != nil && clean {
		return tagOnBasis.Version, nil
	}

	// Mode 2: development.
	reachable, err := r.FindReachableTags(ctx, basisSha)
	if err != nil {
		return semver.Version{}, err
	}
	var baseTag *repo.Tag
	for i, t := range reachable {
		if baseTag == nil || higherTag(t, *baseTag) {
			baseTag = &reachable[i]
		}
	}

	var baseSha string
	if baseTag != nil {
		baseSha = baseTag.CommitSha
	}
	commits, err := r.GetCommitsSince(ctx, baseSha, basisSha)
	if err != nil {
		return semver.Version{}, err
	}

	surviving, err := ApplyIgnoreEngine(ctx, r, commits)
	if err != nil {
		return semver.Version{}, err
	}

	var allDirectives []directive.Directive
	var candidates []semver.Version
	for _, cd := range surviving {
		for _, d := range cd.Directives {
			allDirectives = append(allDirectives, d)
			if d.Kind == directive.TargetSet {
				candidates = append(candidates, d.Target)
			}
		}
	}

	targetInput := buildTargetCalculatorInput(candidates, reachable, allTags, basisSha)
	core, ok := SelectTarget(targetInput)
	if !ok {
		var base *semver.Version
		if baseTag != nil {
			v := baseTag.Version
			base = &v
		}
		core = DeriveCore(DeriveCoreInput{
			Directives:     allDirectives,
			Base:           base,
			RepoHighestTag: highestTag(allTags),
		})
	}

	metadata, err := BuildMetadata(ctx, r, MetadataInput{
		ShaLength:      effectiveShaLength(cfg.ShaLength),
		PRNumber:       cfg.PRNumber,
		BranchOverride: cfg.BranchOverride,
		BasisSha:       basisSha,
		BaseSha:        baseSha,
		Dirty:          !clean,
	})
	if err != nil {
		return semver.Version{}, err
	}

	snapshot, err := core.As(semver.Snapshot, nil)
	if err != nil {
		return semver.Version{}, err
	}
	return snapshot.WithMetadata(metadata), nil
}

func effectiveShaLength(n int) int {
	if n == 0 {
		return 7
	}
	return n
}

func higherTag(a, b repo.Tag) bool {
	return a.Version.Compare(b.Version) > 0
}

func highestTag(tags []repo.Tag) *repo.Tag {
	var best *repo.Tag
	for i, t := range tags {
		if best == nil || higherTag(t, *best) {
			best = &tags[i]
		}
	}
	return best
}

// buildTargetCalculatorInput derives H, Tf, R, and the repo-wide final tag
// list from the tag sets the resolver already gathered. isHeadOnFinalTag
// is always false here: by the time Mode 2 runs, either there was no tag
// on the basis commit, or the worktree was dirty at a tagged commit (the
// source's own hard-coded false), so Rule D never fires in practice.
func buildTargetCalculatorInput(candidates []semver.Version, reachable, allTags []repo.Tag, _ string) TargetCalculatorInput {
	in := TargetCalculatorInput{
		Candidates:       candidates,
		HighestReachable: highestTag(reachable),
		RepoHighest:      highestTag(allTags),
		IsHeadOnFinalTag: false,
	}
	in.HighestReachableFinal = highestFinalTag(reachable)
	for i, t := range allTags {
		if t.Version.IsFinal() {
			in.RepoFinalTags = append(in.RepoFinalTags, allTags[i])
		}
	}
	return in
}

func highestFinalTag(tags []repo.Tag) *repo.Tag {
	var best *repo.Tag
	for i, t := range tags {
		if !t.Version.IsFinal() {
			continue
		}
		if best == nil || higherTag(t, *best) {
			best = &tags[i]
		}
	}
	return best
}
