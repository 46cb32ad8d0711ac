package resolve

import (
	"context"
	"fmt"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/directive"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/repo"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/semver"
)

// Trace records the intermediate decisions Resolve makes while deriving a
// version, for display by --explain. It never feeds back into resolution:
// Resolve and ResolveExplain compute the same version by the same rules,
// the trace only narrates ResolveExplain's own run.
type Trace struct {
	BasisSha      string
	Mode          string // "concrete" or "development"
	WorktreeClean bool

	BaseTag       *repo.Tag
	ReachableTags []repo.Tag

	CommitsConsidered int
	IgnoredCommits    []string
	Directives        []directive.Directive

	UsedExplicitTarget bool
	SelectedCore       semver.Version

	Metadata     semver.Metadata
	FinalVersion semver.Version
}

// ResolveExplain runs the same two-mode resolution as Resolve, recording a
// Trace of the decisions along the way. It never changes the resolved
// version: the concrete/development branches and rule ordering are
// identical to Resolve.
func ResolveExplain(ctx context.Context, r repo.Repository, cfg Config) (semver.Version, *Trace, error) {
	trace := &Trace{}

	basis := cfg.BasisCommit
	if basis == "" {
		basis = "HEAD"
	}
	basisSha, err := r.ResolveRev(ctx, basis)
	if err != nil {
		return semver.Version{}, nil, err
	}
	trace.BasisSha = basisSha

	allTags, err := r.ListAllTags(ctx)
	if err != nil {
		return semver.Version{}, nil, err
	}
	clean, err := r.IsWorkingDirectoryClean(ctx)
	if err != nil {
		return semver.Version{}, nil, err
	}
	trace.WorktreeClean = clean

	var tagOnBasis *repo.Tag
	for i, t := range allTags {
		if t.CommitSha == basisSha {
			if tagOnBasis == nil || higherTag(t, *tagOnBasis) {
				tagOnBasis = &allTags[i]
			}
		}
	}

	if tagOnBasis != nil && clean {
		trace.Mode = "concrete"
		trace.FinalVersion = tagOnBasis.Version
		return tagOnBasis.Version, trace, nil
	}
	trace.Mode = "development"

	reachable, err := r.FindReachableTags(ctx, basisSha)
	if err != nil {
		return semver.Version{}, nil, err
	}
	trace.ReachableTags = reachable

	var baseTag *repo.Tag
	for i, t := range reachable {
		if baseTag == nil || higherTag(t, *baseTag) {
			baseTag = &reachable[i]
		}
	}
	trace.BaseTag = baseTag

	var baseSha string
	if baseTag != nil {
		baseSha = baseTag.CommitSha
	}
	commits, err := r.GetCommitsSince(ctx, baseSha, basisSha)
	if err != nil {
		return semver.Version{}, nil, err
	}
	trace.CommitsConsidered = len(commits)

	surviving, err := ApplyIgnoreEngine(ctx, r, commits)
	if err != nil {
		return semver.Version{}, nil, err
	}
	trace.IgnoredCommits = droppedShas(commits, surviving)

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
	trace.Directives = allDirectives

	targetInput := buildTargetCalculatorInput(candidates, reachable, allTags, basisSha)
	core, ok := SelectTarget(targetInput)
	trace.UsedExplicitTarget = ok
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
	trace.SelectedCore = core

	metadata, err := BuildMetadata(ctx, r, MetadataInput{
		ShaLength:      effectiveShaLength(cfg.ShaLength),
		PRNumber:       cfg.PRNumber,
		BranchOverride: cfg.BranchOverride,
		BasisSha:       basisSha,
		BaseSha:        baseSha,
		Dirty:          !clean,
	})
	if err != nil {
		return semver.Version{}, nil, err
	}
	trace.Metadata = metadata

	snapshot, err := core.As(semver.Snapshot, nil)
	if err != nil {
		return semver.Version{}, nil, err
	}
	final := snapshot.WithMetadata(metadata)
	trace.FinalVersion = final
	return final, trace, nil
}

// droppedShas returns the shas present in all but absent from surviving,
// i.e. every commit the ignore engine excluded, whichever directive
// (ignore-self, an ignore-commits prefix or ignore-merged) excluded it.
func droppedShas(all []repo.Commit, surviving []CommitDirectives) []string {
	keep := make(map[string]bool, len(surviving))
	for _, cd := range surviving {
		keep[cd.Commit.Sha] = true
	}
	var dropped []string
	for _, c := range all {
		if !keep[c.Sha] {
			dropped = append(dropped, c.Sha)
		}
	}
	return dropped
}

// DirectiveSummary renders a single directive for --explain output.
func DirectiveSummary(d directive.Directive) string {
	switch d.Kind {
	case directive.TargetSet:
		return fmt.Sprintf("target: %s", d.Target.String())
	case directive.MajorSet:
		return fmt.Sprintf("major set: %d", d.Value)
	case directive.MinorSet:
		return fmt.Sprintf("minor set: %d", d.Value)
	case directive.PatchSet:
		return fmt.Sprintf("patch set: %d", d.Value)
	case directive.MajorChange:
		return "major change"
	case directive.MinorChange:
		return "minor change"
	case directive.PatchChange:
		return "patch change"
	default:
		return "ignore directive"
	}
}
