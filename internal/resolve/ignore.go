package resolve

import (
	"context"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/directive"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/repo"
)

// CommitDirectives pairs a commit with the directives parsed from its
// message, the unit the ignore engine and the aggregation step both
// operate on.
type CommitDirectives struct {
	Commit     repo.Commit
	Directives []directive.Directive
}

// ApplyIgnoreEngine runs the two-phase exclusion algorithm from the
// ignore engine and returns the surviving commits' non-ignore directives,
// in commit order.
func ApplyIgnoreEngine(ctx context.Context, r repo.Repository, commits []repo.Commit) ([]CommitDirectives, error) {
	parsed := make([]CommitDirectives, len(commits))
	for i, c := range commits {
		parsed[i] = CommitDirectives{Commit: c, Directives: directive.Parse(c.Message)}
	}

	excluded := make(map[string]bool)

	// Phase 1: direct exclusions (pure).
	for _, cd := range parsed {
		for _, d := range cd.Directives {
			switch d.Kind {
			case directive.IgnoreCommits:
				for _, full := range commits {
					if startsWithAny(full.Sha, d.ShaPrefixes) {
						excluded[full.Sha] = true
					}
				}
			case directive.IgnoreRange:
				applyIgnoreRange(commits, d, excluded)
			}
		}
	}

	// Phase 2: merge-driven exclusions.
	for _, cd := range parsed {
		if !cd.Commit.IsMerge() {
			continue
		}
		for _, d := range cd.Directives {
			if d.Kind != directive.IgnoreMerged {
				continue
			}
			// GetMergedCommits(from, to) returns the commits reachable
			// only through to's non-first parents between from and to;
			// anchoring from at the merge's own first parent scopes the
			// result to exactly the commits this merge introduced.
			introduced, err := r.GetMergedCommits(ctx, cd.Commit.Parents[0], cd.Commit.Sha)
			if err != nil {
				return nil, err
			}
			for _, m := range introduced {
				excluded[m.Sha] = true
			}
		}
	}

	var out []CommitDirectives
	for _, cd := range parsed {
		if hasIgnoreSelf(cd.Directives) {
			continue
		}
		if excluded[cd.Commit.Sha] {
			continue
		}
		out = append(out, CommitDirectives{Commit: cd.Commit, Directives: withoutIgnoreDirectives(cd.Directives)})
	}
	return out, nil
}

// applyIgnoreRange finds the first commit whose SHA matches the from
// prefix and the first matching the to prefix; if both exist, the
// inclusive slice between them is excluded.
func applyIgnoreRange(commits []repo.Commit, d directive.Directive, excluded map[string]bool) {
	fromIdx, toIdx := -1, -1
	for i, c := range commits {
		if fromIdx == -1 && strings.HasPrefix(c.Sha, d.RangeFrom) {
			fromIdx = i
		}
		if toIdx == -1 && strings.HasPrefix(c.Sha, d.RangeTo) {
			toIdx = i
		}
	}
	if fromIdx == -1 || toIdx == -1 {
		return
	}
	lo, hi := fromIdx, toIdx
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		excluded[commits[i].Sha] = true
	}
}

func hasIgnoreSelf(ds []directive.Directive) bool {
	for _, d := range ds {
		if d.Kind == directive.IgnoreSelf {
			return true
		}
	}
	return false
}

func withoutIgnoreDirectives(ds []directive.Directive) []directive.Directive {
	var out []directive.Directive
	for _, d := range ds {
		switch d.Kind {
		case directive.IgnoreSelf, directive.IgnoreCommits, directive.IgnoreRange, directive.IgnoreMerged:
			continue
		default:
			out = append(out, d)
		}
	}
	return out
}

func startsWithAny(sha string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(sha, p) {
			return true
		}
	}
	return false
}

