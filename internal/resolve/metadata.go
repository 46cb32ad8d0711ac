package resolve

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/gitsemverr"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/repo"
	"github.com/MyCarrier-DevOps/go-gitsemver/internal/semver"
)

// branchNormalizeRe matches every character that must be folded to '-'
// during branch normalisation.
var branchNormalizeRe = regexp.MustCompile(`[^0-9a-z-]`)

// MetadataInput bundles the inputs to BuildMetadata, mirroring the CliConfig
// fields plus the basis/base SHAs and cleanliness the resolver already
// determined.
type MetadataInput struct {
	ShaLength      int
	PRNumber       *int32
	BranchOverride string
	BasisSha       string
	BaseSha        string // empty means "from the root"
	Dirty          bool
}

// BuildMetadata runs the six-step ordered algorithm from the metadata
// builder: sha-length validation, pr, branch, commits, sha, dirty.
func BuildMetadata(ctx context.Context, r repo.Repository, in MetadataInput) (semver.Metadata, error) {
	if in.ShaLength < 7 || in.ShaLength > 40 {
		return semver.Metadata{}, &gitsemverr.InvalidShaLengthError{Length: in.ShaLength}
	}

	var ids []string

	if in.PRNumber != nil && *in.PRNumber >= 0 {
		ids = append(ids, fmt.Sprintf("pr%d", *in.PRNumber))
	}

	branch := in.BranchOverride
	if branch == "" {
		detected, err := r.GetBranchName(ctx)
		if err != nil {
			return semver.Metadata{}, err
		}
		branch = detected
	}
	if branch == "" {
		branch = "detached"
	}
	ids = append(ids, "branch"+NormalizeBranch(branch))

	count, err := r.CountCommitsSince(ctx, in.BaseSha, in.BasisSha)
	if err != nil {
		return semver.Metadata{}, err
	}
	if count > math.MaxInt32 {
		count = math.MaxInt32
	}
	ids = append(ids, fmt.Sprintf("commits%d", count))

	sha, err := r.GetAbbreviatedSha(ctx, in.BasisSha, in.ShaLength)
	if err != nil {
		return semver.Metadata{}, err
	}
	ids = append(ids, "sha"+strings.ToLower(sha))

	if in.Dirty {
		ids = append(ids, "dirty")
	}

	return semver.NewMetadata(ids)
}

// NormalizeBranch is a pure function: lowercase ASCII, fold every
// character outside [0-9a-z-] to '-', collapse runs of '-', strip leading
// and trailing '-', and fall back to "detached" when nothing survives.
func NormalizeBranch(name string) string {
	lower := strings.ToLower(name)
	folded := branchNormalizeRe.ReplaceAllString(lower, "-")
	collapsed := collapseDashes(folded)
	trimmed := strings.Trim(collapsed, "-")
	if trimmed == "" {
		return "detached"
	}
	return trimmed
}

func collapseDashes(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range s {
		if r == '-' {
			if prevDash {
				continue
			}
			prevDash = true
		} else {
			prevDash = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
