// Package gitsemverr collects the typed errors the resolver surfaces to
// its callers (the CLI and pkg/sdk), separate from the ad-hoc wrapped
// errors returned by the git plumbing layer itself.
package gitsemverr

import "fmt"

// NotAGitRepositoryError reports that the given path is not inside a git
// working tree.
type NotAGitRepositoryError struct{ Path string }

func (e *NotAGitRepositoryError) Error() string {
	return fmt.Sprintf("%s is not a git repository", e.Path)
}

// NoTagsFoundError reports that a repository has no version tags at all,
// making the initial base version the only candidate.
type NoTagsFoundError struct{ Path string }

func (e *NoTagsFoundError) Error() string {
	return fmt.Sprintf("no version tags found in %s", e.Path)
}

// InvalidShaLengthError reports a --sha-length outside the accepted range.
type InvalidShaLengthError struct{ Length int }

func (e *InvalidShaLengthError) Error() string {
	return fmt.Sprintf("invalid sha length %d (must be between 7 and 40)", e.Length)
}

// AmbiguousRevisionError reports a revision (sha prefix, branch name) that
// resolves to more than one commit.
type AmbiguousRevisionError struct{ Revision string }

func (e *AmbiguousRevisionError) Error() string {
	return fmt.Sprintf("revision %q is ambiguous", e.Revision)
}

// UnresolvableRevisionError reports a revision that cannot be found at all.
type UnresolvableRevisionError struct{ Revision string }

func (e *UnresolvableRevisionError) Error() string {
	return fmt.Sprintf("revision %q could not be resolved", e.Revision)
}

// NoEligibleTargetError reports that every candidate target version was
// rejected by the target calculator's rules A-F, leaving no version to
// advance toward.
type NoEligibleTargetError struct{ Base string }

func (e *NoEligibleTargetError) Error() string {
	return fmt.Sprintf("no eligible target version found above base %s", e.Base)
}

// InvalidDirectiveError reports a directive whose payload failed semver
// validation (e.g. "version: -1.2.3").
type InvalidDirectiveError struct {
	Directive string
	Reason    string
}

func (e *InvalidDirectiveError) Error() string {
	return fmt.Sprintf("invalid directive %q: %s", e.Directive, e.Reason)
}

func (e *InvalidDirectiveError) Unwrap() error { return nil }

// RemoteAPIError wraps a failure talking to a remote git hosting API
// (GitHub), preserving the underlying transport error.
type RemoteAPIError struct {
	Operation string
	Err       error
}

func (e *RemoteAPIError) Error() string {
	return fmt.Sprintf("remote API operation %s failed: %v", e.Operation, e.Err)
}

func (e *RemoteAPIError) Unwrap() error { return e.Err }
