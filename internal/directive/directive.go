// Package directive scans commit messages for the keyword directives that
// steer version resolution: relative and absolute bump instructions,
// target overrides, and ignore instructions.
package directive

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MyCarrier-DevOps/go-gitsemver/internal/semver"
)

// Kind identifies the variant of a parsed Directive.
type Kind int

const (
	// MajorChange, MinorChange, PatchChange are relative increments.
	MajorChange Kind = iota
	MinorChange
	PatchChange
	// MajorSet, MinorSet, PatchSet are absolute sets carrying Value.
	MajorSet
	MinorSet
	PatchSet
	// TargetSet carries a candidate target core in Target.
	TargetSet
	// IgnoreSelf excludes the containing commit.
	IgnoreSelf
	// IgnoreCommits excludes every commit whose SHA starts with one of
	// ShaPrefixes.
	IgnoreCommits
	// IgnoreRange excludes every commit between RangeFrom and RangeTo,
	// inclusive, by commit order.
	IgnoreRange
	// IgnoreMerged excludes every commit introduced by the containing
	// merge commit.
	IgnoreMerged
)

// Directive is one recognized instruction extracted from a commit message.
type Directive struct {
	Kind Kind

	// Value holds the absolute number for MajorSet/MinorSet/PatchSet.
	Value int32
	// Target holds the core-only candidate version for TargetSet.
	Target semver.Version
	// ShaPrefixes holds the hex prefixes for IgnoreCommits.
	ShaPrefixes []string
	// RangeFrom/RangeTo hold the endpoints for IgnoreRange.
	RangeFrom, RangeTo string
}

// keywordRe finds every case-insensitive occurrence of a recognized
// directive keyword at a word boundary. Go's RE2 \b already implements the
// ASCII word-boundary semantics the grammar requires: a candidate matches
// only when its left edge sits at a non-word character and its right edge
// is a colon or other non-word character, so "reversion:" never matches
// "version".
var keywordRe = regexp.MustCompile(`(?i)\b(version|target|major|breaking|minor|feature|feat|patch|fix)\b`)

var bumpChange = map[string]Kind{
	"major": MajorChange, "breaking": MajorChange,
	"minor": MinorChange, "feature": MinorChange, "feat": MinorChange,
	"patch": PatchChange, "fix": PatchChange,
}

var bumpSet = map[string]Kind{
	"major": MajorSet, "breaking": MajorSet,
	"minor": MinorSet, "feature": MinorSet, "feat": MinorSet,
	"patch": PatchSet, "fix": PatchSet,
}

// Parse scans msg for every directive it recognizes, in order of
// appearance, mirroring a single-pass scanner: once a keyword's
// sub-grammar is attempted, the span it consumed (whether or not it
// yielded a directive) is never re-examined, so a malformed nested form
// like "version: major: -1" cannot be reinterpreted as the standalone
// shorthand "major: -1".
func Parse(msg string) []Directive {
	var out []Directive
	consumedUntil := 0

	for _, m := range keywordRe.FindAllStringSubmatchIndex(msg, -1) {
		start, end := m[0], m[1]
		if start < consumedUntil {
			continue
		}
		keyword := strings.ToLower(msg[start:end])

		var (
			d          *Directive
			consumedTo int
			recognized bool
		)
		switch keyword {
		case "version":
			d, consumedTo, recognized = parseVersionDirective(msg, end)
		case "target":
			d, consumedTo, recognized = parseTargetDirective(msg, end)
		default:
			d, consumedTo, recognized = parseStandaloneBump(msg, keyword, end)
		}

		if !recognized {
			continue
		}
		consumedUntil = consumedTo
		if d != nil {
			out = append(out, *d)
		}
	}

	return out
}

// parseVersionDirective handles everything that follows "version:":
// bump shorthand (with optional absolute value), and the ignore forms.
func parseVersionDirective(msg string, pos int) (*Directive, int, bool) {
	body, bodyStart, ok := skipColon(msg, pos)
	if !ok {
		return nil, 0, false
	}
	token, tokenEnd := readWordToken(body)
	if token == "" {
		return nil, 0, false
	}
	lower := strings.ToLower(token)
	afterToken := bodyStart + tokenEnd

	switch {
	case lower == "ignore-merged":
		return &Directive{Kind: IgnoreMerged}, afterToken, true
	case lower == "ignore":
		return parseIgnoreBody(msg, afterToken)
	default:
		changeKind, isChange := bumpChange[lower]
		setKind, isSet := bumpSet[lower]
		if !isChange || !isSet {
			return nil, 0, false
		}
		return parseBumpOrSet(msg, afterToken, changeKind, setKind)
	}
}

// parseIgnoreBody handles the value following "version: ignore", which may
// be absent (IgnoreSelf), a comma-separated sha list, or a from..to range.
func parseIgnoreBody(msg string, pos int) (*Directive, int, bool) {
	body, bodyStart, ok := skipColon(msg, pos)
	if !ok {
		return &Directive{Kind: IgnoreSelf}, pos, true
	}
	token, tokenEnd := readToken(body)
	consumedTo := bodyStart + tokenEnd
	if token == "" {
		return &Directive{Kind: IgnoreSelf}, pos, true
	}

	if from, to, ok := splitRange(token); ok {
		return &Directive{Kind: IgnoreRange, RangeFrom: from, RangeTo: to}, consumedTo, true
	}

	var shas []string
	for _, part := range strings.Split(token, ",") {
		part = strings.TrimSpace(part)
		if isHexPrefix(part) {
			shas = append(shas, part)
		}
	}
	if len(shas) == 0 {
		return &Directive{Kind: IgnoreSelf}, pos, true
	}
	return &Directive{Kind: IgnoreCommits, ShaPrefixes: shas}, consumedTo, true
}

// parseBumpOrSet handles "<bump>" (relative) or "<bump>: <N>" (absolute),
// where pos is just past the bump keyword. A colon followed by an empty or
// unparseable value discards the whole directive but still consumes the
// attempted span.
func parseBumpOrSet(msg string, pos int, changeKind, setKind Kind) (*Directive, int, bool) {
	body, bodyStart, ok := skipColon(msg, pos)
	if !ok {
		return &Directive{Kind: changeKind}, pos, true
	}
	token, tokenEnd := readToken(body)
	consumedTo := bodyStart + tokenEnd
	if token == "" {
		return nil, pos, true
	}
	n, err := parseNonNegativeInt32(token)
	if err != nil {
		return nil, consumedTo, true
	}
	return &Directive{Kind: setKind, Value: n}, consumedTo, true
}

// parseTargetDirective handles "target: <SEMVER>", retaining only the
// core of the parsed version.
func parseTargetDirective(msg string, pos int) (*Directive, int, bool) {
	body, bodyStart, ok := skipColon(msg, pos)
	if !ok {
		return nil, 0, false
	}
	token, tokenEnd := readToken(body)
	consumedTo := bodyStart + tokenEnd
	if token == "" {
		return nil, 0, false
	}
	v, err := semver.Parse(token)
	if err != nil {
		return nil, consumedTo, true
	}
	return &Directive{Kind: TargetSet, Target: v.Core()}, consumedTo, true
}

// parseStandaloneBump handles the prefix-less shorthand "<bump>:
// <non-empty-text>". A missing colon means the keyword is not a
// directive at all (so it stays available for the scanner, though in
// practice nothing else would match the same span). An empty body after
// the colon discards the directive but still consumes the span.
func parseStandaloneBump(msg, keyword string, pos int) (*Directive, int, bool) {
	changeKind, ok := bumpChange[keyword]
	if !ok {
		return nil, 0, false
	}
	body, bodyStart, ok := skipColon(msg, pos)
	if !ok {
		return nil, 0, false
	}
	token, tokenEnd := readToken(body)
	consumedTo := bodyStart + tokenEnd
	if token == "" {
		return nil, pos, true
	}
	return &Directive{Kind: changeKind}, consumedTo, true
}

func parseNonNegativeInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return int32(n), nil
}

func splitRange(token string) (from, to string, ok bool) {
	idx := strings.Index(token, "..")
	if idx <= 0 || idx+2 >= len(token) {
		return "", "", false
	}
	from, to = token[:idx], token[idx+2:]
	if !isHexPrefix(from) || !isHexPrefix(to) {
		return "", "", false
	}
	return from, to, true
}

// isHexPrefix reports whether s is a 7-to-40-character hex string, the
// bounds a sha prefix must satisfy to unambiguously identify a commit.
func isHexPrefix(s string) bool {
	if len(s) < 7 || len(s) > 40 {
		return false
	}
	for _, r := range s {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')) {
			return false
		}
	}
	return true
}

// readToken reads a run of non-whitespace characters from the start of s,
// trimming every trailing '.', ',' and ';' (commit-message punctuation
// that is never part of a version or sha token).
func readToken(s string) (string, int) {
	end := 0
	for end < len(s) && !isSpace(s[end]) {
		end++
	}
	token := strings.TrimRight(s[:end], ".,;")
	return token, len(token) + (end - len(token))
}

// readWordToken reads a run of ASCII letters and hyphens, the charset
// needed to recognize bump keywords and "ignore-merged" as a single token
// without swallowing any following punctuation or digits.
func readWordToken(s string) (string, int) {
	end := 0
	for end < len(s) {
		r := s[end]
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '-' {
			end++
			continue
		}
		break
	}
	return s[:end], end
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

// skipColon advances past optional horizontal whitespace, a ':', and more
// optional whitespace. ok is false when no ':' is found.
func skipColon(msg string, pos int) (rest string, bodyStart int, ok bool) {
	i := pos
	for i < len(msg) && (msg[i] == ' ' || msg[i] == '\t') {
		i++
	}
	if i >= len(msg) || msg[i] != ':' {
		return "", 0, false
	}
	i++
	for i < len(msg) && (msg[i] == ' ' || msg[i] == '\t') {
		i++
	}
	return msg[i:], i, true
}
