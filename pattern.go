package framez

import (
	"fmt"
	"regexp"
	"strings"
)

// matchKind discriminates the two matcher variants.
type matchKind int

const (
	matchLiteral matchKind = iota
	matchPattern
)

// matcher is a tagged union over an exact string and a compiled regular
// expression. The variant is resolved once at schema construction, so the
// matching hot path branches on a tag instead of inspecting types, and a
// malformed pattern fails before any frame is ever validated.
type matcher struct {
	kind    matchKind
	literal string
	pattern *regexp.Regexp
	source  string
}

// regex metacharacters that promote a dtype spec from literal to pattern
const regexMeta = `.*+?()[]{}|^$\`

// isAnchoredPattern reports whether a column spec string is a regular
// expression. Column patterns must be fully anchored: they start with '^'
// and end with '$'. Anything else is an exact column name.
func isAnchoredPattern(s string) bool {
	return len(s) > 1 && strings.HasPrefix(s, "^") && strings.HasSuffix(s, "$")
}

// newNameMatcher compiles a column-name spec. Anchored specs become regex
// matchers; everything else matches by string equality.
func newNameMatcher(spec string) (matcher, error) {
	if spec == "" {
		return matcher{}, fmt.Errorf("empty column name spec")
	}
	if isAnchoredPattern(spec) {
		re, err := regexp.Compile(spec)
		if err != nil {
			return matcher{}, fmt.Errorf("invalid column pattern %q: %w", spec, err)
		}
		return matcher{kind: matchPattern, pattern: re, source: spec}, nil
	}
	return matcher{kind: matchLiteral, literal: spec, source: spec}, nil
}

// newDtypeMatcher compiles a dtype spec. An empty spec means any dtype and
// yields a nil matcher. Specs containing regex metacharacters are compiled
// as patterns and must match the whole observed dtype string, so "int.*"
// accepts "int64" but not "uint64"; plain specs compare by equality.
func newDtypeMatcher(spec string) (*matcher, error) {
	if spec == "" {
		return nil, nil //nolint:nilnil // nil matcher means unconstrained
	}
	if strings.ContainsAny(spec, regexMeta) {
		re, err := regexp.Compile("^(?:" + spec + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid dtype pattern %q: %w", spec, err)
		}
		return &matcher{kind: matchPattern, pattern: re, source: spec}, nil
	}
	return &matcher{kind: matchLiteral, literal: spec, source: spec}, nil
}

// Matches reports whether s satisfies the matcher.
func (m matcher) Matches(s string) bool {
	if m.kind == matchPattern {
		return m.pattern.MatchString(s)
	}
	return m.literal == s
}

// String returns the spec the matcher was compiled from, for diagnostics.
func (m matcher) String() string {
	return m.source
}
