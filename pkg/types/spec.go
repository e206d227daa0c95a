package types

import "fmt"

// MatchKind selects how a MatchSpec body is interpreted
type MatchKind string

const (
	// MatchLiteral matches the body character for character
	MatchLiteral MatchKind = "literal"
	// MatchPattern treats the body as an RE2 regular expression
	MatchPattern MatchKind = "pattern"
)

// ParseMatchKind parses a kind name as found in rule files
func ParseMatchKind(s string) (MatchKind, error) {
	switch MatchKind(s) {
	case MatchLiteral, MatchPattern:
		return MatchKind(s), nil
	default:
		return "", fmt.Errorf("unknown match kind: %q", s)
	}
}

// MatchSpec describes a region of text to find.
type MatchSpec struct {
	Kind MatchKind `json:"kind"`
	Body string    `json:"body"`

	// Multiline lets the pattern wildcard "." match line breaks.
	// Ignored for literal specs.
	Multiline bool `json:"multiline,omitempty"`

	// Expand enables $1 / ${name} references in the replacement of a
	// pattern spec. When false the replacement is inserted verbatim.
	Expand bool `json:"expand,omitempty"`
}

// Literal returns a literal MatchSpec for body
func Literal(body string) MatchSpec {
	return MatchSpec{Kind: MatchLiteral, Body: body}
}

// Pattern returns a pattern MatchSpec for body
func Pattern(body string, multiline bool) MatchSpec {
	return MatchSpec{Kind: MatchPattern, Body: body, Multiline: multiline}
}

// Span is a half-open byte range [Start, End) into a text
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// MatchResult describes where a spec matched. Span refers to the first
// occurrence only.
type MatchResult struct {
	Found       bool  `json:"found"`
	Occurrences int   `json:"occurrences"`
	Span        *Span `json:"span,omitempty"`
}
