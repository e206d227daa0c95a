// Package applier substitutes replacement text for a located MatchSpec.
//
// Literal specs replace the first occurrence only. Once applied the literal
// text is gone, so a second run finds nothing and is a no-op. When a literal
// occurs more than once the later occurrences are left alone and the result
// reports the full occurrence count so callers can warn about it.
//
// Pattern specs replace every occurrence. The replacement is inserted
// verbatim unless the spec sets Expand, in which case $1 and ${name}
// reference capture groups.
//
// Apply is pure: it computes the new text in memory and never touches
// storage.
package applier

import (
	"github.com/arthur-debert/repatch/pkg/matcher"
	"github.com/arthur-debert/repatch/pkg/types"
)

// Result is the outcome of applying one spec to one text
type Result struct {
	Text    string
	Outcome types.Outcome
	// Occurrences found before substitution
	Occurrences int
	// Replaced occurrences
	Replaced int
}

// Apply substitutes replacement for the occurrences of c in text
func Apply(text string, c *matcher.Compiled, replacement string) Result {
	match := c.Locate(text)
	if !match.Found {
		return Result{Text: text, Outcome: types.OutcomeNoMatch}
	}

	res := Result{Outcome: types.OutcomeApplied, Occurrences: match.Occurrences}
	re := c.Regexp()
	switch {
	case re == nil:
		span := match.Span
		res.Text = text[:span.Start] + replacement + text[span.End:]
		res.Replaced = 1
	case c.Spec().Expand:
		res.Text = re.ReplaceAllString(text, replacement)
		res.Replaced = match.Occurrences
	default:
		res.Text = re.ReplaceAllLiteralString(text, replacement)
		res.Replaced = match.Occurrences
	}
	return res
}

// ApplySpec compiles spec and applies it
func ApplySpec(text string, spec types.MatchSpec, replacement string) (Result, error) {
	c, err := matcher.Compile(spec)
	if err != nil {
		return Result{}, err
	}
	return Apply(text, c, replacement), nil
}

// ApplyRule applies a single rule to text
func ApplyRule(text string, rule types.Rule) (Result, error) {
	return ApplySpec(text, rule.Spec, rule.Replacement)
}

// ApplyAll threads text through rules in order, each rule seeing the
// output of the previous one. Targets are not consulted.
func ApplyAll(text string, rules []types.Rule) (string, []Result, error) {
	results := make([]Result, 0, len(rules))
	for _, r := range rules {
		res, err := ApplyRule(text, r)
		if err != nil {
			return text, results, err
		}
		text = res.Text
		results = append(results, res)
	}
	return text, results, nil
}
