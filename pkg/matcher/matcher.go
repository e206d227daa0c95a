package matcher

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/types"
)

// dotAll makes "." match "\n" as well
const dotAll = "(?s)"

// Compiled is a validated MatchSpec ready for repeated use
type Compiled struct {
	spec types.MatchSpec
	re   *regexp.Regexp
}

// Compile validates spec and prepares it for matching
func Compile(spec types.MatchSpec) (*Compiled, error) {
	if spec.Body == "" {
		return nil, errors.New(errors.ErrRuleInvalid, "match body must not be empty")
	}

	switch spec.Kind {
	case types.MatchLiteral:
		return &Compiled{spec: spec}, nil
	case types.MatchPattern:
		expr := spec.Body
		if spec.Multiline {
			expr = dotAll + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrPatternInvalid, "pattern does not compile").
				WithDetail("pattern", spec.Body)
		}
		// an empty match would insert the replacement between every character
		if re.MatchString("") {
			return nil, errors.New(errors.ErrPatternInvalid, "pattern matches the empty string").
				WithDetail("pattern", spec.Body)
		}
		return &Compiled{spec: spec, re: re}, nil
	default:
		return nil, errors.Newf(errors.ErrRuleInvalid, "unknown match kind %q", spec.Kind)
	}
}

// MustCompile is like Compile but panics on an invalid spec
func MustCompile(spec types.MatchSpec) *Compiled {
	c, err := Compile(spec)
	if err != nil {
		panic(err)
	}
	return c
}

// Spec returns the spec c was compiled from
func (c *Compiled) Spec() types.MatchSpec {
	return c.spec
}

// Regexp returns the compiled pattern, or nil for literal specs
func (c *Compiled) Regexp() *regexp.Regexp {
	return c.re
}

// Locate finds the non-overlapping occurrences of the spec in text
func (c *Compiled) Locate(text string) types.MatchResult {
	if c.re == nil {
		return locateLiteral(text, c.spec.Body)
	}
	return locatePattern(text, c.re)
}

// Locate compiles spec and locates it in text in one step
func Locate(text string, spec types.MatchSpec) (types.MatchResult, error) {
	c, err := Compile(spec)
	if err != nil {
		return types.MatchResult{}, err
	}
	return c.Locate(text), nil
}

func locateLiteral(text, body string) types.MatchResult {
	start := strings.Index(text, body)
	if start < 0 {
		return types.MatchResult{}
	}
	return types.MatchResult{
		Found:       true,
		Occurrences: strings.Count(text, body),
		Span:        &types.Span{Start: start, End: start + len(body)},
	}
}

func locatePattern(text string, re *regexp.Regexp) types.MatchResult {
	locs := re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return types.MatchResult{}
	}
	return types.MatchResult{
		Found:       true,
		Occurrences: len(locs),
		Span:        &types.Span{Start: locs[0][0], End: locs[0][1]},
	}
}
