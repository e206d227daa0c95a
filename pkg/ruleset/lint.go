package ruleset

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/repatch/pkg/matcher"
	"github.com/arthur-debert/repatch/pkg/types"
)

// Severity ranks lint findings
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Finding is one lint result
type Finding struct {
	Label    string   `json:"label"`
	Source   string   `json:"source,omitempty"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Severity, f.Label, f.Message)
}

// Lint checks rules for authoring problems. The checks are heuristics on
// the rule text alone; they do not read target files.
func Lint(rules []types.Rule) []Finding {
	var findings []Finding
	add := func(r types.Rule, sev Severity, format string, args ...interface{}) {
		findings = append(findings, Finding{
			Label:    r.Label,
			Source:   r.Source,
			Severity: sev,
			Message:  fmt.Sprintf(format, args...),
		})
	}

	for _, r := range rules {
		c, err := matcher.Compile(r.Spec)
		if err != nil {
			add(r, SeverityError, "%v", err)
			continue
		}

		if c.Locate(r.Replacement).Found {
			add(r, SeverityError, "replacement matches the rule's own %s, so every run applies it again", r.Spec.Kind)
		}

		if r.Spec.Kind == types.MatchLiteral {
			if r.Spec.Multiline {
				add(r, SeverityWarning, "multiline has no effect on a literal rule")
			}
			if r.Spec.Expand {
				add(r, SeverityWarning, "expand has no effect on a literal rule")
			}
			continue
		}

		if !r.Spec.Multiline && strings.Contains(r.Spec.Body, ".*") && strings.Contains(r.Spec.Body, "\n") {
			add(r, SeverityWarning, "pattern spans lines but multiline is off, so .* stops at line breaks")
		}
		if !r.Spec.Expand && strings.Contains(r.Replacement, "$") {
			add(r, SeverityInfo, "replacement contains $ and is inserted verbatim; set expand to use capture groups")
		}
	}
	return findings
}

// HasProblems reports whether any finding is a warning or an error
func HasProblems(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity != SeverityInfo {
			return true
		}
	}
	return false
}
