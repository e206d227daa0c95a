// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/repatch/pkg/diff"
	"github.com/arthur-debert/repatch/pkg/ruleset"
	"github.com/arthur-debert/repatch/pkg/types"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output   io.Writer
	showDiff bool
}

// New creates a new text renderer
func New(output io.Writer, showDiff bool) (*Renderer, error) {
	return &Renderer{output: output, showDiff: showDiff}, nil
}

// RenderResult renders any result type as plain text
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.Report:
		return r.renderReport(v)
	case []types.Rule:
		return r.renderRules(v)
	case []ruleset.Finding:
		return r.renderFindings(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// RenderProgress prints one line per file as the run reaches it
func (r *Renderer) RenderProgress(file types.FileResult) error {
	line := ProgressLine(file)
	if line == "" {
		return nil
	}
	_, err := fmt.Fprintln(r.output, line)
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func (r *Renderer) renderReport(rep *types.Report) error {
	var b strings.Builder
	if rep.DryRun {
		b.WriteString("(dry run, nothing written)\n")
	}
	for _, f := range rep.Files {
		fmt.Fprintf(&b, "%s [%s]\n", f.Target, f.Status)
		if f.Error != "" {
			fmt.Fprintf(&b, "  error: %s\n", f.Error)
		}
		for _, rr := range f.Rules {
			fmt.Fprintf(&b, "  %-28s %s\n", rr.Outcome, rr.Label)
		}
		if r.showDiff && f.Changed {
			b.WriteString(diff.Unified(f.Target, f.Before, f.After, diff.DefaultContext))
		}
	}
	b.WriteString(Summary(rep.Counts(), rep.DryRun))
	b.WriteByte('\n')

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) renderRules(rules []types.Rule) error {
	for _, rule := range rules {
		flags := string(rule.Spec.Kind)
		if rule.Spec.Multiline {
			flags += ",multiline"
		}
		if rule.Spec.Expand {
			flags += ",expand"
		}
		if _, err := fmt.Fprintf(r.output, "%s\t%s\t%s\n", rule.Label, flags, rule.Target); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderFindings(findings []ruleset.Finding) error {
	if len(findings) == 0 {
		_, err := fmt.Fprintln(r.output, "No problems found")
		return err
	}
	for _, f := range findings {
		if _, err := fmt.Fprintln(r.output, f.String()); err != nil {
			return err
		}
	}
	return nil
}

// ProgressLine describes a finished file, or returns "" when nothing
// happened to it worth reporting
func ProgressLine(file types.FileResult) string {
	switch {
	case file.Failed():
		return fmt.Sprintf("✗ %s %s: %s", file.Target, file.Status, file.Error)
	case file.Changed:
		return fmt.Sprintf("✓ %s fixed", file.Target)
	default:
		return ""
	}
}

// Summary is the closing line of a run
func Summary(c types.Counts, dryRun bool) string {
	verb := "Done"
	if dryRun {
		verb = "Dry run done"
	}
	return fmt.Sprintf("%s: %d applied, %d already applied or not found, %d %s changed, %d failed",
		verb, c.Applied, c.NoMatch, c.FilesChanged, plural(c.FilesChanged, "file", "files"), c.FilesFailed)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
