// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/repatch/pkg/diff"
	"github.com/arthur-debert/repatch/pkg/ruleset"
	"github.com/arthur-debert/repatch/pkg/types"
	"github.com/arthur-debert/repatch/pkg/ui/styles"
	"github.com/arthur-debert/repatch/pkg/ui/text"
	"github.com/pterm/pterm"
)

// Renderer provides rich terminal output using lipgloss styles
type Renderer struct {
	output   io.Writer
	showDiff bool
}

// New creates a new terminal renderer
func New(w io.Writer, showDiff bool) (*Renderer, error) {
	return &Renderer{output: w, showDiff: showDiff}, nil
}

// RenderResult renders any result type with rich terminal formatting
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

// RenderProgress prints a styled line per finished file
func (r *Renderer) RenderProgress(file types.FileResult) error {
	var line string
	switch {
	case file.Failed():
		line = styles.Render("Error", "✗ ") + styles.Render("FilePath", file.Target) + " " +
			styles.Render("Error", fmt.Sprintf("%s: %s", file.Status, file.Error))
	case file.Changed:
		line = styles.Render("Success", "✓ ") + styles.Render("FilePath", file.Target) + " fixed"
	default:
		return nil
	}
	_, err := fmt.Fprintln(r.output, line)
	return err
}

// RenderError renders an error with appropriate formatting
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintln(r.output, styles.Render("Error", "Error: ")+err.Error())
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, styles.Render("Info", msg))
	return err
}

func (r *Renderer) renderReport(rep *types.Report) error {
	var b strings.Builder
	if rep.DryRun {
		b.WriteString(styles.Render("DryRun", "dry run, nothing written"))
		b.WriteByte('\n')
	}
	for _, f := range rep.Files {
		b.WriteString(styles.Render("FilePath", f.Target))
		if f.Failed() {
			b.WriteString(" " + styles.Render("Error", string(f.Status)))
		}
		b.WriteByte('\n')
		if f.Error != "" {
			b.WriteString("  " + styles.Render("Error", f.Error) + "\n")
		}
		for _, rr := range f.Rules {
			b.WriteString("  " + outcomeMark(rr.Outcome) + " " + styles.Render("Label", rr.Label))
			if rr.Occurrences > rr.Replaced {
				b.WriteString(" " + styles.Render("Warning", fmt.Sprintf("(%d of %d occurrences replaced)", rr.Replaced, rr.Occurrences)))
			}
			b.WriteByte('\n')
		}
		if r.showDiff && f.Changed {
			b.WriteString(diff.Colorize(diff.Unified(f.Target, f.Before, f.After, diff.DefaultContext)))
		}
	}
	b.WriteString(styles.Render("Summary", text.Summary(rep.Counts(), rep.DryRun)))
	b.WriteByte('\n')

	_, err := io.WriteString(r.output, b.String())
	return err
}

func outcomeMark(o types.Outcome) string {
	if o == types.OutcomeApplied {
		return styles.Render("Applied", "applied")
	}
	return styles.Render("NoMatch", "no match")
}

func (r *Renderer) renderRules(rules []types.Rule) error {
	data := pterm.TableData{{"Label", "Kind", "Target", "Source"}}
	for _, rule := range rules {
		kind := string(rule.Spec.Kind)
		if rule.Spec.Multiline {
			kind += " (multiline)"
		}
		data = append(data, []string{rule.Label, kind, rule.Target, rule.Source})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, table)
	return err
}

func (r *Renderer) renderFindings(findings []ruleset.Finding) error {
	if len(findings) == 0 {
		_, err := fmt.Fprintln(r.output, styles.Render("Success", "No problems found"))
		return err
	}
	for _, f := range findings {
		style := "Info"
		switch f.Severity {
		case ruleset.SeverityError:
			style = "Error"
		case ruleset.SeverityWarning:
			style = "Warning"
		}
		line := styles.Render(style, string(f.Severity)) + " " + styles.Render("Label", f.Label) + " " + f.Message
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	return nil
}
