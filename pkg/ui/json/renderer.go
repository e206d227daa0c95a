// Package json provides machine-readable JSON output
package json

import (
	"io"

	"github.com/arthur-debert/repatch/pkg/diff"
	"github.com/arthur-debert/repatch/pkg/ruleset"
	"github.com/arthur-debert/repatch/pkg/types"
	"github.com/goccy/go-json"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	output   io.Writer
	encoder  *json.Encoder
	showDiff bool
}

type reportView struct {
	*types.Report
	Counts types.Counts      `json:"counts"`
	Diffs  map[string]string `json:"diffs,omitempty"`
}

type ruleView struct {
	Label       string `json:"label"`
	Target      string `json:"target"`
	Kind        string `json:"kind"`
	Multiline   bool   `json:"multiline"`
	Expand      bool   `json:"expand"`
	Description string `json:"description,omitempty"`
	Source      string `json:"source,omitempty"`
}

// New creates a new JSON renderer
func New(output io.Writer, showDiff bool) (*Renderer, error) {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{
		output:   output,
		encoder:  encoder,
		showDiff: showDiff,
	}, nil
}

// RenderResult renders any result type as JSON
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.Report:
		view := reportView{Report: v, Counts: v.Counts()}
		if r.showDiff {
			for _, f := range v.Files {
				if !f.Changed {
					continue
				}
				if view.Diffs == nil {
					view.Diffs = map[string]string{}
				}
				view.Diffs[f.Target] = diff.Unified(f.Target, f.Before, f.After, diff.DefaultContext)
			}
		}
		return r.encoder.Encode(view)
	case []types.Rule:
		views := make([]ruleView, 0, len(v))
		for _, rule := range v {
			views = append(views, ruleView{
				Label:       rule.Label,
				Target:      rule.Target,
				Kind:        string(rule.Spec.Kind),
				Multiline:   rule.Spec.Multiline,
				Expand:      rule.Spec.Expand,
				Description: rule.Description,
				Source:      rule.Source,
			})
		}
		return r.encoder.Encode(views)
	case []ruleset.Finding:
		if v == nil {
			v = []ruleset.Finding{}
		}
		return r.encoder.Encode(v)
	default:
		return r.encoder.Encode(result)
	}
}

// RenderProgress is a no-op; JSON output is a single document
func (r *Renderer) RenderProgress(types.FileResult) error {
	return nil
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
