// Package ui renders run reports, rule lists and lint findings.
// It supports terminal (rich), text (plain), and JSON output formats.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/repatch/pkg/types"
	"github.com/arthur-debert/repatch/pkg/ui/json"
	"github.com/arthur-debert/repatch/pkg/ui/terminal"
	"github.com/arthur-debert/repatch/pkg/ui/text"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderResult renders a *types.Report, []types.Rule or []ruleset.Finding
	RenderResult(result interface{}) error

	// RenderProgress reports a file as soon as the runner finishes it
	RenderProgress(file types.FileResult) error

	RenderError(err error) error
	RenderMessage(msg string) error
}

// Options tune what renderers include
type Options struct {
	// Diff adds a unified diff for every changed file
	Diff bool
}

// NewRenderer creates a new renderer based on the specified format.
// It detects terminal capabilities when format is Auto.
func NewRenderer(format Format, output io.Writer, opts Options) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output, opts)
		}
		return NewRenderer(FormatText, output, opts)
	case FormatTerminal:
		return terminal.New(output, opts.Diff)
	case FormatText:
		return text.New(output, opts.Diff)
	case FormatJSON:
		return json.New(output, opts.Diff)
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}
