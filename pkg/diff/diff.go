// Package diff renders a line-based preview of how a target file changes.
package diff

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around a change
const DefaultContext = 3

// Op is the kind of a diff line
type Op int

const (
	OpEqual Op = iota
	OpDelete
	OpInsert
)

// Line is one line of a line diff. Old and New are 1-based line numbers
// in the respective text; for a line absent from one side they hold the
// number of the preceding line on that side.
type Line struct {
	Op   Op
	Text string
	Old  int
	New  int
}

// Lines computes a line diff between before and after
func Lines(before, after string) []Line {
	dmp := diffmatchpatch.New()
	a, b, table := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), table)

	var (
		out      []Line
		old, new int
	)
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				old++
				new++
				out = append(out, Line{Op: OpEqual, Text: text, Old: old, New: new})
			case diffmatchpatch.DiffDelete:
				old++
				out = append(out, Line{Op: OpDelete, Text: text, Old: old, New: new})
			case diffmatchpatch.DiffInsert:
				new++
				out = append(out, Line{Op: OpInsert, Text: text, Old: old, New: new})
			}
		}
	}
	return out
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\n")
	}
	return parts
}

type hunk struct{ start, end int }

func hunks(lines []Line, context int) []hunk {
	var out []hunk
	for i := 0; i < len(lines); i++ {
		if lines[i].Op == OpEqual {
			continue
		}
		start := max(0, i-context)
		last := i
		for k := i + 1; k < len(lines) && k <= last+2*context+1; k++ {
			if lines[k].Op != OpEqual {
				last = k
			}
		}
		end := min(len(lines), last+context+1)
		out = append(out, hunk{start: start, end: end})
		i = end - 1
	}
	return out
}

// Unified renders the change from before to after in unified diff style.
// It returns "" when the texts are equal.
func Unified(name, before, after string, context int) string {
	if before == after {
		return ""
	}
	lines := Lines(before, after)

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", name, name)
	for _, h := range hunks(lines, context) {
		writeHunk(&b, lines[h.start:h.end])
	}
	return b.String()
}

func writeHunk(b *strings.Builder, lines []Line) {
	oldStart, newStart := -1, -1
	oldCount, newCount := 0, 0
	for _, l := range lines {
		if l.Op != OpInsert {
			oldCount++
			if oldStart < 0 {
				oldStart = l.Old
			}
		}
		if l.Op != OpDelete {
			newCount++
			if newStart < 0 {
				newStart = l.New
			}
		}
	}
	if oldStart < 0 {
		oldStart = lines[0].Old
	}
	if newStart < 0 {
		newStart = lines[0].New
	}

	fmt.Fprintf(b, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, l := range lines {
		prefix := " "
		switch l.Op {
		case OpDelete:
			prefix = "-"
		case OpInsert:
			prefix = "+"
		}
		b.WriteString(prefix)
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
}

// Colorize highlights a unified diff for terminals
func Colorize(unified string) string {
	var (
		add    = color.New(color.FgGreen)
		del    = color.New(color.FgRed)
		header = color.New(color.FgCyan)
		file   = color.New(color.Bold)
	)
	var b strings.Builder
	for _, line := range splitLines(unified) {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(file.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(header.Sprint(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(add.Sprint(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(del.Sprint(line))
		default:
			b.WriteString(line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
