// Package diffview renders line diffs between expected golden content and
// actual tool output.
package diffview

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around each change.
const DefaultContext = 3

// LineKind classifies a line within a diff.
type LineKind int

const (
	// LineContext is an unchanged line present on both sides.
	LineContext LineKind = iota
	// LineAdded is a line only the actual output has.
	LineAdded
	// LineRemoved is a line only the expected content has.
	LineRemoved
)

// Line is a single line of a computed diff.
type Line struct {
	Kind LineKind
	// OldLine and NewLine are 1-based positions on the expected and
	// actual side. 0 means the line does not exist on that side.
	OldLine int
	NewLine int
	Text    string
}

// Hunk is a run of changed lines with surrounding context.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Lines computes the full line-level diff between expected and actual
// content. Equal inputs produce only context lines.
func Lines(expected, actual string) []Line {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	// Reduce to one rune per line first so diffs stay line aligned.
	chars1, chars2, lineArray := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffMain(chars1, chars2, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	ops := make([]Line, 0)
	oldLine, newLine := 0, 0
	for _, d := range diffs {
		for _, text := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				oldLine++
				newLine++
				ops = append(ops, Line{Kind: LineContext, OldLine: oldLine, NewLine: newLine, Text: text})
			case diffmatchpatch.DiffDelete:
				oldLine++
				ops = append(ops, Line{Kind: LineRemoved, OldLine: oldLine, Text: text})
			case diffmatchpatch.DiffInsert:
				newLine++
				ops = append(ops, Line{Kind: LineAdded, NewLine: newLine, Text: text})
			}
		}
	}
	return ops
}

// Hunks groups the diff between expected and actual into hunks with the
// given number of context lines. A negative context selects DefaultContext.
// Equal inputs produce no hunks.
func Hunks(expected, actual string, context int) []Hunk {
	if context < 0 {
		context = DefaultContext
	}
	ops := Lines(expected, actual)

	changes := make([]int, 0)
	for i, op := range ops {
		if op.Kind != LineContext {
			changes = append(changes, i)
		}
	}
	if len(changes) == 0 {
		return nil
	}

	hunks := make([]Hunk, 0)
	start := changes[0] - context
	if start < 0 {
		start = 0
	}
	end := changes[0] + context + 1
	for _, idx := range changes[1:] {
		if idx-context <= end {
			if idx+context+1 > end {
				end = idx + context + 1
			}
			continue
		}
		if end > len(ops) {
			end = len(ops)
		}
		hunks = append(hunks, buildHunk(ops[start:end]))
		start = idx - context
		end = idx + context + 1
	}
	if end > len(ops) {
		end = len(ops)
	}
	hunks = append(hunks, buildHunk(ops[start:end]))
	return hunks
}

// Unified renders the diff in classic unified format with expected/ and
// actual/ path prefixes. Equal inputs render as the empty string. The
// output carries no timestamps so repeated runs stay byte for byte stable.
func Unified(name, expected, actual string, context int) string {
	hunks := Hunks(expected, actual, context)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- expected/%s\n", name)
	fmt.Fprintf(&sb, "+++ actual/%s\n", name)
	for _, h := range hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, line := range h.Lines {
			switch line.Kind {
			case LineRemoved:
				sb.WriteString("-")
			case LineAdded:
				sb.WriteString("+")
			default:
				sb.WriteString(" ")
			}
			sb.WriteString(line.Text)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func buildHunk(ops []Line) Hunk {
	h := Hunk{Lines: ops}
	for _, op := range ops {
		switch op.Kind {
		case LineContext:
			h.OldCount++
			h.NewCount++
		case LineRemoved:
			h.OldCount++
		case LineAdded:
			h.NewCount++
		}
	}
	for _, op := range ops {
		if op.OldLine > 0 {
			h.OldStart = op.OldLine
			break
		}
	}
	for _, op := range ops {
		if op.NewLine > 0 {
			h.NewStart = op.NewLine
			break
		}
	}
	return h
}

// splitLines splits diff text into lines, dropping the empty trailer the
// final newline produces.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
