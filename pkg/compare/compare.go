// Package compare decides whether tool output matches a golden file. It
// supports exact byte comparison, a normalized mode that forgives line
// ending and trailing whitespace churn, and a structure mode that compares
// source outlines instead of text.
package compare

import (
	"bytes"
	"context"
	"fmt"

	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/pysrc"
)

// Mode selects how golden and actual output are compared.
type Mode string

const (
	// ModeBytes compares raw bytes with no normalization.
	ModeBytes Mode = "bytes"

	// ModeNormalized compares after line ending and whitespace
	// normalization. This is the default.
	ModeNormalized Mode = "normalized"

	// ModeStructure compares source outlines and ignores layout entirely.
	ModeStructure Mode = "structure"
)

// NewlinePolicy controls how the final newline is treated during
// normalization.
type NewlinePolicy string

const (
	// NewlineEnsure appends a final newline when the content lacks one.
	NewlineEnsure NewlinePolicy = "ensure"

	// NewlineKeep leaves the end of the content exactly as produced.
	NewlineKeep NewlinePolicy = "keep"

	// NewlineStrip removes all trailing newlines.
	NewlineStrip NewlinePolicy = "strip"
)

// DefaultTabWidth is the number of spaces a leading tab expands to before
// structure parsing.
const DefaultTabWidth = 4

// validModes returns the accepted mode names for error messages.
func validModes() []string {
	return []string{string(ModeBytes), string(ModeNormalized), string(ModeStructure)}
}

// ParseMode converts a configuration string into a Mode. The empty string
// selects ModeNormalized.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "":
		return ModeNormalized, nil
	case string(ModeBytes):
		return ModeBytes, nil
	case string(ModeNormalized):
		return ModeNormalized, nil
	case string(ModeStructure):
		return ModeStructure, nil
	default:
		return "", errors.ErrInvalidCompareModeWithDetails(s, validModes())
	}
}

// Options describe a single comparison.
type Options struct {
	// Mode selects the comparison strategy. Empty means ModeNormalized.
	Mode Mode

	// StripTrailingSpace removes spaces and tabs at line ends in
	// normalized mode.
	StripTrailingSpace bool

	// NormalizeEOL rewrites CRLF and lone CR line endings to LF in
	// normalized mode.
	NormalizeEOL bool

	// RequireFinalNewline is the final newline policy applied in
	// normalized mode. Empty means NewlineEnsure.
	RequireFinalNewline NewlinePolicy

	// TabWidth is the indentation width used to expand leading tabs
	// before structure parsing. Zero means DefaultTabWidth.
	TabWidth int
}

// DefaultOptions returns the options used when a suite configures nothing:
// normalized mode with trailing whitespace stripped, line endings unified
// and a final newline ensured.
func DefaultOptions() Options {
	return Options{
		Mode:                ModeNormalized,
		StripTrailingSpace:  true,
		NormalizeEOL:        true,
		RequireFinalNewline: NewlineEnsure,
		TabWidth:            DefaultTabWidth,
	}
}

// OptionsForMode returns DefaultOptions with the mode replaced.
func OptionsForMode(mode Mode) Options {
	opts := DefaultOptions()
	opts.Mode = mode
	return opts
}

// withDefaults fills zero values that have a non zero default.
func (o Options) withDefaults() Options {
	if o.Mode == "" {
		o.Mode = ModeNormalized
	}
	if o.RequireFinalNewline == "" {
		o.RequireFinalNewline = NewlineEnsure
	}
	if o.TabWidth <= 0 {
		o.TabWidth = DefaultTabWidth
	}
	return o
}

// Result is the outcome of one comparison.
type Result struct {
	// Equal reports whether the two sides matched under the chosen mode.
	Equal bool

	// Mode is the mode the comparison actually ran under.
	Mode Mode

	// DivergenceLine is the 1-based line of the first difference, 0 when
	// the sides match. In structure mode it indexes the rendered outline.
	DivergenceLine int

	// Summary is a one line human readable verdict.
	Summary string

	// NormalizedExpected and NormalizedActual are the copies both sides
	// were reduced to before comparison, for diff rendering. In structure
	// mode they hold the rendered outlines.
	NormalizedExpected []byte
	NormalizedActual   []byte
}

// Compare checks actual tool output against the expected golden content.
func Compare(expected, actual []byte, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	switch opts.Mode {
	case ModeBytes:
		return compareBytes(expected, actual), nil
	case ModeNormalized:
		return compareNormalized(expected, actual, opts), nil
	case ModeStructure:
		return compareStructure(expected, actual, opts)
	default:
		return nil, errors.ErrInvalidCompareModeWithDetails(string(opts.Mode), validModes())
	}
}

func compareBytes(expected, actual []byte) *Result {
	res := &Result{
		Mode:               ModeBytes,
		Equal:              bytes.Equal(expected, actual),
		NormalizedExpected: expected,
		NormalizedActual:   actual,
	}
	if res.Equal {
		res.Summary = "outputs are byte identical"
		return res
	}
	res.DivergenceLine = firstDivergence(expected, actual)
	res.Summary = fmt.Sprintf("outputs differ at line %d", res.DivergenceLine)
	return res
}

func compareNormalized(expected, actual []byte, opts Options) *Result {
	normExpected := Normalize(expected, opts)
	normActual := Normalize(actual, opts)
	res := &Result{
		Mode:               ModeNormalized,
		Equal:              bytes.Equal(normExpected, normActual),
		NormalizedExpected: normExpected,
		NormalizedActual:   normActual,
	}
	if res.Equal {
		res.Summary = "outputs match after normalization"
		return res
	}
	res.DivergenceLine = firstDivergence(normExpected, normActual)
	res.Summary = fmt.Sprintf("outputs differ at line %d after normalization", res.DivergenceLine)
	return res
}

func compareStructure(expected, actual []byte, opts Options) (*Result, error) {
	ctx := context.Background()
	expModule, err := pysrc.Outline(ctx, expandTabs(expected, opts.TabWidth))
	if err != nil {
		return nil, errors.Wrapf(ErrStructureParse, "golden side: %v", err)
	}
	actModule, err := pysrc.Outline(ctx, expandTabs(actual, opts.TabWidth))
	if err != nil {
		return nil, errors.Wrapf(ErrStructureParse, "actual side: %v", err)
	}

	normExpected := []byte(expModule.Render())
	normActual := []byte(actModule.Render())
	res := &Result{
		Mode:               ModeStructure,
		Equal:              expModule.Equal(actModule),
		NormalizedExpected: normExpected,
		NormalizedActual:   normActual,
	}
	if res.Equal {
		res.Summary = "source structures match"
		return res, nil
	}
	res.DivergenceLine = firstDivergence(normExpected, normActual)
	res.Summary = fmt.Sprintf("source structures differ at outline line %d", res.DivergenceLine)
	return res, nil
}

// Normalize applies the normalized mode transformations to content. The
// bless path writes goldens through this same function so the stored bytes
// match what verification compared. The input slice is never modified.
func Normalize(src []byte, opts Options) []byte {
	opts = opts.withDefaults()
	out := src
	if opts.NormalizeEOL {
		out = bytes.ReplaceAll(out, []byte("\r\n"), []byte("\n"))
		out = bytes.ReplaceAll(out, []byte("\r"), []byte("\n"))
	}
	if opts.StripTrailingSpace {
		lines := bytes.Split(out, []byte("\n"))
		for i, line := range lines {
			lines[i] = bytes.TrimRight(line, " \t")
		}
		out = bytes.Join(lines, []byte("\n"))
	}
	switch opts.RequireFinalNewline {
	case NewlineEnsure:
		if len(out) > 0 && out[len(out)-1] != '\n' {
			withNL := make([]byte, 0, len(out)+1)
			withNL = append(withNL, out...)
			out = append(withNL, '\n')
		}
	case NewlineStrip:
		out = bytes.TrimRight(out, "\n")
	}
	return out
}

// firstDivergence returns the 1-based number of the first line on which the
// two slices differ, 0 when they split into identical lines.
func firstDivergence(expected, actual []byte) int {
	expLines := bytes.Split(expected, []byte("\n"))
	actLines := bytes.Split(actual, []byte("\n"))
	total := len(expLines)
	if len(actLines) > total {
		total = len(actLines)
	}
	for i := 0; i < total; i++ {
		if i >= len(expLines) || i >= len(actLines) {
			return i + 1
		}
		if !bytes.Equal(expLines[i], actLines[i]) {
			return i + 1
		}
	}
	return 0
}

// expandTabs rewrites tabs in leading indentation to spaces so tab and
// space indented sources parse to the same outline. Tabs past the
// indentation, including those inside string literals, are left alone.
func expandTabs(src []byte, width int) []byte {
	if !bytes.ContainsRune(src, '\t') {
		return src
	}
	indent := bytes.Repeat([]byte(" "), width)
	lines := bytes.Split(src, []byte("\n"))
	for i, line := range lines {
		j := 0
		for j < len(line) && (line[j] == ' ' || line[j] == '\t') {
			j++
		}
		if !bytes.ContainsRune(line[:j], '\t') {
			continue
		}
		expanded := bytes.ReplaceAll(line[:j], []byte("\t"), indent)
		lines[i] = append(expanded, line[j:]...)
	}
	return bytes.Join(lines, []byte("\n"))
}
