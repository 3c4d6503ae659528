// Package fixture discovers golden-file test cases in a suite tree. A case is
// an input file plus the golden file holding the expected tool output, named
// by inserting the golden suffix before the extension (MethodIndent.py pairs
// with MethodIndent.after.py). An optional sidecar file carries per-case
// metadata.
package fixture

import (
	"path/filepath"
	"slices"
	"strings"
)

// Layout describes how case files are named inside a suite tree.
type Layout struct {
	// GoldenSuffix is inserted before the extension to name the golden file.
	GoldenSuffix string
	// Extensions lists the input file extensions to scan for.
	Extensions []string
	// SidecarSuffix names the optional per-case metadata file.
	SidecarSuffix string
}

// DefaultLayout returns the layout used when a suite does not configure one.
func DefaultLayout() Layout {
	return Layout{
		GoldenSuffix:  ".after",
		Extensions:    []string{".py"},
		SidecarSuffix: ".case.yaml",
	}
}

// normalized fills zero-valued fields from the default layout.
func (l Layout) normalized() Layout {
	def := DefaultLayout()
	if l.GoldenSuffix == "" {
		l.GoldenSuffix = def.GoldenSuffix
	}
	if len(l.Extensions) == 0 {
		l.Extensions = def.Extensions
	}
	if l.SidecarSuffix == "" {
		l.SidecarSuffix = def.SidecarSuffix
	}
	return l
}

// extOf returns the path's extension if it is one of the layout's input
// extensions, or an empty string.
func (l Layout) extOf(path string) string {
	ext := filepath.Ext(path)
	if ext != "" && slices.Contains(l.Extensions, ext) {
		return ext
	}
	return ""
}

// IsInput reports whether the path names a case input file.
func (l Layout) IsInput(path string) bool {
	if l.IsSidecar(path) {
		return false
	}
	ext := l.extOf(path)
	if ext == "" {
		return false
	}
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	return stem != "" && !strings.HasSuffix(stem, l.GoldenSuffix)
}

// IsGolden reports whether the path names a golden file.
func (l Layout) IsGolden(path string) bool {
	ext := l.extOf(path)
	if ext == "" {
		return false
	}
	stem := strings.TrimSuffix(filepath.Base(path), ext)
	return strings.HasSuffix(stem, l.GoldenSuffix) && stem != l.GoldenSuffix
}

// IsSidecar reports whether the path names a case metadata file.
func (l Layout) IsSidecar(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, l.SidecarSuffix) && base != l.SidecarSuffix
}

// GoldenPathFor returns the golden file path paired with an input path.
func (l Layout) GoldenPathFor(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + l.GoldenSuffix + ext
}

// SidecarPathFor returns the metadata file path paired with an input path.
func (l Layout) SidecarPathFor(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + l.SidecarSuffix
}

// CaseName derives the case name from a path relative to the suite root.
// The name keeps subdirectories and drops the extension and, for goldens,
// the golden suffix: nested/MethodIndent.after.py names case
// nested/MethodIndent.
func (l Layout) CaseName(relPath string) string {
	rel := filepath.ToSlash(relPath)
	switch {
	case l.IsSidecar(rel):
		return strings.TrimSuffix(rel, l.SidecarSuffix)
	case l.IsGolden(rel):
		ext := filepath.Ext(rel)
		return strings.TrimSuffix(strings.TrimSuffix(rel, ext), l.GoldenSuffix)
	default:
		return strings.TrimSuffix(rel, filepath.Ext(rel))
	}
}
