package fixture

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/model"
)

// Scanner discovers the cases of one suite tree.
type Scanner struct {
	Suite  string
	Root   string
	Layout Layout
}

// NewScanner creates a scanner for a suite rooted at the given directory.
func NewScanner(suite, root string, layout Layout) *Scanner {
	return &Scanner{
		Suite:  suite,
		Root:   root,
		Layout: layout.normalized(),
	}
}

// entryKind classifies a file found in the suite tree.
type entryKind int

const (
	kindOther entryKind = iota
	kindInput
	kindGolden
	kindSidecar
)

// treeEntry is one file found while walking the suite tree.
type treeEntry struct {
	rel  string // slash-separated path relative to the root
	abs  string
	kind entryKind
	name string // case name derived from the path
}

// collect walks the suite tree and classifies every file. Directories whose
// name starts with a dot are skipped, which keeps .goldfix and version
// control metadata out of the case list.
func (s *Scanner) collect() ([]treeEntry, error) {
	absRoot, err := filepath.Abs(s.Root)
	if err != nil {
		return nil, errors.Wrapf(err, "error getting absolute path of suite root %s", s.Root)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrSuiteNotFound, "suite root %s: %v", s.Root, err)
	}
	if !info.IsDir() {
		return nil, errors.Wrapf(errors.ErrInvalidPath, "suite root %s is not a directory", s.Root)
	}

	var entries []treeEntry
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "error accessing path %s", path)
		}
		if d.IsDir() {
			if path != absRoot && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return errors.Wrapf(err, "error getting relative path of %s", path)
		}
		rel := filepath.ToSlash(relPath)

		entry := treeEntry{rel: rel, abs: path, kind: kindOther}
		switch {
		case s.Layout.IsSidecar(rel):
			entry.kind = kindSidecar
		case s.Layout.IsGolden(rel):
			entry.kind = kindGolden
		case s.Layout.IsInput(rel):
			entry.kind = kindInput
		}
		if entry.kind != kindOther {
			entry.name = s.Layout.CaseName(rel)
		}

		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Scan returns all cases of the suite, sorted by name. Inputs without a
// golden still yield a case so a verify run can report them as missing.
// Orphan goldens and sidecars are ignored here; Lint reports them.
func (s *Scanner) Scan() ([]*model.Case, error) {
	entries, err := s.collect()
	if err != nil {
		return nil, err
	}

	cases := make(map[string]*model.Case)
	for _, entry := range entries {
		if entry.kind != kindInput {
			continue
		}
		if existing, ok := cases[entry.name]; ok {
			return nil, errors.Wrapf(errors.ErrInvalidPath,
				"case %s defined by both %s and %s", entry.name, existing.RelInput, entry.rel)
		}
		cases[entry.name] = &model.Case{
			Suite:     s.Suite,
			Name:      entry.name,
			InputPath: entry.abs,
			RelInput:  entry.rel,
			Ext:       filepath.Ext(entry.rel),
		}
	}

	for _, entry := range entries {
		c, ok := cases[entry.name]
		if !ok {
			continue
		}
		switch entry.kind {
		case kindGolden:
			if filepath.Ext(entry.rel) != c.Ext {
				continue
			}
			c.GoldenPath = entry.abs
			c.RelGolden = entry.rel
		case kindSidecar:
			meta, err := LoadMeta(entry.abs)
			if err != nil {
				return nil, err
			}
			c.Meta = meta
		}
	}

	out := make([]*model.Case, 0, len(cases))
	for _, c := range cases {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

// Find returns the single case with the given name.
func (s *Scanner) Find(name string) (*model.Case, error) {
	cases, err := s.Scan()
	if err != nil {
		return nil, err
	}
	for _, c := range cases {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, errors.Wrapf(errors.ErrCaseNotFound, "case %s not found in suite %s", name, s.Suite)
}

// FilterCases returns the cases whose name matches any of the given names.
// An empty filter keeps every case. Unknown names yield an error so typos
// fail loudly instead of silently verifying nothing.
func FilterCases(cases []*model.Case, names []string) ([]*model.Case, error) {
	if len(names) == 0 {
		return cases, nil
	}

	byName := make(map[string]*model.Case, len(cases))
	for _, c := range cases {
		byName[c.Name] = c
	}

	out := make([]*model.Case, 0, len(names))
	for _, name := range names {
		c, ok := byName[name]
		if !ok {
			return nil, errors.Wrapf(errors.ErrCaseNotFound, "case %s", name)
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}
