package fixture

import (
	"fmt"
	"path/filepath"
	"sort"
)

// Lint finding codes.
const (
	LintMissingGolden = "missing-golden"
	LintOrphanGolden  = "orphan-golden"
	LintOrphanSidecar = "orphan-sidecar"
	LintDuplicateCase = "duplicate-case"
	LintBadSidecar    = "bad-sidecar"
)

// Finding is one problem detected in a suite tree.
type Finding struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Path, f.Code, f.Message)
}

// Lint checks the suite tree for structural problems: inputs without a
// golden, goldens and sidecars without an input, duplicate case names, and
// sidecars that do not parse. Unlike Scan it never fails on tree content,
// only on filesystem errors.
func (s *Scanner) Lint() ([]Finding, error) {
	entries, err := s.collect()
	if err != nil {
		return nil, err
	}

	inputs := make(map[string]treeEntry)
	var findings []Finding

	for _, entry := range entries {
		if entry.kind != kindInput {
			continue
		}
		if first, ok := inputs[entry.name]; ok {
			findings = append(findings, Finding{
				Path:    entry.rel,
				Code:    LintDuplicateCase,
				Message: fmt.Sprintf("case %s already defined by %s", entry.name, first.rel),
			})
			continue
		}
		inputs[entry.name] = entry
	}

	goldens := make(map[string]bool)
	for _, entry := range entries {
		switch entry.kind {
		case kindGolden:
			input, ok := inputs[entry.name]
			if !ok {
				findings = append(findings, Finding{
					Path:    entry.rel,
					Code:    LintOrphanGolden,
					Message: fmt.Sprintf("golden has no input file for case %s", entry.name),
				})
				continue
			}
			if filepath.Ext(entry.rel) != filepath.Ext(input.rel) {
				findings = append(findings, Finding{
					Path:    entry.rel,
					Code:    LintOrphanGolden,
					Message: fmt.Sprintf("golden extension does not match input %s", input.rel),
				})
				continue
			}
			goldens[entry.name] = true
		case kindSidecar:
			if _, ok := inputs[entry.name]; !ok {
				findings = append(findings, Finding{
					Path:    entry.rel,
					Code:    LintOrphanSidecar,
					Message: fmt.Sprintf("sidecar has no input file for case %s", entry.name),
				})
				continue
			}
			if _, err := LoadMeta(entry.abs); err != nil {
				findings = append(findings, Finding{
					Path:    entry.rel,
					Code:    LintBadSidecar,
					Message: err.Error(),
				})
			}
		}
	}

	for name, input := range inputs {
		if !goldens[name] {
			findings = append(findings, Finding{
				Path:    input.rel,
				Code:    LintMissingGolden,
				Message: fmt.Sprintf("case %s has no golden file, expected %s", name, s.Layout.GoldenPathFor(input.rel)),
			})
		}
	}

	sort.Slice(findings, func(i, j int) bool {
		if findings[i].Path != findings[j].Path {
			return findings[i].Path < findings[j].Path
		}
		return findings[i].Code < findings[j].Code
	})

	return findings, nil
}
