package manifest

import (
	"context"
	goerrors "errors"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/glorpus-work/goldfix/pkg/config"
	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/fixture"
)

// Manager loads and checks manifests for the configured suites.
type Manager struct {
	config    *config.Config
	manifests map[string]*Manifest
}

// Drift is the result of checking a suite tree against its manifest.
type Drift struct {
	Suite string `json:"suite"`
	// Changed lists cases whose input or golden checksum differs.
	Changed []string `json:"changed,omitempty"`
	// Missing lists manifest entries with no case on disk.
	Missing []string `json:"missing,omitempty"`
	// Untracked lists cases on disk the manifest does not know.
	Untracked []string `json:"untracked,omitempty"`
}

// Clean reports whether the tree matches the manifest.
func (d *Drift) Clean() bool {
	return len(d.Changed) == 0 && len(d.Missing) == 0 && len(d.Untracked) == 0
}

// NewManager creates a manifest manager for the given configuration.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config:    cfg,
		manifests: make(map[string]*Manifest, len(cfg.Suites)),
	}
}

// ManifestPath returns the manifest location for a configured suite.
func (mm *Manager) ManifestPath(suiteName string) (string, error) {
	suite := mm.config.GetSuite(suiteName)
	if suite == nil {
		return "", errors.Wrapf(errors.ErrSuiteNotFound, "suite %s", suiteName)
	}
	return filepath.Join(suite.Root, DefaultFileName), nil
}

// Load returns the manifest for a suite, reading it at most once.
func (mm *Manager) Load(suiteName string) (*Manifest, error) {
	if m, ok := mm.manifests[suiteName]; ok {
		return m, nil
	}

	path, err := mm.ManifestPath(suiteName)
	if err != nil {
		return nil, err
	}

	m, err := ParseManifestFromFile(path)
	if err != nil {
		return nil, err
	}

	mm.manifests[suiteName] = m
	return m, nil
}

// Verify re-hashes the suite tree and reports drift against its manifest.
func (mm *Manager) Verify(ctx context.Context, suiteName string) (*Drift, error) {
	suite := mm.config.GetSuite(suiteName)
	if suite == nil {
		return nil, errors.Wrapf(errors.ErrSuiteNotFound, "suite %s", suiteName)
	}

	m, err := mm.Load(suiteName)
	if err != nil {
		return nil, err
	}

	gen := &Generator{
		Suite:  suiteName,
		Root:   suite.Root,
		Layout: suiteLayout(suite),
	}
	current, err := gen.Build(ctx)
	if err != nil {
		return nil, err
	}

	drift := &Drift{Suite: suiteName}

	onDisk := make(map[string]*Entry, len(current.Entries))
	for _, entry := range current.Entries {
		onDisk[entry.Name] = entry
	}

	for _, want := range m.Entries {
		got, ok := onDisk[want.Name]
		if !ok {
			drift.Missing = append(drift.Missing, want.Name)
			continue
		}
		if got.InputChecksum != want.InputChecksum || got.GoldenChecksum != want.GoldenChecksum {
			drift.Changed = append(drift.Changed, want.Name)
		}
	}

	for _, got := range current.Entries {
		if m.FindEntry(got.Name) == nil {
			drift.Untracked = append(drift.Untracked, got.Name)
		}
	}

	sort.Strings(drift.Changed)
	sort.Strings(drift.Missing)
	sort.Strings(drift.Untracked)

	return drift, nil
}

// IsStale reports whether any file in the suite tree is newer than the
// manifest. A missing manifest is always stale.
func (mm *Manager) IsStale(suiteName string) bool {
	suite := mm.config.GetSuite(suiteName)
	if suite == nil {
		return true
	}

	path, err := mm.ManifestPath(suiteName)
	if err != nil {
		return true
	}
	stat, err := os.Stat(path)
	if err != nil {
		return true
	}
	manifestTime := stat.ModTime()

	stale := false
	_ = filepath.WalkDir(suite.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || p == path {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().After(manifestTime) {
			stale = true
			return filepath.SkipAll
		}
		return nil
	})

	return stale
}

// CacheAge returns how long ago the manifest for a suite was written.
func (mm *Manager) CacheAge(suiteName string) (time.Duration, error) {
	path, err := mm.ManifestPath(suiteName)
	if err != nil {
		return -1, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return -1, errors.Wrapf(err, "cannot stat manifest %s", path)
	}

	return time.Since(stat.ModTime()), nil
}

// FindCases looks a case name up across all configured suites. The result
// maps suite name to the matching entry.
func (mm *Manager) FindCases(name string) (map[string]*Entry, error) {
	found := make(map[string]*Entry)

	for _, suite := range mm.config.Suites {
		m, err := mm.Load(suite.Name)
		if err != nil {
			if goerrors.Is(err, errors.ErrManifestNotFound) {
				continue
			}
			return nil, err
		}
		if entry := m.FindEntry(name); entry != nil {
			found[suite.Name] = entry
		}
	}

	if len(found) == 0 {
		return nil, errors.Wrapf(errors.ErrCaseNotFound, "case %s in any manifest", name)
	}
	return found, nil
}

// suiteLayout converts a suite configuration to a fixture layout.
func suiteLayout(suite *config.SuiteConfig) fixture.Layout {
	layout := fixture.DefaultLayout()
	if suite.GoldenSuffix != "" {
		layout.GoldenSuffix = suite.GoldenSuffix
	}
	if len(suite.Extensions) > 0 {
		layout.Extensions = suite.Extensions
	}
	return layout
}
