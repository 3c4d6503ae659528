// Package manifest describes and verifies suite snapshots. A manifest records
// every case of a suite with sizes and sha256 checksums of its input and
// golden files, so drift between a tree and its last published state can be
// detected without the original tree.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/hashicorp/go-version"
)

const (
	// CurrentFormatVersion is the current version of the manifest format.
	CurrentFormatVersion = "1"

	// InitialEntryCapacity is the initial capacity for the entries slice.
	InitialEntryCapacity = 100

	// DefaultFileName is the manifest file name inside a suite tree or bundle.
	DefaultFileName = "manifest.json"
)

// Manifest is a snapshot of one suite.
type Manifest struct {
	FormatVersion  string    `json:"format_version"`
	Suite          string    `json:"suite"`
	ToolConstraint string    `json:"tool_constraint,omitempty"`
	GeneratedAt    time.Time `json:"generated_at,omitempty"`
	Entries        []*Entry  `json:"entries"`
}

// Entry records one case of the suite.
type Entry struct {
	Name           string   `json:"name"`
	Input          string   `json:"input"`
	Golden         string   `json:"golden,omitempty"`
	InputChecksum  string   `json:"input_checksum"`
	GoldenChecksum string   `json:"golden_checksum,omitempty"`
	InputSize      int64    `json:"input_size"`
	GoldenSize     int64    `json:"golden_size,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

// NewManifest creates a new manifest with the current format version.
func NewManifest(suite string) *Manifest {
	return &Manifest{
		FormatVersion: CurrentFormatVersion,
		Suite:         suite,
		Entries:       make([]*Entry, 0, InitialEntryCapacity),
	}
}

// ParseManifest parses a manifest from JSON data. Manifests with a newer
// major format version than this build are rejected.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(err, "failed to parse manifest")
	}

	if m.FormatVersion == "" {
		return nil, fmt.Errorf("missing format version in manifest")
	}

	v, err := version.NewVersion(m.FormatVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid manifest format version %s", m.FormatVersion)
	}
	current := version.Must(version.NewVersion(CurrentFormatVersion))
	if v.Segments()[0] > current.Segments()[0] {
		return nil, errors.Wrapf(ErrManifestVersion,
			"manifest format %s is newer than supported %s", m.FormatVersion, CurrentFormatVersion)
	}

	return &m, nil
}

// ParseManifestFromReader parses a manifest from an io.Reader.
func ParseManifestFromReader(reader io.Reader) (*Manifest, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read manifest data")
	}

	return ParseManifest(data)
}

// ParseManifestFromFile parses a manifest from a file.
func ParseManifestFromFile(filePath string) (*Manifest, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrManifestNotFound, "cannot open manifest file %s: %v", filePath, err)
	}
	defer func() { _ = file.Close() }()

	return ParseManifestFromReader(file)
}

// ToJSON converts the manifest to pretty-printed JSON with a trailing
// newline. Entries keep their order, so identical manifests serialize to
// identical bytes.
func (m *Manifest) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal manifest to JSON")
	}
	return append(data, '\n'), nil
}

// FindEntry returns the entry for a case name, or nil.
func (m *Manifest) FindEntry(name string) *Entry {
	for _, entry := range m.Entries {
		if entry.Name == name {
			return entry
		}
	}
	return nil
}

// AddEntry adds an entry to the manifest, replacing any entry with the
// same case name.
func (m *Manifest) AddEntry(entry *Entry) {
	for i := range m.Entries {
		if m.Entries[i].Name == entry.Name {
			m.Entries[i] = entry
			return
		}
	}
	m.Entries = append(m.Entries, entry)
}

// RemoveEntry removes an entry from the manifest.
func (m *Manifest) RemoveEntry(name string) bool {
	for i := range m.Entries {
		if m.Entries[i].Name == name {
			m.Entries = append(m.Entries[:i], m.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// CaseNames returns the names of all entries in manifest order.
func (m *Manifest) CaseNames() []string {
	names := make([]string, 0, len(m.Entries))
	for _, entry := range m.Entries {
		names = append(names, entry.Name)
	}
	return names
}

// FuzzySearchEntries returns the entries whose case name matches the query,
// best matches first. An empty query matches nothing.
func (m *Manifest) FuzzySearchEntries(query string) []*Entry {
	if query == "" {
		return nil
	}

	q := strings.ToLower(query)
	type scoredEntry struct {
		entry *Entry
		score float64
	}
	var matches []scoredEntry
	for _, entry := range m.Entries {
		score := fuzzyMatchScore(q, strings.ToLower(entry.Name))
		if score > 0 {
			matches = append(matches, scoredEntry{entry: entry, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	results := make([]*Entry, len(matches))
	for i, match := range matches {
		results[i] = match.entry
	}
	return results
}

// fuzzyMatchScore rates how well a query matches a case name: exact match
// scores 1.0, prefix 0.9, substring 0.7, anything else 0.
func fuzzyMatchScore(query, target string) float64 {
	switch {
	case query == target:
		return 1.0
	case strings.HasPrefix(target, query):
		return 0.9
	case strings.Contains(target, query):
		return 0.7
	}
	return 0.0
}
