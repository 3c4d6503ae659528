package manifest

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/fixture"
	"github.com/glorpus-work/goldfix/pkg/model"
)

// Generator builds a manifest.json from a suite tree. It discovers cases
// with the suite layout, hashes each input and golden file, and writes the
// entries sorted by case name so regeneration of an unchanged tree produces
// the same entry block.
//
// The generator does not attempt network access; it only reads local files.
type Generator struct {
	// Suite is the suite name recorded in the manifest.
	Suite string
	// Root is the suite tree to snapshot.
	Root string
	// Layout describes how case files are named inside the tree.
	Layout fixture.Layout
	// OutputPath is the full path of the manifest file to write. Empty means
	// manifest.json inside the suite root.
	OutputPath string
	// ToolConstraint is an optional tool version constraint recorded in the
	// manifest for consumers to check before running.
	ToolConstraint string
	// ForceOverwrite controls whether to overwrite an existing output file.
	ForceOverwrite bool
}

// NewGenerator creates a new Generator with default values.
func NewGenerator(suite, root string) *Generator {
	return &Generator{
		Suite:  suite,
		Root:   root,
		Layout: fixture.DefaultLayout(),
	}
}

// outputPath resolves the effective manifest location.
func (g *Generator) outputPath() string {
	if g.OutputPath != "" {
		return g.OutputPath
	}
	return filepath.Join(g.Root, DefaultFileName)
}

// Validate checks if the generator is properly configured.
func (g *Generator) Validate() error {
	if g.Suite == "" {
		return errors.Wrapf(errors.ErrSuiteRootEmpty, "suite name is required")
	}
	if g.Root == "" {
		return errors.Wrapf(errors.ErrInvalidPath, "suite root is required")
	}

	if fi, err := os.Stat(g.Root); os.IsNotExist(err) {
		return errors.Wrapf(errors.ErrInvalidPath, "suite root does not exist: %s", g.Root)
	} else if err == nil && !fi.IsDir() {
		return errors.Wrapf(errors.ErrInvalidPath, "suite root is not a directory: %s", g.Root)
	}

	output := g.outputPath()
	if !g.ForceOverwrite {
		if _, err := os.Stat(output); err == nil {
			return errors.Wrapf(errors.ErrInvalidPath,
				"output file exists (use ForceOverwrite to overwrite): %s", output)
		}
	}

	outputDir := filepath.Dir(output)
	if outputDir != "." {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		}
	}

	// Probe writability up front so Generate fails before hashing the tree
	testFile := filepath.Join(outputDir, ".goldfix_test_"+time.Now().Format("20060102150405"))
	f, err := os.Create(testFile)
	if err != nil {
		return errors.Wrapf(err, "output directory is not writable: %s", outputDir)
	}
	_ = f.Close()
	_ = os.Remove(testFile)

	return nil
}

// CountCases counts the cases the generator would record.
func (g *Generator) CountCases() (int, error) {
	scanner := fixture.NewScanner(g.Suite, g.Root, g.Layout)
	cases, err := scanner.Scan()
	if err != nil {
		return 0, err
	}
	return len(cases), nil
}

// Generate scans Root, builds a Manifest, and writes it to the output path.
func (g *Generator) Generate(ctx context.Context) error {
	if err := g.Validate(); err != nil {
		return err
	}

	m, err := g.Build(ctx)
	if err != nil {
		return err
	}

	output := g.outputPath()
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return err
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

// Build scans Root and returns the manifest without writing it.
func (g *Generator) Build(ctx context.Context) (*Manifest, error) {
	scanner := fixture.NewScanner(g.Suite, g.Root, g.Layout)
	cases, err := scanner.Scan()
	if err != nil {
		return nil, err
	}
	if len(cases) == 0 {
		return nil, errors.Wrapf(errors.ErrCaseNotFound, "no cases found in %s", g.Root)
	}

	m := NewManifest(g.Suite)
	m.ToolConstraint = g.ToolConstraint
	m.GeneratedAt = time.Now()

	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		entry, err := g.describeCase(c)
		if err != nil {
			return nil, fmt.Errorf("failed to process case %s: %w", c.Name, err)
		}
		m.Entries = append(m.Entries, entry)
	}

	sort.Slice(m.Entries, func(i, j int) bool { return m.Entries[i].Name < m.Entries[j].Name })

	return m, nil
}

func (g *Generator) describeCase(c *model.Case) (*Entry, error) {
	entry := &Entry{
		Name:  c.Name,
		Input: c.RelInput,
	}
	if c.Meta != nil {
		entry.Tags = c.Meta.Tags
	}

	stat, err := os.Stat(c.InputPath)
	if err != nil {
		return nil, err
	}
	entry.InputSize = stat.Size()

	checksum, err := sha256File(c.InputPath)
	if err != nil {
		return nil, err
	}
	entry.InputChecksum = checksum

	if c.HasGolden() {
		entry.Golden = c.RelGolden
		stat, err := os.Stat(c.GoldenPath)
		if err != nil {
			return nil, err
		}
		entry.GoldenSize = stat.Size()

		checksum, err := sha256File(c.GoldenPath)
		if err != nil {
			return nil, err
		}
		entry.GoldenChecksum = checksum
	}

	return entry, nil
}

func sha256File(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
