package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeSuiteTree creates a suite tree from relative path to content.
func writeSuiteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestGenerator_Generate(t *testing.T) {
	suiteFiles := map[string]string{
		"MethodIndent.py":       "class Foo:\n    pass\n",
		"MethodIndent.after.py": "class Foo:\n    def bar(self):\n        pass\n",
		"NoGolden.py":           "x = 1\n",
		"nested/Deep.py":        "a = 1\n",
		"nested/Deep.after.py":  "a = 2\n",
	}

	tests := []struct {
		name       string
		setup      func(t *testing.T) (*Generator, string)
		wantErr    bool
		assertions func(t *testing.T, m *Manifest)
	}{
		{
			name: "successful generation",
			setup: func(t *testing.T) (*Generator, string) {
				root := writeSuiteTree(t, suiteFiles)
				outputPath := filepath.Join(t.TempDir(), "manifest.json")
				gen := NewGenerator("extractmethod", root)
				gen.OutputPath = outputPath
				return gen, outputPath
			},
			assertions: func(t *testing.T, m *Manifest) {
				assert.Equal(t, CurrentFormatVersion, m.FormatVersion)
				assert.Equal(t, "extractmethod", m.Suite)
				assert.False(t, m.GeneratedAt.IsZero())
				require.Len(t, m.Entries, 3)

				// Entries are sorted by case name
				assert.Equal(t, []string{"MethodIndent", "NoGolden", "nested/Deep"}, m.CaseNames())

				entry := m.FindEntry("MethodIndent")
				require.NotNil(t, entry)
				assert.Equal(t, "MethodIndent.py", entry.Input)
				assert.Equal(t, "MethodIndent.after.py", entry.Golden)
				assert.NotEmpty(t, entry.InputChecksum)
				assert.NotEmpty(t, entry.GoldenChecksum)
				assert.NotZero(t, entry.InputSize)
				assert.NotZero(t, entry.GoldenSize)

				noGolden := m.FindEntry("NoGolden")
				require.NotNil(t, noGolden)
				assert.Empty(t, noGolden.Golden)
				assert.Empty(t, noGolden.GoldenChecksum)
			},
		},
		{
			name: "default output inside suite root",
			setup: func(t *testing.T) (*Generator, string) {
				root := writeSuiteTree(t, suiteFiles)
				gen := NewGenerator("extractmethod", root)
				return gen, filepath.Join(root, DefaultFileName)
			},
			assertions: func(t *testing.T, m *Manifest) {
				assert.Len(t, m.Entries, 3)
			},
		},
		{
			name: "tool constraint recorded",
			setup: func(t *testing.T) (*Generator, string) {
				root := writeSuiteTree(t, suiteFiles)
				outputPath := filepath.Join(t.TempDir(), "manifest.json")
				gen := NewGenerator("extractmethod", root)
				gen.OutputPath = outputPath
				gen.ToolConstraint = ">= 2.1"
				return gen, outputPath
			},
			assertions: func(t *testing.T, m *Manifest) {
				assert.Equal(t, ">= 2.1", m.ToolConstraint)
			},
		},
		{
			name: "non-existent suite root",
			setup: func(t *testing.T) (*Generator, string) {
				outputPath := filepath.Join(t.TempDir(), "manifest.json")
				gen := NewGenerator("extractmethod", "/non/existent/directory")
				gen.OutputPath = outputPath
				return gen, outputPath
			},
			wantErr: true,
		},
		{
			name: "empty suite tree",
			setup: func(t *testing.T) (*Generator, string) {
				root := t.TempDir()
				outputPath := filepath.Join(t.TempDir(), "manifest.json")
				gen := NewGenerator("extractmethod", root)
				gen.OutputPath = outputPath
				return gen, outputPath
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator, outputPath := tt.setup(t)

			err := generator.Generate(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			m, err := ParseManifestFromFile(outputPath)
			require.NoError(t, err)
			if tt.assertions != nil {
				tt.assertions(t, m)
			}
		})
	}
}

func TestGenerator_ExistingOutput(t *testing.T) {
	root := writeSuiteTree(t, map[string]string{
		"Case.py":       "pass\n",
		"Case.after.py": "pass\n",
	})
	outputPath := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, os.WriteFile(outputPath, []byte("{}"), 0o644))

	gen := NewGenerator("s", root)
	gen.OutputPath = outputPath

	err := gen.Generate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exists")

	gen.ForceOverwrite = true
	require.NoError(t, gen.Generate(context.Background()))

	m, err := ParseManifestFromFile(outputPath)
	require.NoError(t, err)
	assert.Len(t, m.Entries, 1)
}

func TestGenerator_CountCases(t *testing.T) {
	root := writeSuiteTree(t, map[string]string{
		"A.py":       "pass\n",
		"A.after.py": "pass\n",
		"B.py":       "pass\n",
	})

	gen := NewGenerator("s", root)
	count, err := gen.CountCases()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestGenerator_StableEntries(t *testing.T) {
	root := writeSuiteTree(t, map[string]string{
		"B.py":       "b\n",
		"B.after.py": "b'\n",
		"A.py":       "a\n",
		"A.after.py": "a'\n",
	})

	gen := NewGenerator("s", root)
	first, err := gen.Build(context.Background())
	require.NoError(t, err)
	second, err := gen.Build(context.Background())
	require.NoError(t, err)

	// Same tree, same entries: only the generation timestamp may differ
	first.GeneratedAt = second.GeneratedAt
	firstJSON, err := first.ToJSON()
	require.NoError(t, err)
	secondJSON, err := second.ToJSON()
	require.NoError(t, err)
	assert.Equal(t, string(firstJSON), string(secondJSON))
}
