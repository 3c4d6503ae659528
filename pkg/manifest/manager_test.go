package manifest

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/goldfix/pkg/config"
	"github.com/glorpus-work/goldfix/pkg/errors"
)

func managerFixture(t *testing.T) (*config.Config, string) {
	t.Helper()
	root := writeSuiteTree(t, map[string]string{
		"A.py":       "a = 1\n",
		"A.after.py": "a = 2\n",
		"B.py":       "b = 1\n",
		"B.after.py": "b = 2\n",
	})

	gen := NewGenerator("extractmethod", root)
	require.NoError(t, gen.Generate(context.Background()))

	cfg := config.DefaultConfig()
	require.NoError(t, cfg.AddSuite(&config.SuiteConfig{
		Name: "extractmethod",
		Root: root,
		Tool: "true",
	}))
	return cfg, root
}

func TestManagerVerify(t *testing.T) {
	cfg, root := managerFixture(t)
	mgr := NewManager(cfg)

	t.Run("CleanTree", func(t *testing.T) {
		drift, err := mgr.Verify(context.Background(), "extractmethod")
		require.NoError(t, err)
		assert.True(t, drift.Clean())
	})

	t.Run("ChangedGolden", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(root, "B.after.py"), []byte("b = 3\n"), 0o644))

		drift, err := mgr.Verify(context.Background(), "extractmethod")
		require.NoError(t, err)
		assert.False(t, drift.Clean())
		assert.Equal(t, []string{"B"}, drift.Changed)
		assert.Empty(t, drift.Missing)
		assert.Empty(t, drift.Untracked)
	})

	t.Run("MissingAndUntracked", func(t *testing.T) {
		require.NoError(t, os.Remove(filepath.Join(root, "A.py")))
		require.NoError(t, os.Remove(filepath.Join(root, "A.after.py")))
		require.NoError(t, os.WriteFile(filepath.Join(root, "C.py"), []byte("c = 1\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(root, "C.after.py"), []byte("c = 2\n"), 0o644))

		drift, err := mgr.Verify(context.Background(), "extractmethod")
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, drift.Changed)
		assert.Equal(t, []string{"A"}, drift.Missing)
		assert.Equal(t, []string{"C"}, drift.Untracked)
	})

	t.Run("UnknownSuite", func(t *testing.T) {
		_, err := mgr.Verify(context.Background(), "nope")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrSuiteNotFound)
	})
}

func TestManagerIsStale(t *testing.T) {
	cfg, root := managerFixture(t)
	mgr := NewManager(cfg)

	base := time.Now().Add(-2 * time.Hour)
	for _, name := range []string{"A.py", "A.after.py", "B.py", "B.after.py"} {
		require.NoError(t, os.Chtimes(filepath.Join(root, name), base, base))
	}
	manifestPath := filepath.Join(root, DefaultFileName)
	require.NoError(t, os.Chtimes(manifestPath, base.Add(time.Hour), base.Add(time.Hour)))

	assert.False(t, mgr.IsStale("extractmethod"))

	// A case edited after the manifest was generated makes it stale
	newer := base.Add(90 * time.Minute)
	require.NoError(t, os.Chtimes(filepath.Join(root, "A.py"), newer, newer))
	assert.True(t, mgr.IsStale("extractmethod"))

	assert.True(t, mgr.IsStale("unknown-suite"))
}

func TestManagerIsStaleMissingManifest(t *testing.T) {
	root := writeSuiteTree(t, map[string]string{"A.py": "a\n"})
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.AddSuite(&config.SuiteConfig{Name: "s", Root: root, Tool: "true"}))

	mgr := NewManager(cfg)
	assert.True(t, mgr.IsStale("s"))
}

func TestManagerFindCases(t *testing.T) {
	cfg, _ := managerFixture(t)

	// Second suite without a manifest is skipped, not fatal
	require.NoError(t, cfg.AddSuite(&config.SuiteConfig{
		Name: "unmanifested",
		Root: t.TempDir(),
		Tool: "true",
	}))

	mgr := NewManager(cfg)

	found, err := mgr.FindCases("A")
	require.NoError(t, err)
	require.Len(t, found, 1)
	entry, ok := found["extractmethod"]
	require.True(t, ok)
	assert.Equal(t, "A.py", entry.Input)

	_, err = mgr.FindCases("missing-case")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCaseNotFound)
}

func TestManagerCacheAge(t *testing.T) {
	cfg, root := managerFixture(t)
	mgr := NewManager(cfg)

	old := time.Now().Add(-30 * time.Minute)
	require.NoError(t, os.Chtimes(filepath.Join(root, DefaultFileName), old, old))

	age, err := mgr.CacheAge("extractmethod")
	require.NoError(t, err)
	assert.InDelta(t, (30 * time.Minute).Seconds(), age.Seconds(), 60)

	_, err = mgr.CacheAge("unknown")
	require.Error(t, err)
}

func TestManagerManifestPath(t *testing.T) {
	cfg, root := managerFixture(t)
	mgr := NewManager(cfg)

	path, err := mgr.ManifestPath("extractmethod")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, DefaultFileName), path)

	_, err = mgr.ManifestPath("unknown")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrSuiteNotFound)
}
