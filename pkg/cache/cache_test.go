package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glorpus-work/goldfix/pkg/cache"
	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedCache fills a cache directory with known content in every subdirectory.
func seedCache(t *testing.T, dir string) {
	t.Helper()
	files := map[string][]byte{
		filepath.Join(cache.ManifestDirName, "refactor.json"):          []byte(`{"version":1}`),
		filepath.Join(cache.ManifestDirName, "rename.json"):            []byte(`{}`),
		filepath.Join(cache.BundleDirName, "refactor.goldpack"):        []byte("bundle bytes"),
		filepath.Join(cache.SuiteDirName, "refactor", "MethodBase.py"): []byte("class Foo:\n    pass\n"),
	}
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, content, 0o644))
	}
}

func TestNewDefaultManager(t *testing.T) {
	mgr, err := cache.NewDefaultManager()
	require.NoError(t, err)
	require.NotNil(t, mgr)

	userCacheDir, err := os.UserCacheDir()
	require.NoError(t, err)

	expectedDir := filepath.Join(userCacheDir, "goldfix")
	assert.Equal(t, expectedDir, mgr.GetDirectory())
}

func TestSetDirectory(t *testing.T) {
	tests := []struct {
		name        string
		directory   string
		expectError bool
	}{
		{
			name:        "valid directory",
			directory:   t.TempDir(),
			expectError: false,
		},
		{
			name:        "empty directory",
			directory:   "",
			expectError: true,
		},
		{
			name:        "non-existent directory",
			directory:   filepath.Join(t.TempDir(), "nonexistent"),
			expectError: false,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mgr := cache.NewManager(t.TempDir())

			err := mgr.SetDirectory(testCase.directory)

			if testCase.expectError {
				require.ErrorIs(t, err, errors.ErrCacheDirectory)
			} else {
				require.NoError(t, err)
				assert.Equal(t, testCase.directory, mgr.GetDirectory())
			}
		})
	}
}

func TestCleanManifestsOnly(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)
	mgr := cache.NewManager(dir)

	result, err := mgr.Clean(cache.CleanOptions{Manifests: true})
	require.NoError(t, err)

	assert.Equal(t, int64(15), result.ManifestFreed)
	assert.Zero(t, result.BundleFreed)
	assert.Zero(t, result.SuiteFreed)
	assert.Equal(t, result.ManifestFreed, result.TotalFreed)

	entries, err := os.ReadDir(filepath.Join(dir, cache.ManifestDirName))
	require.NoError(t, err)
	assert.Empty(t, entries, "manifest dir should be recreated empty")

	_, err = os.Stat(filepath.Join(dir, cache.BundleDirName, "refactor.goldpack"))
	assert.NoError(t, err, "bundles must survive a manifests-only clean")
}

func TestCleanDefaultsToAll(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)
	mgr := cache.NewManager(dir)

	result, err := mgr.Clean(cache.CleanOptions{})
	require.NoError(t, err)

	assert.Positive(t, result.ManifestFreed)
	assert.Positive(t, result.BundleFreed)
	assert.Positive(t, result.SuiteFreed)
	assert.Equal(t, result.ManifestFreed+result.BundleFreed+result.SuiteFreed, result.TotalFreed)
}

func TestCleanEmptyCache(t *testing.T) {
	mgr := cache.NewManager(t.TempDir())

	result, err := mgr.Clean(cache.CleanOptions{All: true})
	require.NoError(t, err)
	assert.Zero(t, result.TotalFreed)
}

func TestGetInfo(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)
	mgr := cache.NewManager(dir)

	info, err := mgr.GetInfo()
	require.NoError(t, err)

	assert.Equal(t, dir, info.Directory)
	assert.Equal(t, 2, info.ManifestFiles)
	assert.Equal(t, int64(15), info.ManifestSize)
	assert.Equal(t, 1, info.BundleFiles)
	assert.Equal(t, int64(12), info.BundleSize)
	assert.Equal(t, 1, info.SuiteFiles)
	assert.Equal(t, info.ManifestSize+info.BundleSize+info.SuiteSize, info.TotalSize)
}

func TestGetInfoEmptyCache(t *testing.T) {
	mgr := cache.NewManager(t.TempDir())

	info, err := mgr.GetInfo()
	require.NoError(t, err)
	assert.Zero(t, info.TotalSize)
	assert.Zero(t, info.ManifestFiles)
	assert.Zero(t, info.BundleFiles)
}

func TestCacheOperationClean(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)
	op := cache.NewCacheOperation(cache.NewManager(dir))

	msg, err := op.Clean(false, true, false)
	require.NoError(t, err)
	assert.Contains(t, msg, "Cleaned cache")
	assert.Contains(t, msg, "Manifests:")
	assert.NotContains(t, msg, "Bundles:")

	msg, err = op.Clean(false, true, false)
	require.NoError(t, err)
	assert.Equal(t, "No files were removed from the cache.", msg)
}

func TestCacheOperationGetInfo(t *testing.T) {
	dir := t.TempDir()
	seedCache(t, dir)
	op := cache.NewCacheOperation(cache.NewManager(dir))

	msg, err := op.GetInfo()
	require.NoError(t, err)
	assert.Contains(t, msg, "Cache Information:")
	assert.Contains(t, msg, dir)
	assert.Contains(t, msg, "Manifests:")
	assert.Contains(t, msg, "(2 files)")
}
