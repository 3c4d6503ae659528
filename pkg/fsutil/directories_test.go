package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDir(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "creates new directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "suites")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "suites", "extractmethod", "nested")
			},
		},
		{
			name: "succeeds when directory already exists",
			setup: func(t *testing.T) string {
				return t.TempDir()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			path := testCase.setup(t)

			err := EnsureDir(path)
			require.NoError(t, err)
			assert.DirExists(t, path)
		})
	}
}

func TestEnsureDir_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping permission test on Windows")
	}

	path := filepath.Join(t.TempDir(), "state")
	require.NoError(t, EnsureDir(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(DirModeDefault), info.Mode().Perm())
}

func TestEnsureFileDir(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{
			name: "creates parent directory for file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "suites", "manifest.json")
			},
		},
		{
			name: "creates nested parent directories for file",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "a", "b", "blessed.json")
			},
		},
		{
			name: "succeeds when parent directory exists",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "file.txt")
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			filePath := testCase.path(t)

			err := EnsureFileDir(filePath)
			require.NoError(t, err)
			assert.DirExists(t, filepath.Dir(filePath))
		})
	}
}

func TestEnsureDir_PermissionDenied(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping permission test on Windows")
	}

	tempDir := t.TempDir()
	readonlyDir := filepath.Join(tempDir, "readonly")
	err := os.Mkdir(readonlyDir, 0o555)
	require.NoError(t, err)

	err = EnsureDir(filepath.Join(readonlyDir, "shouldfail"))
	assert.Error(t, err)
}
