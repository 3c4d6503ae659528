//go:build integration

package main

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/goldfix/pkg/config"
)

// identityTool echoes the case input, so a case passes exactly when its
// golden matches the input file.
const identityTool = "cat {input}"

// rewriteTool upper-cases the word return, a cheap stand-in for a real
// transformation tool.
const rewriteTool = "sed s/return/RETURN/ {input}"

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("integration tests drive unix shell tools")
	}
}

// writeTestConfig writes a config file under tempDir with cache and state
// kept inside tempDir. Returns the config path.
func writeTestConfig(t *testing.T, tempDir string, suites []*config.SuiteConfig, repos ...*config.RepositoryConfig) string {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Settings.CacheDir = filepath.Join(tempDir, "cache")
	cfg.Settings.StateDir = filepath.Join(tempDir, "state")
	cfg.Settings.LogLevel = "error"
	cfg.Suites = suites
	cfg.Repositories = repos

	cfgPath := filepath.Join(tempDir, "config.yaml")
	require.NoError(t, cfg.SaveConfig(cfgPath))
	return cfgPath
}

// execCLI runs one goldfix invocation in process.
func execCLI(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}
