//go:build integration

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glorpus-work/goldfix/pkg/config"
	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/test/testutil"
)

func TestVerify_PassingSuite(t *testing.T) {
	skipWithoutShell(t)
	tempDir := t.TempDir()
	suiteRoot := filepath.Join(tempDir, "suite")
	testutil.WriteTree(t, suiteRoot, map[string]string{
		"Simple.py":            "def f():\n    return 1\n",
		"Simple.after.py":      "def f():\n    return 1\n",
		"nested/Deep.py":       "def g():\n    pass\n",
		"nested/Deep.after.py": "def g():\n    pass\n",
	})
	cfgPath := writeTestConfig(t, tempDir, []*config.SuiteConfig{
		{Name: "refactor", Root: suiteRoot, Tool: identityTool},
	})

	require.NoError(t, execCLI(t, "--config", cfgPath, "verify"))
}

func TestVerify_FailingSuiteExitsNonZero(t *testing.T) {
	skipWithoutShell(t)
	tempDir := t.TempDir()
	suiteRoot := filepath.Join(tempDir, "suite")
	testutil.WriteTree(t, suiteRoot, map[string]string{
		"Good.py":       "x = 1\n",
		"Good.after.py": "x = 1\n",
		"Bad.py":        "y = 2\n",
		"Bad.after.py":  "y = 3\n",
	})
	cfgPath := writeTestConfig(t, tempDir, []*config.SuiteConfig{
		{Name: "refactor", Root: suiteRoot, Tool: identityTool},
	})

	err := execCLI(t, "--config", cfgPath, "verify")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrVerificationFailed)

	// Restricting to the passing case succeeds.
	require.NoError(t, execCLI(t, "--config", cfgPath, "verify", "refactor", "--case", "Good"))
}

func TestVerify_UpdateMissingCreatesGolden(t *testing.T) {
	skipWithoutShell(t)
	tempDir := t.TempDir()
	suiteRoot := filepath.Join(tempDir, "suite")
	testutil.WriteTree(t, suiteRoot, map[string]string{
		"Fresh.py": "def h():\n    return 42\n",
	})
	cfgPath := writeTestConfig(t, tempDir, []*config.SuiteConfig{
		{Name: "refactor", Root: suiteRoot, Tool: identityTool},
	})

	// Without the flag the missing golden fails the run.
	require.Error(t, execCLI(t, "--config", cfgPath, "verify"))

	require.NoError(t, execCLI(t, "--config", cfgPath, "verify", "--update-missing"))

	golden, err := os.ReadFile(filepath.Join(suiteRoot, "Fresh.after.py"))
	require.NoError(t, err)
	assert.Equal(t, "def h():\n    return 42\n", string(golden))

	// The created golden makes the plain run pass.
	require.NoError(t, execCLI(t, "--config", cfgPath, "verify"))
}

func TestVerify_SkipViaSidecar(t *testing.T) {
	skipWithoutShell(t)
	tempDir := t.TempDir()
	suiteRoot := filepath.Join(tempDir, "suite")
	testutil.WriteTree(t, suiteRoot, map[string]string{
		"Flaky.py":        "z = 1\n",
		"Flaky.after.py":  "completely different\n",
		"Flaky.case.yaml": "skip: tool crashes on this input\n",
	})
	cfgPath := writeTestConfig(t, tempDir, []*config.SuiteConfig{
		{Name: "refactor", Root: suiteRoot, Tool: identityTool},
	})

	// The only case is skipped, so the run is clean.
	require.NoError(t, execCLI(t, "--config", cfgPath, "verify"))
}

func TestBless_AcceptsNewOutput(t *testing.T) {
	skipWithoutShell(t)
	tempDir := t.TempDir()
	suiteRoot := filepath.Join(tempDir, "suite")
	testutil.WriteTree(t, suiteRoot, map[string]string{
		"Rewrite.py":       "def f():\n    return 1\n",
		"Rewrite.after.py": "stale golden\n",
	})
	cfgPath := writeTestConfig(t, tempDir, []*config.SuiteConfig{
		{Name: "refactor", Root: suiteRoot, Tool: rewriteTool},
	})

	require.Error(t, execCLI(t, "--config", cfgPath, "verify"))

	require.NoError(t, execCLI(t, "--config", cfgPath, "bless", "refactor", "Rewrite"))

	golden, err := os.ReadFile(filepath.Join(suiteRoot, "Rewrite.after.py"))
	require.NoError(t, err)
	assert.Equal(t, "def f():\n    RETURN 1\n", string(golden))

	require.NoError(t, execCLI(t, "--config", cfgPath, "verify"))

	// Every bless lands in the journal.
	journal := filepath.Join(tempDir, "state", "goldfix", "state", "blessed.json")
	if _, err := os.Stat(journal); err != nil {
		t.Fatalf("expected bless journal at %s: %v", journal, err)
	}
}

func TestBless_DryRunLeavesGoldenAlone(t *testing.T) {
	skipWithoutShell(t)
	tempDir := t.TempDir()
	suiteRoot := filepath.Join(tempDir, "suite")
	testutil.WriteTree(t, suiteRoot, map[string]string{
		"Keep.py":       "a = 1\n",
		"Keep.after.py": "old\n",
	})
	cfgPath := writeTestConfig(t, tempDir, []*config.SuiteConfig{
		{Name: "refactor", Root: suiteRoot, Tool: identityTool},
	})

	require.NoError(t, execCLI(t, "--config", cfgPath, "bless", "refactor", "--all", "--dry-run"))

	golden, err := os.ReadFile(filepath.Join(suiteRoot, "Keep.after.py"))
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(golden))
}

func TestDiff_PrintsFailingCase(t *testing.T) {
	skipWithoutShell(t)
	tempDir := t.TempDir()
	suiteRoot := filepath.Join(tempDir, "suite")
	testutil.WriteTree(t, suiteRoot, map[string]string{
		"Drift.py":       "value = 1\n",
		"Drift.after.py": "value = 2\n",
	})
	cfgPath := writeTestConfig(t, tempDir, []*config.SuiteConfig{
		{Name: "refactor", Root: suiteRoot, Tool: identityTool},
	})

	// diff prints the divergence but is an inspection command, it does not
	// fail the invocation.
	require.NoError(t, execCLI(t, "--config", cfgPath, "diff", "refactor", "Drift"))
}
