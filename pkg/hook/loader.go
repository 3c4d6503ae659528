package hook

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/glorpus-work/goldfix/pkg/errors"
)

// ScriptExtension is the file extension hook scripts must carry.
const ScriptExtension = ".tengo"

// HooksDir returns the directory under a suite root that holds hook
// scripts.
func HooksDir(suiteRoot string) string {
	return filepath.Join(suiteRoot, ".goldfix", "hooks")
}

// LoadHooksFromSuiteDir loads the hook scripts of a suite from
// <suiteRoot>/.goldfix/hooks/<type>.tengo. A suite without that directory
// simply has no hooks.
func LoadHooksFromSuiteDir(manager HookManager, suiteRoot string) error {
	hooksDir := HooksDir(suiteRoot)
	if _, err := os.Stat(hooksDir); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrapf(ErrHookLoad, "cannot stat hooks directory %s: %v", hooksDir, err)
	}
	return loadHooksFromDir(manager, hooksDir)
}

// loadHooksFromDir loads all hook scripts from a directory.
func loadHooksFromDir(manager HookManager, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(ErrHookLoad, "failed to read hooks directory %s: %v", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ScriptExtension {
			continue
		}

		hookType := HookType(strings.TrimSuffix(entry.Name(), ScriptExtension))
		switch hookType {
		case PreCase, PostCase, NormalizeActual:
			// Valid hook type
		default:
			continue // Skip unknown hook types
		}

		hookPath := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(hookPath)
		if err != nil {
			return errors.Wrapf(ErrHookLoad, "error reading hook file %s: %v", hookPath, err)
		}

		if err := manager.AddHook(Hook{
			Type:    hookType,
			Content: string(content),
		}); err != nil {
			return errors.Wrapf(err, "error adding hook %s", hookType)
		}
	}

	return nil
}

// HookTemplate generates a starter script for a hook type.
func HookTemplate(hookType HookType) string {
	switch hookType {
	case PreCase:
		return `// Pre-case hook
// This script runs before the tool is invoked for a case
// Available variables:
// - caseName: string - name of the case being verified
// - suiteName: string - name of the suite
// - inputPath: string - path to the case input file
// - goldenPath: string - path to the golden file
//
// Signal failure by assigning a message to err:
/*
os := import("os")
err := ""
if !os.exists(inputPath) {
    err = "input fixture is missing"
}
*/`

	case PostCase:
		return `// Post-case hook
// This script runs after comparison, regardless of outcome
// Available variables: same as the pre-case hook

// Example: Clean up scratch files the tool left behind
/*
os := import("os")
os.remove(inputPath + ".bak")
*/`

	case NormalizeActual:
		return `// Normalize-actual hook
// This script rewrites tool output before it is compared
// Available variables: same as the pre-case hook, plus
// - actual: string - the tool output, reassign it to rewrite

// Example: Strip a version banner the tool prints on the first line
/*
text := import("text")
lines := text.split(actual, "\n")
if len(lines) > 0 && text.has_prefix(lines[0], "refactor-tool") {
    actual = text.join(lines[1:], "\n")
}
*/`

	default:
		return "// Unknown hook type: " + string(hookType)
	}
}
