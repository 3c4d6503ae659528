package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/internal/logger"
	"github.com/glorpus-work/goldfix/pkg/fsutil"
	"github.com/glorpus-work/goldfix/pkg/hook"
)

// NewHooksCmd creates the hooks command with subcommands.
func NewHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage suite hook scripts",
		Long: `Manage the Tengo hook scripts of a suite. Hooks live under the
.goldfix/hooks directory of the suite root and run before a case
(pre-case), after comparison (post-case), or on the tool output before
comparison (normalize-actual).`,
	}

	cmd.AddCommand(
		newHooksInitCmd(),
		newHooksListCmd(),
	)

	return cmd
}

func newHooksInitCmd() *cobra.Command {
	var (
		suiteName string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "init TYPE",
		Short: "Create a starter hook script",
		Long:  "Write a commented starter script for the given hook type into the suite's hooks directory",
		Example: `  # Create a normalize-actual hook for the only configured suite
  goldfix hooks init normalize-actual

  # Create a pre-case hook for a specific suite
  goldfix hooks init pre-case --suite refactor`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runHooksInit(suiteName, args[0], force)
		},
	}

	cmd.Flags().StringVar(&suiteName, "suite", "", "Suite to create the hook for (default: the only configured suite)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing hook script")

	return cmd
}

func newHooksListCmd() *cobra.Command {
	var suiteName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed hook scripts",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runHooksList(suiteName)
		},
	}

	cmd.Flags().StringVar(&suiteName, "suite", "", "Suite to list hooks for (default: the only configured suite)")

	return cmd
}

func runHooksInit(suiteName, rawType string, force bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	suite, err := resolveSuite(cfg, suiteName)
	if err != nil {
		return err
	}

	hookType, err := parseHookType(rawType)
	if err != nil {
		return err
	}

	hooksDir := hook.HooksDir(suite.Root)
	if err := fsutil.EnsureDir(hooksDir); err != nil {
		return fmt.Errorf("failed to create hooks directory %s: %w", hooksDir, err)
	}

	scriptPath := filepath.Join(hooksDir, string(hookType)+hook.ScriptExtension)
	if _, err := os.Stat(scriptPath); err == nil && !force {
		return fmt.Errorf("hook script already exists at %s (use --force to overwrite)", scriptPath)
	}

	if err := os.WriteFile(scriptPath, []byte(hook.HookTemplate(hookType)+"\n"), fsutil.FileModeDefault); err != nil {
		return fmt.Errorf("failed to write hook script: %w", err)
	}

	logger.Success("Hook script created", logger.Fields{"suite": suite.Name, "path": scriptPath})
	return nil
}

func runHooksList(suiteName string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	suite, err := resolveSuite(cfg, suiteName)
	if err != nil {
		return err
	}

	hooksDir := hook.HooksDir(suite.Root)
	entries, err := os.ReadDir(hooksDir)
	if os.IsNotExist(err) {
		fmt.Printf("Suite %s has no hooks directory (%s)\n", suite.Name, hooksDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read hooks directory %s: %w", hooksDir, err)
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != hook.ScriptExtension {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), hook.ScriptExtension)
		marker := ""
		if _, err := parseHookType(name); err != nil {
			marker = "  (unknown type, ignored)"
		}
		fmt.Printf("%-20s %s%s\n", name, filepath.Join(hooksDir, entry.Name()), marker)
		count++
	}

	if count == 0 {
		fmt.Printf("Suite %s has no hook scripts\n", suite.Name)
	}
	return nil
}

func parseHookType(raw string) (hook.HookType, error) {
	switch hookType := hook.HookType(raw); hookType {
	case hook.PreCase, hook.PostCase, hook.NormalizeActual:
		return hookType, nil
	default:
		return "", fmt.Errorf("unknown hook type %s (valid: %s, %s, %s)",
			raw, hook.PreCase, hook.PostCase, hook.NormalizeActual)
	}
}
