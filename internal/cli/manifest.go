package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/pkg/manifest"
)

// NewManifestCmd creates the manifest command with subcommands.
func NewManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Manage suite manifests",
		Long: `Generate and verify suite manifests. A manifest snapshots the case
inventory of a suite with a checksum per input and golden file, so drift
can be detected without re-running the tool.`,
	}

	cmd.AddCommand(
		newManifestGenerateCmd(),
		newManifestVerifyCmd(),
	)

	return cmd
}

func newManifestGenerateCmd() *cobra.Command {
	var (
		output         string
		force          bool
		toolConstraint string
	)

	cmd := &cobra.Command{
		Use:   "generate [suite]",
		Short: "Generate a manifest from a suite tree",
		Long: `Generate a manifest (manifest.json) from a suite tree. The manifest
lists every case with the checksums of its input and golden file, ordered
by case name so an unchanged tree regenerates identically.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suiteName := ""
			if len(args) > 0 {
				suiteName = args[0]
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			suite, err := resolveSuite(cfg, suiteName)
			if err != nil {
				return err
			}

			gen := manifest.NewGenerator(suite.Name, suite.Root)
			gen.Layout = suiteLayout(suite)
			gen.ForceOverwrite = force
			gen.ToolConstraint = toolConstraint
			if output != "" {
				absOutput, err := filepath.Abs(output)
				if err != nil {
					return fmt.Errorf("invalid output file: %w", err)
				}
				gen.OutputPath = absOutput
			}

			if err := gen.Generate(cmd.Context()); err != nil {
				return fmt.Errorf("failed to generate manifest: %w", err)
			}

			count, err := gen.CountCases()
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failed to count cases: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Generated manifest with %d cases for suite %s\n", count, suite.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "f", "", "Manifest file to write (default: manifest.json in the suite root)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing manifest")
	cmd.Flags().StringVar(&toolConstraint, "tool-constraint", "", "Tool version constraint to record (e.g. '>= 2.0')")

	cmd.Example = `  # Snapshot the suite into its manifest
  goldfix manifest generate extractmethod --force

  # Write the manifest somewhere else and pin the tool version
  goldfix manifest generate extractmethod -f /tmp/manifest.json --tool-constraint ">= 2.1"`

	return cmd
}

func newManifestVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [suite]",
		Short: "Check a suite tree against its manifest",
		Long: `Compare the suite tree on disk against its manifest and report drift:
cases whose files changed, manifest entries with no case on disk, and cases
the manifest does not know. Exits non-zero when the tree drifted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suiteName := ""
			if len(args) > 0 {
				suiteName = args[0]
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			suite, err := resolveSuite(cfg, suiteName)
			if err != nil {
				return err
			}

			drift, err := manifest.NewManager(cfg).Verify(cmd.Context(), suite.Name)
			if err != nil {
				return fmt.Errorf("failed to verify manifest: %w", err)
			}

			if drift.Clean() {
				fmt.Printf("Suite %s matches its manifest\n", suite.Name)
				return nil
			}

			printDriftGroup("Changed", drift.Changed)
			printDriftGroup("Missing", drift.Missing)
			printDriftGroup("Untracked", drift.Untracked)
			total := len(drift.Changed) + len(drift.Missing) + len(drift.Untracked)
			return fmt.Errorf("suite %s drifted from its manifest in %d cases", suite.Name, total)
		},
	}

	return cmd
}

func printDriftGroup(label string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Printf("%s (%d):\n", label, len(names))
	fmt.Printf("  %s\n", strings.Join(names, "\n  "))
}
