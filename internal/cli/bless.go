package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/pkg/model"
	"github.com/glorpus-work/goldfix/pkg/orchestrator"
)

// NewBlessCmd creates the bless command.
func NewBlessCmd() *cobra.Command {
	var (
		all    bool
		dryRun bool
		note   string
	)

	cmd := &cobra.Command{
		Use:   "bless [suite] [case...]",
		Short: "Accept current tool output as the new goldens",
		Long: `Re-run the selected cases and replace their golden files with the
current tool output. Only failing cases and cases without a golden file are
touched; every replacement is recorded in the bless journal.

Cases must be named explicitly, or --all must be given to bless every
failing case of the suite.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			suiteName := ""
			if len(args) > 0 {
				suiteName = args[0]
			}
			opts := orchestrator.BlessOptions{
				All:    all,
				DryRun: dryRun,
				Note:   note,
			}
			if len(args) > 1 {
				opts.Cases = args[1:]
			}
			return runBless(cmd, suiteName, opts)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Bless every failing case of the suite")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be blessed without writing anything")
	cmd.Flags().StringVar(&note, "note", "", "Record a note with the journal entries")

	cmd.Example = `  # Bless two cases after reviewing their diffs
  goldfix bless extractmethod MethodIndent SimpleCall

  # Accept a new tool version's output for the whole suite
  goldfix bless extractmethod --all --note "tool 2.1.0 reorders imports"

  # See what a mass bless would touch
  goldfix bless extractmethod --all --dry-run`

	return cmd
}

func runBless(cmd *cobra.Command, suiteName string, opts orchestrator.BlessOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	suite, err := resolveSuite(cfg, suiteName)
	if err != nil {
		return err
	}

	orch, err := newSuiteOrchestrator(cfg, suite)
	if err != nil {
		return err
	}

	entries, err := orch.Bless(cmd.Context(), newRunRequest(cfg, suite, nil), opts)
	if err != nil {
		return fmt.Errorf("failed to bless suite %s: %w", suite.Name, err)
	}

	if len(entries) == 0 {
		fmt.Println("Nothing to bless: all selected cases pass")
		return nil
	}

	verb := "blessed"
	if opts.DryRun {
		verb = "would bless"
	}
	for _, entry := range entries {
		fmt.Printf("%s %s (%s)\n", verb, entry.Case, describeEntry(entry))
	}
	fmt.Printf("%d golden files %s\n", len(entries), verb)
	return nil
}

func describeEntry(entry *model.BlessEntry) string {
	if entry.OldChecksum == "" {
		return "new golden " + shortChecksum(entry.NewChecksum)
	}
	return shortChecksum(entry.OldChecksum) + " -> " + shortChecksum(entry.NewChecksum)
}

func shortChecksum(sum string) string {
	if len(sum) > ShortChecksumLength {
		return sum[:ShortChecksumLength]
	}
	return sum
}
