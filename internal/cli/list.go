package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/pkg/fixture"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	var nameFilter string

	cmd := &cobra.Command{
		Use:   "list [suite]",
		Short: "List suites and their cases",
		Long: `List the configured suites, or the cases of one suite.

Without a suite argument, shows every configured suite with its root and
tool command. With a suite, shows each case and whether it has a golden
file. Use --name to filter cases by name.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runListSuites()
			}
			return runListCases(args[0], nameFilter)
		},
	}

	cmd.Flags().StringVar(&nameFilter, "name", "", "Filter cases by name (partial match)")

	return cmd
}

func runListSuites() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Suites) == 0 {
		fmt.Println("No suites configured")
		return nil
	}

	fmt.Printf("%-20s %-40s %s\n", "SUITE", "ROOT", "TOOL")
	fmt.Println(strings.Repeat("-", 75))
	for _, suite := range cfg.Suites {
		fmt.Printf("%-20s %-40s %s\n", suite.Name, suite.Root, suite.Tool)
	}
	return nil
}

func runListCases(suiteName, nameFilter string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	suite, err := resolveSuite(cfg, suiteName)
	if err != nil {
		return err
	}

	scanner := fixture.NewScanner(suite.Name, suite.Root, suiteLayout(suite))
	cases, err := scanner.Scan()
	if err != nil {
		return fmt.Errorf("failed to scan suite %s: %w", suite.Name, err)
	}

	shown := 0
	fmt.Printf("%-40s %-10s %s\n", "CASE", "GOLDEN", "NOTES")
	fmt.Println(strings.Repeat("-", 65))
	for _, c := range cases {
		if nameFilter != "" && !strings.Contains(c.Name, nameFilter) {
			continue
		}
		shown++

		golden := "yes"
		if !c.HasGolden() {
			golden = "missing"
		}
		notes := ""
		if c.Meta.ShouldSkip() {
			notes = "skip: " + c.Meta.Skip
		} else if c.Meta != nil && c.Meta.ToolConstraint != "" {
			notes = "tool " + c.Meta.ToolConstraint
		}
		fmt.Printf("%-40s %-10s %s\n", c.Name, golden, notes)
	}

	if shown == 0 {
		fmt.Println("No cases found")
		return nil
	}
	fmt.Printf("\n%d cases\n", shown)
	return nil
}
