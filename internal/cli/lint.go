package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/pkg/fixture"
)

// NewLintCmd creates the lint command.
func NewLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint [suite]",
		Short: "Check a suite tree for structural problems",
		Long: `Check a suite tree for structural problems: inputs without a golden
file, goldens and sidecars that belong to no input, duplicate case names,
and sidecars that do not parse. The command exits non-zero when it finds
anything.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			suiteName := ""
			if len(args) > 0 {
				suiteName = args[0]
			}
			return runLint(suiteName)
		},
	}

	return cmd
}

func runLint(suiteName string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	suite, err := resolveSuite(cfg, suiteName)
	if err != nil {
		return err
	}

	scanner := fixture.NewScanner(suite.Name, suite.Root, suiteLayout(suite))
	findings, err := scanner.Lint()
	if err != nil {
		return fmt.Errorf("failed to lint suite %s: %w", suite.Name, err)
	}

	if len(findings) == 0 {
		fmt.Printf("Suite %s is clean\n", suite.Name)
		return nil
	}

	if cfg.Settings.OutputFormat == "json" {
		data, err := json.MarshalIndent(findings, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode findings: %w", err)
		}
		fmt.Println(string(data))
	} else {
		for _, f := range findings {
			fmt.Println(f.String())
		}
	}

	return fmt.Errorf("suite %s has %d lint findings", suite.Name, len(findings))
}
