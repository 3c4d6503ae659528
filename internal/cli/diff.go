package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/pkg/model"
	"github.com/glorpus-work/goldfix/pkg/orchestrator"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <suite> <case>",
		Short: "Show the diff between a case's golden and the current tool output",
		Long: `Run the tool for a single case and show a unified diff between the
golden file and the current output. Prints nothing but a confirmation when
the case passes.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(cmd, args[0], args[1])
		},
	}

	return cmd
}

func runDiff(cmd *cobra.Command, suiteName, caseName string) error {
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

	report, err := orch.Verify(cmd.Context(), newRunRequest(cfg, suite, nil), orchestrator.VerifyOptions{
		Concurrency: 1,
		CaseFilter:  []string{caseName},
	})
	if err != nil {
		return fmt.Errorf("failed to run case %s: %w", caseName, err)
	}
	if report.Total() != 1 {
		return fmt.Errorf("case %s produced no result", caseName)
	}

	res := report.Results[0]
	switch res.Status {
	case model.StatusPass:
		fmt.Printf("Case %s passes (%s)\n", caseName, res.Message)
	case model.StatusSkip:
		fmt.Printf("Case %s is skipped: %s\n", caseName, res.Message)
	case model.StatusMissing:
		fmt.Printf("Case %s has no golden file yet; run bless to create one\n", caseName)
	case model.StatusFail:
		fmt.Print(res.Diff)
	case model.StatusError:
		return fmt.Errorf("case %s: %s", caseName, res.Message)
	}
	return nil
}
