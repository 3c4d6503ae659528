package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/pkg/config"
	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/model"
	"github.com/glorpus-work/goldfix/pkg/orchestrator"
)

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	var (
		cases         []string
		jobs          int
		failFast      bool
		updateMissing bool
		actualDir     string
	)

	cmd := &cobra.Command{
		Use:   "verify [suite]",
		Short: "Run a suite against its golden files",
		Long: `Run the configured tool over every case of a suite and compare the
output against the golden files. Failing cases are reported with a unified
diff. The command exits non-zero when any case fails, errors, or has no
golden file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suiteName := ""
			if len(args) > 0 {
				suiteName = args[0]
			}
			opts := orchestrator.VerifyOptions{
				Concurrency:   jobs,
				FailFast:      failFast,
				UpdateMissing: updateMissing,
				CaseFilter:    cases,
				ActualDir:     actualDir,
			}
			return runVerify(cmd.Context(), suiteName, opts)
		},
	}

	cmd.Flags().StringArrayVar(&cases, "case", nil, "Verify only the named case (repeatable)")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Number of cases to run in parallel (default from config)")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop after the first failing case")
	cmd.Flags().BoolVar(&updateMissing, "update-missing", false, "Create goldens for cases that have none")
	cmd.Flags().StringVar(&actualDir, "actual-dir", "", "Keep the tool output of failing cases in this directory")

	cmd.Example = `  # Verify the only configured suite
  goldfix verify

  # Verify one suite with 8 workers and stop on the first failure
  goldfix verify extractmethod --jobs 8 --fail-fast

  # Verify two cases and keep their output for inspection
  goldfix verify extractmethod --case MethodIndent --case SimpleCall --actual-dir /tmp/actual`

	return cmd
}

func runVerify(ctx context.Context, suiteName string, opts orchestrator.VerifyOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	suite, err := resolveSuite(cfg, suiteName)
	if err != nil {
		return err
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = cfg.Settings.MaxConcurrent
	}

	orch, err := newSuiteOrchestrator(cfg, suite)
	if err != nil {
		return err
	}

	report, err := orch.Verify(ctx, newRunRequest(cfg, suite, nil), opts)
	if err != nil {
		return fmt.Errorf("failed to verify suite %s: %w", suite.Name, err)
	}

	if err := printReport(cfg, report); err != nil {
		return err
	}
	if !report.Ok() {
		return errors.Wrapf(errors.ErrVerificationFailed, "suite %s", suite.Name)
	}
	return nil
}

// printReport renders a run report in the configured output format.
func printReport(cfg *config.Config, report *model.RunReport) error {
	if cfg.Settings.OutputFormat == "json" {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	for _, res := range report.Results {
		fmt.Printf("%-8s %s (%s)", strings.ToUpper(string(res.Status)), res.Case.Name, res.Duration.Round(time.Millisecond))
		if res.Message != "" {
			fmt.Printf("  %s", res.Message)
		}
		fmt.Println()
		if res.Diff != "" {
			fmt.Println(res.Diff)
		}
		if res.ActualPath != "" {
			fmt.Printf("         actual output kept at %s\n", res.ActualPath)
		}
	}

	fmt.Printf("\n%s: %s\n", report.Suite, summarizeReport(report))
	return nil
}

func summarizeReport(report *model.RunReport) string {
	elapsed := report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond)
	return fmt.Sprintf("%d passed, %d failed, %d skipped, %d errored, %d missing in %s (tool version %s)",
		report.Passed, report.Failed, report.Skipped, report.Errored, report.Missing, elapsed, report.ToolVersion)
}
