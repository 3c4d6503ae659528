package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/internal/cli"
)

var (
	configPath   string
	verbose      bool
	noColor      bool
	outputFormat string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	cancel()
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goldfix",
		Short: "A golden-fixture regression harness for source transformation tools",
		Long: `goldfix keeps golden-fixture suites for external source transformation
tools honest:
- CLI: verify suites, bless new goldens, diff failures
- Distribution: pack, sync and unpack suite bundles
- Tooling: manifests, hooks and drift detection`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default: auto-detect)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (text, json)")

	// Set up CLI pkg variables
	cli.ConfigPath = &configPath
	cli.Verbose = &verbose
	cli.NoColor = &noColor
	cli.OutputFormat = &outputFormat

	// Add subcommands
	cmd.AddCommand(
		cli.NewVerifyCmd(),
		cli.NewBlessCmd(),
		cli.NewDiffCmd(),
		cli.NewListCmd(),
		cli.NewLintCmd(),
		cli.NewManifestCmd(),
		cli.NewPackCmd(),
		cli.NewUnpackCmd(),
		cli.NewSyncCmd(),
		cli.NewWatchCmd(),
		cli.NewSearchCmd(),
		cli.NewRepoCmd(),
		cli.NewHooksCmd(),
		cli.NewConfigCmd(),
		cli.NewCacheCmd(),
		cli.NewVersionCmd(),
	)

	return cmd
}
