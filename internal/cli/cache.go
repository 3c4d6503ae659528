package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/pkg/cache"
)

// NewCacheCmd creates the cache command with subcommands.
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the bundle cache",
		Long:  "Clean, show information about, and manage cached manifests, bundles and extracted suites",
	}

	cmd.AddCommand(
		newCacheCleanCmd(),
		newCacheInfoCmd(),
		newCacheDirCmd(),
	)

	return cmd
}

func newCacheCleanCmd() *cobra.Command {
	var (
		all       bool
		manifests bool
		bundles   bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the bundle cache",
		Long:  "Remove cached files to free up disk space",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runCacheClean(all, manifests, bundles)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Clean all cached files")
	cmd.Flags().BoolVar(&manifests, "manifests", false, "Clean only cached suite manifests")
	cmd.Flags().BoolVar(&bundles, "bundles", false, "Clean only downloaded bundles")

	return cmd
}

func newCacheInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show cache information",
		Long:  "Display size and file counts for the bundle cache",
		RunE:  runCacheInfo,
	}

	return cmd
}

func newCacheDirCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dir",
		Short: "Show cache directory path",
		Long:  "Display the path to the cache directory",
		RunE:  runCacheDir,
	}

	return cmd
}

func runCacheClean(all, manifests, bundles bool) error {
	op, err := cacheOperation()
	if err != nil {
		return err
	}

	summary, err := op.Clean(all, manifests, bundles)
	if err != nil {
		return err
	}

	fmt.Println(summary)
	return nil
}

func runCacheInfo(*cobra.Command, []string) error {
	op, err := cacheOperation()
	if err != nil {
		return err
	}

	info, err := op.GetInfo()
	if err != nil {
		return err
	}

	fmt.Println(info)
	return nil
}

func runCacheDir(*cobra.Command, []string) error {
	op, err := cacheOperation()
	if err != nil {
		return err
	}

	fmt.Println(op.GetDirectory())
	return nil
}

func cacheOperation() (*cache.CacheOperation, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	return cache.NewCacheOperation(cache.NewManager(cfg.GetCacheDir())), nil
}
