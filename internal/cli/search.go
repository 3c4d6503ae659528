package cli

import (
	goerrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/manifest"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search for cases",
		Long: `Search for cases across all suite manifests using fuzzy matching.

The search performs fuzzy matching on case names and returns results
sorted by relevance (best matches first). Suites without a generated
manifest are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runSearch(args[0])
		},
	}

	return cmd
}

func runSearch(query string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mm := manifest.NewManager(cfg)
	totalMatches := 0

	for _, suite := range cfg.Suites {
		m, err := mm.Load(suite.Name)
		if err != nil {
			if goerrors.Is(err, errors.ErrManifestNotFound) {
				continue
			}
			return fmt.Errorf("failed to load manifest for suite %s: %w", suite.Name, err)
		}

		entries := m.FuzzySearchEntries(query)
		if len(entries) == 0 {
			continue
		}

		fmt.Printf("\n%s:\n", suite.Name)
		fmt.Println(strings.Repeat("-", 60))
		fmt.Printf("%-40s %-10s %s\n", "CASE", "GOLDEN", "TAGS")
		for _, entry := range entries {
			golden := "yes"
			if entry.Golden == "" {
				golden = "no"
			}
			fmt.Printf("%-40s %-10s %s\n", entry.Name, golden, strings.Join(entry.Tags, ","))
		}
		totalMatches += len(entries)
	}

	if totalMatches == 0 {
		fmt.Printf("No cases found matching '%s'\n", query)
		return nil
	}

	fmt.Printf("\nFound %d case(s) matching '%s'\n", totalMatches, query)
	return nil
}
