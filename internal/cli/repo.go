package cli

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/internal/logger"
	"github.com/glorpus-work/goldfix/pkg/orchestrator"
)

// NewRepoCmd creates the repo command with subcommands.
func NewRepoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repo",
		Short: "Manage bundle repositories",
		Long:  "Add, remove, list, and manage remote suite bundle repositories",
	}

	cmd.AddCommand(
		newRepoAddCmd(),
		newRepoRemoveCmd(),
		newRepoEnableCmd(),
		newRepoDisableCmd(),
		newRepoListCmd(),
	)

	return cmd
}

func newRepoAddCmd() *cobra.Command {
	var (
		name     string
		checksum string
		priority uint
	)

	cmd := &cobra.Command{
		Use:   "add URL",
		Short: "Add a bundle repository",
		Long:  "Add a remote suite bundle by URL. The URL points at the bundle file; its manifest is expected next to it.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRepoAdd(args[0], name, checksum, priority)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Repository name (derived from the URL if not provided)")
	cmd.Flags().StringVar(&checksum, "checksum", "", "Expected sha256 of the bundle")
	cmd.Flags().UintVar(&priority, "priority", 0, "Repository priority (higher numbers sync first)")

	return cmd
}

func newRepoRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a bundle repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRepoRemove(args[0])
		},
	}

	return cmd
}

func newRepoEnableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enable NAME",
		Short: "Enable a bundle repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRepoSetEnabled(args[0], true)
		},
	}

	return cmd
}

func newRepoDisableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disable NAME",
		Short: "Disable a bundle repository",
		Long:  "Disabled repositories are kept in the configuration but skipped by sync",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRepoSetEnabled(args[0], false)
		},
	}

	return cmd
}

func newRepoListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List configured repositories",
		RunE:  runRepoList,
	}

	return cmd
}

func runRepoAdd(rawURL, name, checksum string, priority uint) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if name == "" {
		name, err = repoNameFromURL(rawURL)
		if err != nil {
			return err
		}
	}

	if err := cfg.AddRepository(name, rawURL); err != nil {
		return err
	}
	repo := cfg.GetRepository(name)
	repo.Checksum = checksum
	repo.Priority = priority

	if err := cfg.SaveConfig(getConfigPath()); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Success("Repository added", logger.Fields{"name": name, "url": rawURL})
	return nil
}

func runRepoRemove(name string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !cfg.RemoveRepository(name) {
		return fmt.Errorf("repository %s is not configured", name)
	}
	if err := cfg.SaveConfig(getConfigPath()); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	logger.Success("Repository removed", logger.Fields{"name": name})
	return nil
}

func runRepoSetEnabled(name string, enabled bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if !cfg.EnableRepository(name, enabled) {
		return fmt.Errorf("repository %s is not configured", name)
	}
	if err := cfg.SaveConfig(getConfigPath()); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	state := "enabled"
	if !enabled {
		state = "disabled"
	}
	logger.Success("Repository "+state, logger.Fields{"name": name})
	return nil
}

func runRepoList(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if len(cfg.Repositories) == 0 {
		fmt.Println("No repositories configured.")
		return nil
	}

	fmt.Printf("%-20s %-10s %-10s %s\n", "NAME", "PRIORITY", "STATUS", "URL")
	fmt.Println(strings.Repeat("-", 75))
	for _, repo := range cfg.Repositories {
		status := "enabled"
		if !repo.IsEnabled() {
			status = "disabled"
		}
		fmt.Printf("%-20s %-10d %-10s %s\n", repo.Name, repo.Priority, status, repo.URL)
	}

	return nil
}

// repoNameFromURL derives a repository name from the bundle file name.
func repoNameFromURL(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid repository URL %s: %w", rawURL, err)
	}

	base := path.Base(parsed.Path)
	name := strings.TrimSuffix(base, orchestrator.BundleExt)
	if name == "" || name == "/" || name == "." {
		return "", fmt.Errorf("cannot derive a repository name from %s, pass --name", rawURL)
	}
	return name, nil
}
