package cli

import (
	"context"
	goerrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/internal/logger"
	"github.com/glorpus-work/goldfix/pkg/config"
	"github.com/glorpus-work/goldfix/pkg/orchestrator"
)

// watchDebounce collapses editor save bursts into one verification run.
const watchDebounce = 200 * time.Millisecond

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "watch [suite]",
		Short: "Re-verify a suite whenever its files change",
		Long: `Watch a suite tree and re-run verification whenever a case or golden
file changes. Changes are debounced so an editor writing several files
triggers a single run. Stop with Ctrl-C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suiteName := ""
			if len(args) > 0 {
				suiteName = args[0]
			}
			return runWatch(cmd.Context(), suiteName, jobs)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "Number of cases to run in parallel (default from config)")

	return cmd
}

func runWatch(ctx context.Context, suiteName string, jobs int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	suite, err := resolveSuite(cfg, suiteName)
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = cfg.Settings.MaxConcurrent
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watchTree(watcher, suite.Root); err != nil {
		return err
	}

	fmt.Printf("Watching suite %s at %s\n", suite.Name, suite.Root)
	verifyWatched(ctx, cfg, suite, jobs)

	timer := time.NewTimer(watchDebounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignoreWatchEvent(ev) {
				continue
			}
			// New directories need their own watch before files in them
			// produce events.
			if ev.Op.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					_ = watchTree(watcher, ev.Name)
				}
			}
			timer.Reset(watchDebounce)

		case <-timer.C:
			verifyWatched(ctx, cfg, suite, jobs)
			fmt.Printf("Watching suite %s at %s\n", suite.Name, suite.Root)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", logger.Fields{"error": err})
		}
	}
}

// watchTree adds root and every non-hidden directory below it.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

// ignoreWatchEvent filters events from editor scratch files and hidden
// paths.
func ignoreWatchEvent(ev fsnotify.Event) bool {
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "#") {
		return true
	}
	for _, suffix := range []string{".tmp", ".swp", ".swx", "~"} {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return ev.Op == fsnotify.Chmod
}

// verifyWatched runs one verification pass. A failing run keeps the watch
// alive; only printing problems surface.
func verifyWatched(ctx context.Context, cfg *config.Config, suite *config.SuiteConfig, jobs int) {
	// Rebuilt every pass so hook script edits take effect on the next run.
	orch, err := newSuiteOrchestrator(cfg, suite)
	if err != nil {
		logger.Error("Failed to wire suite", logger.Fields{"suite": suite.Name, "error": err})
		return
	}

	report, err := orch.Verify(ctx, newRunRequest(cfg, suite, nil), orchestrator.VerifyOptions{Concurrency: jobs})
	if err != nil {
		if goerrors.Is(err, context.Canceled) {
			return
		}
		logger.Error("Verification run failed", logger.Fields{"suite": suite.Name, "error": err})
		return
	}
	if err := printReport(cfg, report); err != nil {
		logger.Error("Failed to print report", logger.Fields{"error": err})
	}
	if !report.Ok() {
		logger.Warn("Suite is failing", logger.Fields{"suite": suite.Name, "failed": report.Failed + report.Errored + report.Missing})
	}
}
