package cache

import (
	"fmt"

	"github.com/glorpus-work/goldfix/internal/logger"
	pkgerrors "github.com/glorpus-work/goldfix/pkg/errors"
)

// CacheOperation wraps a Manager with the human-readable reporting the CLI
// prints for `cache clean` and `cache info`.
type CacheOperation struct {
	manager Manager
}

// NewCacheOperation creates a new cache operation instance.
func NewCacheOperation(manager Manager) *CacheOperation {
	return &CacheOperation{
		manager: manager,
	}
}

// Clean cleans the cache based on the provided options and returns a summary.
func (op *CacheOperation) Clean(all, manifests, bundles bool) (string, error) {
	options := CleanOptions{
		All:       all,
		Manifests: manifests,
		Bundles:   bundles,
	}

	logger.Debug("Cleaning cache", logger.Fields{
		"all":       options.All,
		"manifests": options.Manifests,
		"bundles":   options.Bundles,
	})

	result, err := op.manager.Clean(options)
	if err != nil {
		return "", fmt.Errorf("%w: %w", pkgerrors.ErrCacheClean, err)
	}

	if result.TotalFreed == 0 {
		return "No files were removed from the cache.", nil
	}

	msg := fmt.Sprintf("Cleaned cache. Freed %s of disk space.", formatBytes(result.TotalFreed))
	if result.ManifestFreed > 0 {
		msg += fmt.Sprintf("\n- Manifests: %s", formatBytes(result.ManifestFreed))
	}
	if result.BundleFreed > 0 {
		msg += fmt.Sprintf("\n- Bundles: %s", formatBytes(result.BundleFreed))
	}
	if result.SuiteFreed > 0 {
		msg += fmt.Sprintf("\n- Extracted suites: %s", formatBytes(result.SuiteFreed))
	}

	return msg, nil
}

// GetInfo returns a human-readable summary of the cache.
func (op *CacheOperation) GetInfo() (string, error) {
	info, err := op.manager.GetInfo()
	if err != nil {
		return "", fmt.Errorf("%w: %w", pkgerrors.ErrCacheInfo, err)
	}

	return fmt.Sprintf(`Cache Information:
  Directory:  %s
  Total Size: %s
  Manifests:  %s (%d files)
  Bundles:    %s (%d files)
  Suites:     %s (%d files)`,
		info.Directory,
		formatBytes(info.TotalSize),
		formatBytes(info.ManifestSize),
		info.ManifestFiles,
		formatBytes(info.BundleSize),
		info.BundleFiles,
		formatBytes(info.SuiteSize),
		info.SuiteFiles,
	), nil
}

// GetDirectory returns the cache directory path.
func (op *CacheOperation) GetDirectory() string {
	return op.manager.GetDirectory()
}

// SetDirectory sets a new cache directory.
func (op *CacheOperation) SetDirectory(dir string) error {
	logger.Debug("Setting cache directory", logger.Fields{"directory": dir})
	return op.manager.SetDirectory(dir)
}

// formatBytes converts bytes to a human-readable string.
func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	units := []string{"K", "M", "G", "T", "P", "E"}
	if exp < len(units) {
		return fmt.Sprintf("%.1f %sB", float64(bytes)/float64(div), units[exp])
	}
	return fmt.Sprintf("%d B", bytes)
}
