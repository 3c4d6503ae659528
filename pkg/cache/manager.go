// Package cache manages the local goldfix cache: fetched manifests, downloaded
// bundles and the suite trees extracted from them.
package cache

import (
	"os"
	"path/filepath"

	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/fsutil"
)

// DefaultManager implements the Manager interface for cache operations.
type DefaultManager struct {
	directory string
}

// NewManager creates a new cache manager.
func NewManager(directory string) *DefaultManager {
	return &DefaultManager{
		directory: directory,
	}
}

// NewDefaultManager creates a new cache manager with the platform cache directory.
func NewDefaultManager() (*DefaultManager, error) {
	cacheDir, err := fsutil.GetCacheDir()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get user cache directory")
	}

	if err := os.MkdirAll(cacheDir, os.FileMode(CacheDirPerm)); err != nil {
		return nil, errors.Wrapf(err, "failed to create cache directory")
	}

	return NewManager(cacheDir), nil
}

// Clean removes cached files according to the specified options. Extracted
// suite trees are only removed by a full clean, since they may be referenced
// by suite roots in the configuration.
func (cm *DefaultManager) Clean(options CleanOptions) (*CleanResult, error) {
	result := &CleanResult{}

	// Default to cleaning everything if no specific flags are set
	if !options.Manifests && !options.Bundles {
		options.All = true
	}

	if options.All || options.Manifests {
		size, err := cm.cleanSubdir(ManifestDirName)
		if err != nil {
			return nil, errors.Wrap(err, "failed to clean manifest cache")
		}
		result.ManifestFreed = size
		result.TotalFreed += size
	}

	if options.All || options.Bundles {
		size, err := cm.cleanSubdir(BundleDirName)
		if err != nil {
			return nil, errors.Wrap(err, "failed to clean bundle cache")
		}
		result.BundleFreed = size
		result.TotalFreed += size
	}

	if options.All {
		size, err := cm.cleanSubdir(SuiteDirName)
		if err != nil {
			return nil, errors.Wrap(err, "failed to clean extracted suites")
		}
		result.SuiteFreed = size
		result.TotalFreed += size
	}

	return result, nil
}

// GetInfo returns information about the cache.
func (cm *DefaultManager) GetInfo() (*Info, error) {
	info := &Info{
		Directory: cm.directory,
	}

	manifestSize, manifestFiles, err := getDirSizeAndFiles(filepath.Join(cm.directory, ManifestDirName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get manifest cache info")
	}
	info.ManifestSize = manifestSize
	info.ManifestFiles = manifestFiles

	bundleSize, bundleFiles, err := getDirSizeAndFiles(filepath.Join(cm.directory, BundleDirName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get bundle cache info")
	}
	info.BundleSize = bundleSize
	info.BundleFiles = bundleFiles

	suiteSize, suiteFiles, err := getDirSizeAndFiles(filepath.Join(cm.directory, SuiteDirName))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get extracted suite info")
	}
	info.SuiteSize = suiteSize
	info.SuiteFiles = suiteFiles

	info.TotalSize = info.ManifestSize + info.BundleSize + info.SuiteSize

	return info, nil
}

// GetDirectory returns the cache directory path.
func (cm *DefaultManager) GetDirectory() string {
	return cm.directory
}

// SetDirectory sets the cache directory path.
func (cm *DefaultManager) SetDirectory(dir string) error {
	if dir == "" {
		return errors.ErrCacheDirectory
	}
	cm.directory = dir
	return nil
}

func (cm *DefaultManager) cleanSubdir(name string) (int64, error) {
	return cleanDirectory(filepath.Join(cm.directory, name))
}

// cleanDirectory removes a directory and returns bytes freed. The directory
// is recreated empty so later downloads do not race on MkdirAll.
func cleanDirectory(dir string) (int64, error) {
	size, _, err := getDirSizeAndFiles(dir)
	if err != nil {
		return 0, err
	}
	if size == 0 {
		if _, statErr := os.Stat(dir); os.IsNotExist(statErr) {
			return 0, nil
		}
	}

	if err := os.RemoveAll(dir); err != nil {
		return 0, errors.Wrapf(err, "failed to remove directory %s", dir)
	}

	if err := os.MkdirAll(dir, os.FileMode(CacheDirPerm)); err != nil {
		return size, errors.Wrapf(err, "failed to recreate directory %s", dir)
	}

	return size, nil
}

// getDirSizeAndFiles calculates directory size and file count. A missing
// directory counts as empty.
func getDirSizeAndFiles(dir string) (size int64, count int, err error) {
	if _, err = os.Stat(dir); os.IsNotExist(err) {
		return 0, 0, nil
	}

	err = filepath.Walk(dir, func(_ string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !info.IsDir() {
			size += info.Size()
			count++
		}
		return nil
	})
	if err != nil {
		err = errors.Wrapf(err, "error walking directory %s", dir)
	}
	return size, count, err
}
