package cache

import "github.com/glorpus-work/goldfix/pkg/fsutil"

// Cache subdirectory names. Sync and the HTTP client place fetched content
// under these, so Clean can free them selectively.
const (
	// ManifestDirName holds fetched suite manifests.
	ManifestDirName = "manifests"
	// BundleDirName holds downloaded suite bundles.
	BundleDirName = "bundles"
	// SuiteDirName holds suite trees extracted from synced bundles.
	SuiteDirName = "suites"
)

// CacheDirPerm is the default permission mode for cache directories (rwx------).
var CacheDirPerm = fsutil.DirModePrivate
