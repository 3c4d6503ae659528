package cache

// Manager defines the interface for cache management operations.
type Manager interface {
	Clean(options CleanOptions) (*CleanResult, error)
	GetInfo() (*Info, error)
	GetDirectory() string
	SetDirectory(dir string) error
}

// CleanOptions specifies what to clean from the cache.
type CleanOptions struct {
	All       bool
	Manifests bool
	Bundles   bool
}

// CleanResult contains information about what was cleaned.
type CleanResult struct {
	TotalFreed    int64
	ManifestFreed int64
	BundleFreed   int64
	SuiteFreed    int64
}

// Info represents cache information.
type Info struct {
	Directory     string
	TotalSize     int64
	ManifestSize  int64
	ManifestFiles int
	BundleSize    int64
	BundleFiles   int
	SuiteSize     int64
	SuiteFiles    int
}
