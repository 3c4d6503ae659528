//go:generate mockgen -destination=./mocks/orchestrator.go . CaseSource,ToolRunner,GoldenComparer,Blesser,Downloader,BundleFetcher,BundleExtractor

package orchestrator

import (
	"context"
	"net/url"

	"github.com/glorpus-work/goldfix/pkg/compare"
	"github.com/glorpus-work/goldfix/pkg/config"
	"github.com/glorpus-work/goldfix/pkg/download"
	"github.com/glorpus-work/goldfix/pkg/hook"
	"github.com/glorpus-work/goldfix/pkg/model"
	"github.com/glorpus-work/goldfix/pkg/runner"
)

// BundleExt is the file extension synced suite bundles are stored under.
const BundleExt = ".goldpack"

// CaseSource resolves a run request into the cases of a suite.
type CaseSource interface {
	Cases(req model.RunRequest) ([]*model.Case, error)
}

// ToolRunner is the subset of the runner used by the orchestrator.
type ToolRunner interface {
	Run(ctx context.Context, inv runner.Invocation) (*runner.Result, error)
	Probe(ctx context.Context) string
}

// GoldenComparer checks tool output against golden content.
type GoldenComparer interface {
	Compare(expected, actual []byte, opts compare.Options) (*compare.Result, error)
}

// CompareFunc adapts a plain compare function to the GoldenComparer interface.
type CompareFunc func(expected, actual []byte, opts compare.Options) (*compare.Result, error)

// Compare calls f.
func (f CompareFunc) Compare(expected, actual []byte, opts compare.Options) (*compare.Result, error) {
	return f(expected, actual, opts)
}

// Blesser writes accepted tool output as the new golden of a case.
type Blesser interface {
	// BlessCase replaces the golden with the normalized output and journals
	// the change.
	BlessCase(c *model.Case, normalized []byte, runID, note string) (*model.BlessEntry, error)
	// Preview returns the journal entry BlessCase would record without
	// touching the golden or the journal.
	Preview(c *model.Case, normalized []byte) (*model.BlessEntry, error)
}

// Downloader handles bundle downloading.
type Downloader interface {
	FetchAll(ctx context.Context, items []download.Item, opts download.Options) (map[string]string, error)
}

// BundleFetcher performs the direct HTTP fetches of a sync: conditional
// manifest refresh and single bundle downloads.
type BundleFetcher interface {
	FetchManifest(ctx context.Context, repoURL *url.URL, filePath string) error
	FetchBundle(ctx context.Context, bundleURL *url.URL, filePath string) error
}

// BundleExtractor unpacks downloaded bundles into suite trees.
type BundleExtractor interface {
	ExtractAll(ctx context.Context, archivePath, destDir string) error
}

// Orchestrator ties case discovery, the tool runner, comparison and golden
// blessing together for verify and bless runs, and the download, fetch and
// extract managers together for repository sync.
type Orchestrator struct {
	Source    CaseSource
	Runner    ToolRunner
	Comparer  GoldenComparer
	Blesser   Blesser
	HookMgr   hook.HookManager // optional per-suite scripts
	DL        Downloader
	Fetcher   BundleFetcher
	Extractor BundleExtractor
	Suite     *config.SuiteConfig
	Hooks     Hooks // Hooks for progress and event notifications
}

// Event represents a simple progress notification.
type Event struct {
	Phase string // resolving|running|blessing|syncing|done|error
	ID    string // case or repository name
	Msg   string
}

// Hooks carries callbacks for progress events.
type Hooks struct {
	OnEvent func(Event)
}

// VerifyOptions control orchestrator verify execution.
type VerifyOptions struct {
	// Concurrency is the number of cases run in parallel. Zero or less
	// runs them one at a time.
	Concurrency int
	// FailFast stops scheduling new cases after the first failure.
	FailFast bool
	// UpdateMissing writes the tool output as the golden for cases that
	// do not have one yet instead of reporting them as missing.
	UpdateMissing bool
	// CaseFilter restricts the run to the named cases after resolution.
	CaseFilter []string
	// ActualDir, when set, receives the tool output of failing and
	// missing cases for inspection.
	ActualDir string
}

// BlessOptions control orchestrator bless execution.
type BlessOptions struct {
	// All blesses every failing or missing case of the suite. Without it
	// cases must be named explicitly.
	All   bool
	Cases []string
	// DryRun reports what would be blessed without writing anything.
	DryRun bool
	// Note is recorded with each journal entry.
	Note string
}

// SyncOptions control orchestrator sync execution.
type SyncOptions struct {
	Concurrency int
}
