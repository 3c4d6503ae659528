package orchestrator

import (
	"context"
	goerrors "errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/glorpus-work/goldfix/pkg/cache"
	"github.com/glorpus-work/goldfix/pkg/config"
	"github.com/glorpus-work/goldfix/pkg/download"
	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/httpclient"
)

// SyncAll downloads the bundles of the given repositories into the cache
// under dir and extracts each one into its suite tree. The caller decides
// which repositories to pass (e.g., enabled-only, priority-sorted). Bundles
// are verified against the configured checksum before extraction; the
// manifest mirror is refreshed best-effort and never blocks the sync.
func (o *Orchestrator) SyncAll(ctx context.Context, repos []*config.RepositoryConfig, dir string, opts SyncOptions) error {
	if o.DL == nil {
		return fmt.Errorf("download manager is not configured")
	}
	if o.Extractor == nil {
		return fmt.Errorf("bundle extractor is not configured")
	}
	if !filepath.IsAbs(dir) {
		return errors.Wrapf(errors.ErrInvalidPath, "cache dir must be absolute: %s", dir)
	}

	items := make([]download.Item, 0, len(repos))
	for _, repo := range repos {
		if repo == nil || repo.URL == "" {
			continue
		}
		bundleURL, err := url.Parse(repo.URL)
		if err != nil {
			return errors.Wrapf(err, "invalid URL for repository %s", repo.Name)
		}
		o.refreshManifest(ctx, repo.Name, bundleURL, dir)
		items = append(items, download.Item{
			ID:       repo.Name,
			URL:      bundleURL,
			Checksum: repo.Checksum,
			Filename: repo.Name + BundleExt,
		})
	}
	if len(items) == 0 {
		emit(o.Hooks, Event{Phase: "done", Msg: "no repositories to sync"})
		return nil
	}

	emit(o.Hooks, Event{Phase: "syncing", Msg: fmt.Sprintf("downloading %d bundles", len(items))})
	fetched, err := o.DL.FetchAll(ctx, items, download.Options{
		Dir:         filepath.Join(dir, cache.BundleDirName),
		Concurrency: opts.Concurrency,
	})
	if err != nil {
		emit(o.Hooks, Event{Phase: "error", Msg: err.Error()})
		return errors.Wrap(err, "failed to download bundles")
	}

	for _, repo := range repos {
		if repo == nil {
			continue
		}
		bundlePath, ok := fetched[repo.Name]
		if !ok {
			continue
		}
		destDir := filepath.Join(dir, cache.SuiteDirName, repo.Name)
		emit(o.Hooks, Event{Phase: "syncing", ID: repo.Name, Msg: "extracting bundle"})
		if err := os.RemoveAll(destDir); err != nil {
			return errors.Wrapf(err, "failed to clear suite cache for %s", repo.Name)
		}
		if err := o.Extractor.ExtractAll(ctx, bundlePath, destDir); err != nil {
			emit(o.Hooks, Event{Phase: "error", ID: repo.Name, Msg: err.Error()})
			return errors.Wrapf(err, "failed to extract bundle for %s", repo.Name)
		}
	}

	emit(o.Hooks, Event{Phase: "done", Msg: fmt.Sprintf("synced %d repositories", len(items))})
	return nil
}

// refreshManifest mirrors the repository manifest that lives next to the
// bundle. A refresh failure only surfaces as an event: the bundle checksum,
// not the manifest, guards what gets extracted.
func (o *Orchestrator) refreshManifest(ctx context.Context, name string, bundleURL *url.URL, dir string) {
	if o.Fetcher == nil {
		return
	}

	manifestURL := *bundleURL
	manifestURL.Path = path.Dir(manifestURL.Path)
	manifestURL.RawQuery = ""

	dest := filepath.Join(dir, cache.ManifestDirName, name+".json")
	err := o.Fetcher.FetchManifest(ctx, &manifestURL, dest)
	switch {
	case err == nil:
		emit(o.Hooks, Event{Phase: "syncing", ID: name, Msg: "manifest refreshed"})
	case goerrors.Is(err, httpclient.ErrNotModified):
		emit(o.Hooks, Event{Phase: "syncing", ID: name, Msg: "manifest up to date"})
	default:
		emit(o.Hooks, Event{Phase: "syncing", ID: name, Msg: fmt.Sprintf("manifest refresh failed: %v", err)})
	}
}
