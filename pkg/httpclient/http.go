// Package httpclient handles HTTP operations for fixture repositories:
// fetching suite manifests and bundle archives.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glorpus-work/goldfix/pkg/auth"
	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/fsutil"
	"github.com/glorpus-work/goldfix/pkg/manifest"
)

// DefaultUserAgent identifies goldfix to fixture repositories.
const DefaultUserAgent = "goldfix/1.0"

// ErrNotModified is returned when the manifest hasn't been modified since the last fetch.
var ErrNotModified = fmt.Errorf("manifest not modified")

// HTTPClient handles HTTP operations for fixture repositories.
type HTTPClient struct {
	client    *http.Client
	userAgent string
	auth      auth.Authenticator
}

// NewHTTPClient creates a new HTTP client for repository operations.
func NewHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: DefaultUserAgent,
	}
}

// WithAuth returns a copy of the client that authenticates every request.
func (hc *HTTPClient) WithAuth(authenticator auth.Authenticator) *HTTPClient {
	clone := *hc
	clone.auth = authenticator
	return &clone
}

// FetchManifest downloads the suite manifest from the given repository URL to
// filePath. When filePath already exists its modification time is sent as
// If-Modified-Since and a 304 response maps to ErrNotModified. The
// Last-Modified header of a successful response is stamped onto the stored
// file so the next fetch stays conditional.
func (hc *HTTPClient) FetchManifest(ctx context.Context, repoURL *url.URL, filePath string) error {
	manifestURL, err := buildManifestURL(repoURL)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, manifestURL, http.NoBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("User-Agent", hc.userAgent)
	req.Header.Set("Accept", "application/json")
	if info, statErr := os.Stat(filePath); statErr == nil {
		req.Header.Set("If-Modified-Since", info.ModTime().UTC().Format(http.TimeFormat))
	}
	if err := auth.ApplyIfSet(req, hc.auth); err != nil {
		return errors.Wrap(err, "failed to authenticate request")
	}

	resp, err := hc.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to fetch manifest")
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusNotModified:
		return ErrNotModified
	case http.StatusOK:
		// Continue processing
	default:
		return fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, errors.ErrDownloadFailed)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	if err := fsutil.EnsureFileDir(filePath); err != nil {
		return errors.Wrap(err, "failed to create manifest directory")
	}
	if err := os.WriteFile(filePath, data, fsutil.FileModeSecure); err != nil {
		return errors.Wrap(err, "failed to write manifest")
	}
	applyLastModified(filePath, resp.Header.Get("Last-Modified"))

	return nil
}

// FetchBundle downloads a fixture bundle from the given URL to filePath. The
// body is streamed to a temporary file next to the destination and moved into
// place once fully written, so a partial download never replaces a previously
// synced bundle.
func (hc *HTTPClient) FetchBundle(ctx context.Context, bundleURL *url.URL, filePath string) error {
	if bundleURL == nil {
		return fmt.Errorf("nil bundle URL: %w", errors.ErrDownloadFailed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bundleURL.String(), http.NoBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("User-Agent", hc.userAgent)
	if err := auth.ApplyIfSet(req, hc.auth); err != nil {
		return errors.Wrap(err, "failed to authenticate request")
	}

	resp, err := hc.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "failed to fetch bundle")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d: %w", resp.StatusCode, errors.ErrDownloadFailed)
	}

	if err := fsutil.EnsureFileDir(filePath); err != nil {
		return errors.Wrap(err, "failed to create bundle directory")
	}

	tmpPath, err := writeBodyToTemp(resp.Body, filePath)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmpPath) }()

	if err := fsutil.Move(tmpPath, filePath); err != nil {
		return errors.Wrap(err, "failed to move bundle into place")
	}
	applyLastModified(filePath, resp.Header.Get("Last-Modified"))

	return nil
}

// CheckRepositoryHealth checks if a repository serves its manifest.
func (hc *HTTPClient) CheckRepositoryHealth(ctx context.Context, repoURL *url.URL) error {
	manifestURL, err := buildManifestURL(repoURL)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, manifestURL, http.NoBody)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	req.Header.Set("User-Agent", hc.userAgent)
	if err := auth.ApplyIfSet(req, hc.auth); err != nil {
		return errors.Wrap(err, "failed to authenticate request")
	}

	resp, err := hc.client.Do(req)
	if err != nil {
		return fmt.Errorf("repository not accessible: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("repository not healthy: HTTP %d", resp.StatusCode)
	}

	return nil
}

// writeBodyToTemp streams body into a temporary file in the destination
// directory and returns its path. The caller removes the file if it is not
// moved into place.
func writeBodyToTemp(body io.Reader, filePath string) (string, error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(filePath), "bundle-*.tmp")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temp file")
	}
	tmpPath := tmpFile.Name()

	if _, err := io.Copy(tmpFile, body); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return "", errors.Wrap(err, "failed to write bundle data")
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return "", errors.Wrap(err, "failed to sync bundle data")
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.Wrap(err, "failed to close temp file")
	}

	return tmpPath, nil
}

// applyLastModified stamps the server's Last-Modified time onto the stored
// file. Failures are ignored, the next fetch just runs unconditionally.
func applyLastModified(filePath, lastModified string) {
	if lastModified == "" {
		return
	}
	modTime, err := http.ParseTime(lastModified)
	if err != nil {
		return
	}
	_ = os.Chtimes(filePath, modTime, modTime)
}

// buildManifestURL constructs the manifest URL from a repository base URL.
// URLs that already point at a .json file are used as is.
func buildManifestURL(repoURL *url.URL) (string, error) {
	if repoURL == nil {
		return "", fmt.Errorf("nil repository URL: %w", errors.ErrDownloadFailed)
	}
	if strings.HasSuffix(repoURL.Path, ".json") {
		return repoURL.String(), nil
	}

	joined := *repoURL
	joinedPath, err := url.JoinPath(joined.Path, manifest.DefaultFileName)
	if err != nil {
		return "", errors.Wrap(err, "failed to build manifest URL")
	}
	joined.Path = joinedPath

	return joined.String(), nil
}
