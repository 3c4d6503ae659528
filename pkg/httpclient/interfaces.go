//go:generate mockgen -destination=mocks/httpclient.go . Client
package httpclient

import (
	"context"
	"net/url"
)

// Client defines the interface for HTTP operations against fixture repositories.
type Client interface {
	// FetchManifest downloads the suite manifest from the given repository URL
	// to the specified file path. It returns ErrNotModified when the stored
	// copy is still current.
	FetchManifest(ctx context.Context, repoURL *url.URL, filePath string) error

	// FetchBundle downloads a fixture bundle from the given URL to the
	// specified file path.
	FetchBundle(ctx context.Context, bundleURL *url.URL, filePath string) error
}
