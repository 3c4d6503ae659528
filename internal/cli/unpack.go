package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/pkg/archive"
	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/httpclient"
	"github.com/glorpus-work/goldfix/pkg/orchestrator"
)

// NewUnpackCmd creates the unpack command.
func NewUnpackCmd() *cobra.Command {
	var (
		dest     string
		checksum string
	)

	cmd := &cobra.Command{
		Use:   "unpack <bundle>",
		Short: "Extract a suite bundle",
		Long: `Extract a suite bundle into a directory. The bundle may be a local
file or an http(s) URL; remote bundles are downloaded first. When a
checksum is given the bundle is verified before extraction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(cmd, args[0], dest, checksum)
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", ".", "Directory to extract into")
	cmd.Flags().StringVar(&checksum, "checksum", "", "Expected sha256 of the bundle")

	cmd.Example = `  # Extract a local bundle into the current directory
  goldfix unpack extractmethod.goldpack

  # Fetch and extract a published bundle, verifying its checksum
  goldfix unpack https://fixtures.example.com/extractmethod.goldpack -d ./suites --checksum 3b4f...`

	return cmd
}

func runUnpack(cmd *cobra.Command, bundle, dest, checksum string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bundlePath := bundle
	if strings.HasPrefix(bundle, "http://") || strings.HasPrefix(bundle, "https://") {
		bundlePath, err = fetchBundle(cmd, cfg.Settings.HTTPTimeout, bundle)
		if err != nil {
			return err
		}
		defer func() { _ = os.Remove(bundlePath) }()
	}

	if checksum != "" {
		got, err := fileChecksum(bundlePath)
		if err != nil {
			return fmt.Errorf("failed to checksum bundle: %w", err)
		}
		if !strings.EqualFold(got, checksum) {
			return errors.Wrapf(errors.ErrFileHashMismatch, "bundle %s: got %s, want %s", bundle, got, checksum)
		}
	}

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}
	if err := archive.NewManager().ExtractAll(cmd.Context(), bundlePath, absDest); err != nil {
		return fmt.Errorf("failed to extract bundle: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Extracted bundle into %s\n", absDest)
	return nil
}

// fetchBundle downloads a remote bundle into a temporary file and returns
// its path. The caller removes the file.
func fetchBundle(cmd *cobra.Command, timeout time.Duration, rawURL string) (string, error) {
	bundleURL, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid bundle URL: %w", err)
	}

	tmp, err := os.CreateTemp("", "goldfix-bundle-*"+orchestrator.BundleExt)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()

	client := httpclient.NewHTTPClient(timeout)
	if err := client.FetchBundle(cmd.Context(), bundleURL, tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("failed to download bundle: %w", err)
	}
	return tmpPath, nil
}
