package cli

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/glorpus-work/goldfix/pkg/archive"
	"github.com/glorpus-work/goldfix/pkg/manifest"
	"github.com/glorpus-work/goldfix/pkg/orchestrator"
)

// NewPackCmd creates the pack command.
func NewPackCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pack [suite]",
		Short: "Bundle a suite into a distributable archive",
		Long: `Bundle a suite tree into a compressed archive that sync can later
download and extract. The suite manifest is regenerated first so the bundle
always carries a snapshot matching its content. The bundle checksum is
printed for use in repository configuration.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			suiteName := ""
			if len(args) > 0 {
				suiteName = args[0]
			}
			return runPack(cmd, suiteName, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "f", "", "Bundle file to write (default: <suite>"+orchestrator.BundleExt+")")

	return cmd
}

func runPack(cmd *cobra.Command, suiteName, output string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	suite, err := resolveSuite(cfg, suiteName)
	if err != nil {
		return err
	}

	gen := manifest.NewGenerator(suite.Name, suite.Root)
	gen.Layout = suiteLayout(suite)
	gen.ForceOverwrite = true
	if err := gen.Generate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to generate manifest for bundle: %w", err)
	}

	if output == "" {
		output = suite.Name + orchestrator.BundleExt
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return fmt.Errorf("invalid output file: %w", err)
	}

	if err := archive.NewManager().Create(cmd.Context(), suite.Root, absOutput); err != nil {
		return fmt.Errorf("failed to create bundle: %w", err)
	}

	checksum, err := fileChecksum(absOutput)
	if err != nil {
		return fmt.Errorf("failed to checksum bundle: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created bundle %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "sha256: %s\n", checksum)
	return nil
}

func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
