package fixture

import (
	"os"

	"github.com/glorpus-work/goldfix/pkg/compare"
	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/model"
	"github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

// LoadMeta reads a case sidecar file. A missing file yields nil metadata.
// Compare mode and tool constraint are validated here so a broken sidecar
// fails the scan instead of silently gating its case.
func LoadMeta(path string) (*model.CaseMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read case sidecar %s", path)
	}

	var meta model.CaseMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "failed to parse case sidecar %s", path)
	}

	if meta.Compare != "" {
		if _, err := compare.ParseMode(meta.Compare); err != nil {
			return nil, errors.Wrapf(err, "case sidecar %s", path)
		}
	}
	if meta.ToolConstraint != "" {
		if _, err := version.NewConstraint(meta.ToolConstraint); err != nil {
			return nil, errors.Wrapf(err, "invalid tool constraint in case sidecar %s", path)
		}
	}

	return &meta, nil
}
