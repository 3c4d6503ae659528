package manifest

import (
	"fmt"
)

// Common manifest errors.
var (
	// ErrManifestVersion is returned when a manifest uses a newer format
	// major version than this build understands.
	ErrManifestVersion = fmt.Errorf("unsupported manifest format version")
)
