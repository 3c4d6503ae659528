package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")
	ErrConfigEncode      = fmt.Errorf("failed to encode config")
	ErrConfigDirectory   = fmt.Errorf("failed to create config directory")
	ErrConfigFileCreate  = fmt.Errorf("failed to create config file")

	// Suite errors.
	ErrSuiteNotFound  = fmt.Errorf("suite not found")
	ErrSuiteRootEmpty = fmt.Errorf("suite root cannot be empty")
	ErrNoSuites       = fmt.Errorf("no suites configured")

	// Cache errors.
	ErrCacheClean     = fmt.Errorf("failed to clean cache")
	ErrCacheInfo      = fmt.Errorf("failed to get cache info")
	ErrCacheDirectory = fmt.Errorf("cache directory cannot be empty")

	// Config file operation errors.
	ErrConfigFileRename = fmt.Errorf("failed to replace config file")
	ErrConfigFileChmod  = fmt.Errorf("failed to set config file permissions")
	ErrConfigMarshal    = fmt.Errorf("failed to marshal config")
	ErrConfigFileExists = fmt.Errorf("config file already exists")

	// Settings validation errors.
	ErrHTTPTimeoutNegative  = fmt.Errorf("http timeout cannot be negative")
	ErrCacheTTLNegative     = fmt.Errorf("cache ttl cannot be negative")
	ErrMaxConcurrentInvalid = fmt.Errorf("max concurrent operations must be at least 1")

	// Path errors.
	ErrInvalidPath = fmt.Errorf("invalid path")

	// Case errors.
	ErrCaseNotFound  = fmt.Errorf("case not found")
	ErrGoldenMissing = fmt.Errorf("golden file missing")

	// Run errors.
	ErrVerificationFailed = fmt.Errorf("verification failed")

	// Manifest errors.
	ErrManifestNotFound = fmt.Errorf("manifest not found")

	// Tool errors.
	ErrToolFailure      = fmt.Errorf("tool invocation failed")
	ErrToolCommandEmpty = fmt.Errorf("tool command cannot be empty")

	// Download errors.
	ErrDownloadFailed   = fmt.Errorf("download failed")
	ErrFileHashMismatch = fmt.Errorf("file hash mismatch")
)

// Config validation error helpers.

// ErrEmptySuiteNameWithIndex reports a suite entry without a name.
func ErrEmptySuiteNameWithIndex(index int) error {
	return fmt.Errorf("suite at index %d has no name", index)
}

// ErrSuiteRootEmptyWithName reports a suite without a root directory.
func ErrSuiteRootEmptyWithName(name string) error {
	return fmt.Errorf("suite %s has no root directory", name)
}

// ErrSuiteToolEmptyWithName reports a suite without a tool command.
func ErrSuiteToolEmptyWithName(name string) error {
	return fmt.Errorf("suite %s has no tool command", name)
}

// ErrSuiteExistsWithName reports a duplicate suite name.
func ErrSuiteExistsWithName(name string) error {
	return fmt.Errorf("suite %s already exists", name)
}

// ErrInvalidCompareModeWithDetails reports an unknown compare mode.
func ErrInvalidCompareModeWithDetails(mode string, valid []string) error {
	return fmt.Errorf("invalid compare mode %q (valid: %v)", mode, valid)
}

// ErrEmptyRepositoryNameWithIndex reports a repository entry without a name.
func ErrEmptyRepositoryNameWithIndex(index int) error {
	return fmt.Errorf("repository at index %d has no name", index)
}

// ErrRepositoryURLEmptyWithName reports a repository without a URL.
func ErrRepositoryURLEmptyWithName(name string) error {
	return fmt.Errorf("repository %s has no URL", name)
}

// ErrRepositoryExistsWithName reports a duplicate repository name.
func ErrRepositoryExistsWithName(name string) error {
	return fmt.Errorf("repository %s already exists", name)
}

// ErrInvalidOSValueWithDetails reports an unsupported OS value.
func ErrInvalidOSValueWithDetails(os string, valid []string) error {
	return fmt.Errorf("invalid OS %q (valid: %v)", os, valid)
}

// ErrInvalidArchValueWithDetails reports an unsupported architecture value.
func ErrInvalidArchValueWithDetails(arch string, valid []string) error {
	return fmt.Errorf("invalid architecture %q (valid: %v)", arch, valid)
}

// ErrInvalidOutputFormatWithDetails reports an unsupported output format.
func ErrInvalidOutputFormatWithDetails(format string) error {
	return fmt.Errorf("invalid output format %q (valid: text, json)", format)
}

// ErrInvalidLogLevelWithDetails reports an unsupported log level.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("invalid log level %q (valid: debug, info, warn, error)", level)
}

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
