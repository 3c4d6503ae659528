// Package config provides configuration management for the goldfix harness.
// It handles loading, validating, and managing suite definitions, remote
// bundle repositories, and application settings. The package supports YAML
// configuration files and provides sensible defaults while allowing for
// customization through configuration files.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/fsutil"
	"github.com/glorpus-work/goldfix/pkg/platform"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	// Suite definitions
	Suites []*SuiteConfig `yaml:"suites"`

	// Remote bundle repositories
	Repositories []*RepositoryConfig `yaml:"repositories"`

	// General settings
	Settings Settings `yaml:"settings"`
}

// SuiteConfig describes one fixture suite: where its cases live, how to run
// the tool under test, and how to compare output against goldens.
type SuiteConfig struct {
	Name         string        `yaml:"name"`
	Root         string        `yaml:"root"`
	GoldenSuffix string        `yaml:"golden_suffix,omitempty"`
	Extensions   []string      `yaml:"extensions,omitempty"`
	Tool         string        `yaml:"tool"`
	ToolProbe    string        `yaml:"tool_probe,omitempty"`
	Compare      string        `yaml:"compare,omitempty"`
	Timeout      time.Duration `yaml:"timeout,omitempty"`
	Tags         []string      `yaml:"tags,omitempty"`
}

// RepositoryConfig represents a single remote bundle source.
type RepositoryConfig struct {
	Name     string      `yaml:"name"`
	URL      string      `yaml:"url"`
	Checksum string      `yaml:"checksum,omitempty"`
	Enabled  *bool       `yaml:"enabled,omitempty"`
	Priority uint        `yaml:"priority"`
	Auth     *AuthConfig `yaml:"auth,omitempty"`
}

// IsEnabled reports whether the repository participates in sync.
// Repositories are enabled unless explicitly disabled.
func (rc *RepositoryConfig) IsEnabled() bool {
	return rc.Enabled == nil || *rc.Enabled
}

// PlatformConfig represents platform-specific configuration.
type PlatformConfig struct {
	// OS overrides the target operating system (e.g., "windows", "linux", "macos")
	// If empty, the system will auto-detect the current OS
	OS string `yaml:"os,omitempty"`

	// Arch overrides the target architecture (e.g., "amd64", "arm64", "386")
	// If empty, the system will auto-detect the current architecture
	Arch string `yaml:"arch,omitempty"`
}

// Settings represents general application settings.
type Settings struct {
	// Cache settings
	CacheDir string        `yaml:"cache_dir,omitempty"`
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// State settings
	StateDir string `yaml:"state_dir,omitempty"`

	// Network settings
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	MaxConcurrent int           `yaml:"max_concurrent_syncs"`

	// Platform settings
	Platform PlatformConfig `yaml:"platform,omitempty"`

	// Output settings
	OutputFormat string `yaml:"output_format"` // text, json
	ColorOutput  bool   `yaml:"color_output"`
	LogLevel     string `yaml:"log_level"` // error, warn, info, debug
}

// Default configuration values.
const (
	// DefaultCacheTTL is the default time-to-live for cached data.
	DefaultCacheTTL = 24 * time.Hour

	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultMaxConcurrent is the default maximum number of concurrent operations.
	DefaultMaxConcurrent = 5

	// DefaultGoldenSuffix is appended to a case name before the extension to
	// locate its golden file (MethodIndent.py pairs with MethodIndent.after.py).
	DefaultGoldenSuffix = ".after"

	// DefaultCompareMode is the comparison mode used when a suite does not set one.
	DefaultCompareMode = "normalized"

	// DefaultCaseTimeout bounds a single tool invocation.
	DefaultCaseTimeout = 2 * time.Minute

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultExtensions returns the input file extensions scanned when a suite
// does not configure its own.
func DefaultExtensions() []string {
	return []string{".py"}
}

// ValidCompareModes returns the accepted values for the compare field.
func ValidCompareModes() []string {
	return []string{"bytes", "normalized", "structure"}
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	cacheDir, err := fsutil.GetCacheDir()
	if err != nil {
		cacheDir = "."
	}

	stateDir, err := getStateDir()
	if err != nil {
		stateDir = cacheDir
	}

	return &Config{
		Suites:       []*SuiteConfig{},
		Repositories: []*RepositoryConfig{},
		Settings: Settings{
			CacheDir:      cacheDir,
			CacheTTL:      DefaultCacheTTL,
			StateDir:      stateDir,
			HTTPTimeout:   DefaultHTTPTimeout,
			MaxConcurrent: DefaultMaxConcurrent,
			OutputFormat:  "text",
			ColorOutput:   true,
			LogLevel:      "info",
			Platform: PlatformConfig{
				OS:   platform.NormalizeOS(runtime.GOOS),
				Arch: platform.NormalizeArch(runtime.GOARCH),
			},
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// default configuration rather than an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// SaveConfig saves configuration to a file.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigDirectory, err.Error())
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(errors.ErrConfigFileCreate, err.Error())
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigEncode, err.Error())
	}

	_ = encoder.Close()
	_ = file.Close()

	// Atomically replace the config file
	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(errors.ErrConfigFileRename, err.Error())
	}

	if err := os.Chmod(absPath, fsutil.FileModeDefault); err != nil {
		return errors.Wrap(errors.ErrConfigFileChmod, err.Error())
	}

	return nil
}

// ToYAML converts the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrConfigMarshal, err.Error())
	}
	return data, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if err := validateSuites(c.Suites); err != nil {
		return err
	}
	if err := validateRepositories(c.Repositories); err != nil {
		return err
	}
	if err := validatePlatform(c.Settings.Platform); err != nil {
		return err
	}
	if err := validateSettings(c.Settings); err != nil {
		return err
	}
	return nil
}

func validateSuites(suites []*SuiteConfig) error {
	suiteNames := make(map[string]bool)
	validModes := map[string]bool{"": true}
	for _, mode := range ValidCompareModes() {
		validModes[mode] = true
	}

	for i, suite := range suites {
		if suite.Name == "" {
			return errors.ErrEmptySuiteNameWithIndex(i)
		}
		if suite.Root == "" {
			return errors.ErrSuiteRootEmptyWithName(suite.Name)
		}
		if suite.Tool == "" {
			return errors.ErrSuiteToolEmptyWithName(suite.Name)
		}
		if suiteNames[suite.Name] {
			return errors.ErrSuiteExistsWithName(suite.Name)
		}
		if !validModes[suite.Compare] {
			return errors.ErrInvalidCompareModeWithDetails(suite.Compare, ValidCompareModes())
		}
		if suite.Timeout < 0 {
			return fmt.Errorf("suite %s has a negative timeout", suite.Name)
		}
		suiteNames[suite.Name] = true
	}
	return nil
}

func validateRepositories(repos []*RepositoryConfig) error {
	repoNames := make(map[string]bool)
	for i, repo := range repos {
		if repo.Name == "" {
			return errors.ErrEmptyRepositoryNameWithIndex(i)
		}
		if repo.URL == "" {
			return errors.ErrRepositoryURLEmptyWithName(repo.Name)
		}
		if repoNames[repo.Name] {
			return errors.ErrRepositoryExistsWithName(repo.Name)
		}
		repoNames[repo.Name] = true
	}
	return nil
}

func validatePlatform(p PlatformConfig) error {
	if p.OS != "" {
		valid := false
		for _, os := range platform.ValidOS() {
			if p.OS == os || p.OS == platform.AnyOS {
				valid = true
				break
			}
		}
		if !valid {
			return errors.ErrInvalidOSValueWithDetails(p.OS, platform.ValidOS())
		}
	}
	if p.Arch != "" {
		valid := false
		for _, arch := range platform.ValidArch() {
			if p.Arch == arch || p.Arch == platform.AnyArch {
				valid = true
				break
			}
		}
		if !valid {
			return errors.ErrInvalidArchValueWithDetails(p.Arch, platform.ValidArch())
		}
	}
	return nil
}

func validateSettings(s Settings) error {
	if s.HTTPTimeout < 0 {
		return errors.ErrHTTPTimeoutNegative
	}
	if s.CacheTTL < 0 {
		return errors.ErrCacheTTLNegative
	}
	if s.MaxConcurrent < 1 {
		return errors.ErrMaxConcurrentInvalid
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[s.OutputFormat] {
		return errors.ErrInvalidOutputFormatWithDetails(s.OutputFormat)
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(s.LogLevel)] {
		return errors.ErrInvalidLogLevelWithDetails(s.LogLevel)
	}
	return nil
}

// GetDefaultConfigPath returns the default configuration file path.
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}

	return filepath.Join(configDir, "goldfix", "config.yaml"), nil
}

// GetSuite gets a suite configuration by name.
func (c *Config) GetSuite(name string) *SuiteConfig {
	for i, suite := range c.Suites {
		if suite.Name == name {
			return c.Suites[i]
		}
	}
	return nil
}

// SuiteNames returns the configured suite names in declaration order.
func (c *Config) SuiteNames() []string {
	names := make([]string, 0, len(c.Suites))
	for _, suite := range c.Suites {
		names = append(names, suite.Name)
	}
	return names
}

// AddSuite adds a suite to the configuration.
// Returns an error if a suite with the same name already exists.
func (c *Config) AddSuite(suite *SuiteConfig) error {
	for _, existing := range c.Suites {
		if existing.Name == suite.Name {
			return errors.ErrSuiteExistsWithName(suite.Name)
		}
	}
	applySuiteDefaults(suite)
	c.Suites = append(c.Suites, suite)
	return nil
}

// AddRepository adds a repository to the configuration.
// Returns an error if a repository with the same name already exists.
func (c *Config) AddRepository(name, url string) error {
	for _, repo := range c.Repositories {
		if repo.Name == name {
			return errors.ErrRepositoryExistsWithName(name)
		}
	}

	c.Repositories = append(c.Repositories, &RepositoryConfig{
		Name: name,
		URL:  url,
	})

	return nil
}

// RemoveRepository removes a repository from the configuration.
func (c *Config) RemoveRepository(name string) bool {
	for i, repo := range c.Repositories {
		if repo.Name == name {
			c.Repositories = append(c.Repositories[:i], c.Repositories[i+1:]...)
			return true
		}
	}
	return false
}

// GetRepository gets a repository configuration by name.
func (c *Config) GetRepository(name string) *RepositoryConfig {
	for i, repo := range c.Repositories {
		if repo.Name == name {
			return c.Repositories[i]
		}
	}
	return nil
}

// EnableRepository enables or disables a repository.
func (c *Config) EnableRepository(name string, enabled bool) bool {
	for i, repo := range c.Repositories {
		if repo.Name == name {
			c.Repositories[i].Enabled = &enabled
			return true
		}
	}
	return false
}

// EnabledRepositories returns the repositories that participate in sync,
// highest priority first, then by name.
func (c *Config) EnabledRepositories() []*RepositoryConfig {
	repos := make([]*RepositoryConfig, 0, len(c.Repositories))
	for _, repo := range c.Repositories {
		if repo.IsEnabled() {
			repos = append(repos, repo)
		}
	}
	sort.Slice(repos, func(i, j int) bool {
		if repos[i].Priority != repos[j].Priority {
			return repos[i].Priority > repos[j].Priority
		}
		return strings.ToLower(repos[i].Name) < strings.ToLower(repos[j].Name)
	})
	return repos
}

// GetBlessedDBPath returns the path to the bless journal.
func (c *Config) GetBlessedDBPath() string {
	stateDir := c.GetStateDir()
	if stateDir == "" {
		var err error
		stateDir, err = getStateDir()
		if err != nil {
			stateDir = filepath.Join(os.TempDir(), "goldfix")
		}
	}
	return filepath.Join(stateDir, "goldfix", "state", "blessed.json")
}

// GetManifestCacheDir returns the path to the manifest cache directory.
func (c *Config) GetManifestCacheDir() string {
	return filepath.Join(c.GetCacheDir(), "manifests")
}

// GetBundleCacheDir returns the path to the bundle cache directory.
func (c *Config) GetBundleCacheDir() string {
	return filepath.Join(c.GetCacheDir(), "bundles")
}

// GetCacheDir returns the base cache directory from settings.
func (c *Config) GetCacheDir() string {
	return c.Settings.CacheDir
}

// GetStateDir returns the base state directory from settings.
func (c *Config) GetStateDir() string {
	return c.Settings.StateDir
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Settings.CacheTTL == 0 {
		c.Settings.CacheTTL = defaults.Settings.CacheTTL
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.MaxConcurrent == 0 {
		c.Settings.MaxConcurrent = defaults.Settings.MaxConcurrent
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
	if c.Settings.CacheDir == "" {
		c.Settings.CacheDir = defaults.Settings.CacheDir
	}
	if c.Settings.StateDir == "" {
		c.Settings.StateDir = defaults.Settings.StateDir
	}
	if c.Settings.Platform.OS == "" {
		c.Settings.Platform.OS = defaults.Settings.Platform.OS
	}
	if c.Settings.Platform.Arch == "" {
		c.Settings.Platform.Arch = defaults.Settings.Platform.Arch
	}

	for _, suite := range c.Suites {
		applySuiteDefaults(suite)
	}
}

func applySuiteDefaults(suite *SuiteConfig) {
	if suite.GoldenSuffix == "" {
		suite.GoldenSuffix = DefaultGoldenSuffix
	}
	if len(suite.Extensions) == 0 {
		suite.Extensions = DefaultExtensions()
	}
	if suite.Compare == "" {
		suite.Compare = DefaultCompareMode
	}
	if suite.Timeout == 0 {
		suite.Timeout = DefaultCaseTimeout
	}
}

func getUserDataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir, nil
	}

	// Special case for Linux: follow XDG Base Directory Specification
	if runtime.GOOS == platform.OSLinux {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		return filepath.Join(homeDir, ".local", "share"), nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return configDir, nil
}

func getStateDir() (string, error) {
	stateDir, err := getUserDataDir()
	if err != nil {
		stateDir = filepath.Join(os.TempDir(), "goldfix")
	}
	return stateDir, nil
}
