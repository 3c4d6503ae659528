package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/glorpus-work/goldfix/pkg/fsutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Settings.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Settings.HTTPTimeout)
	assert.Equal(t, 5, cfg.Settings.MaxConcurrent)
	assert.Equal(t, "text", cfg.Settings.OutputFormat)
	assert.Empty(t, cfg.Suites)
}

func TestLoadConfig(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "config.yaml")

	configContent := `suites:
  - name: extractmethod
    root: testdata/extractmethod
    tool: refactor-cli extract-method {input}
repositories:
  - name: shared-fixtures
    url: https://example.com/fixtures
    enabled: true
settings:
  log_level: debug
  platform:
    os: linux
    arch: amd64`

	err := os.WriteFile(configPath, []byte(configContent), fsutil.FileModeDefault)
	require.NoError(t, err)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Len(t, cfg.Repositories, 1)
	assert.Equal(t, "shared-fixtures", cfg.Repositories[0].Name)
	assert.Equal(t, "debug", cfg.Settings.LogLevel)
	assert.Equal(t, "linux", cfg.Settings.Platform.OS)
	assert.Equal(t, "amd64", cfg.Settings.Platform.Arch)

	// Suite defaults are applied on load
	suite := cfg.GetSuite("extractmethod")
	require.NotNil(t, suite)
	assert.Equal(t, DefaultGoldenSuffix, suite.GoldenSuffix)
	assert.Equal(t, DefaultExtensions(), suite.Extensions)
	assert.Equal(t, DefaultCompareMode, suite.Compare)
	assert.Equal(t, DefaultCaseTimeout, suite.Timeout)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Settings.LogLevel)
}

func TestLoadConfigFromReaderInvalidYAML(t *testing.T) {
	_, err := LoadConfigFromReader(strings.NewReader("suites: [unclosed"))
	require.Error(t, err)
}

func TestSaveConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.LogLevel = "debug"
	require.NoError(t, cfg.AddSuite(&SuiteConfig{
		Name: "extractmethod",
		Root: "testdata/extractmethod",
		Tool: "refactor-cli extract-method {input}",
	}))

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test-config.yaml")

	err := cfg.SaveConfig(configPath)
	require.NoError(t, err)

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)

	loadedCfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	require.NotNil(t, loadedCfg)

	assert.Equal(t, "debug", loadedCfg.Settings.LogLevel)
	suite := loadedCfg.GetSuite("extractmethod")
	require.NotNil(t, suite)
	assert.Equal(t, "testdata/extractmethod", suite.Root)
}

func TestValidateConfig(t *testing.T) {
	withSuites := func(suites ...*SuiteConfig) *Config {
		cfg := DefaultConfig()
		cfg.Suites = suites
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "suite without name",
			config:  withSuites(&SuiteConfig{Root: "testdata", Tool: "true"}),
			wantErr: true,
			errMsg:  "has no name",
		},
		{
			name:    "suite without root",
			config:  withSuites(&SuiteConfig{Name: "s", Tool: "true"}),
			wantErr: true,
			errMsg:  "root",
		},
		{
			name:    "suite without tool",
			config:  withSuites(&SuiteConfig{Name: "s", Root: "testdata"}),
			wantErr: true,
			errMsg:  "tool",
		},
		{
			name: "duplicate suite",
			config: withSuites(
				&SuiteConfig{Name: "s", Root: "a", Tool: "true"},
				&SuiteConfig{Name: "s", Root: "b", Tool: "true"},
			),
			wantErr: true,
			errMsg:  "already exists",
		},
		{
			name:    "invalid compare mode",
			config:  withSuites(&SuiteConfig{Name: "s", Root: "a", Tool: "true", Compare: "fuzzy"}),
			wantErr: true,
			errMsg:  "compare mode",
		},
		{
			name: "invalid OS",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Settings.Platform.OS = "invalid-os"
				return cfg
			}(),
			wantErr: true,
			errMsg:  "invalid OS",
		},
		{
			name: "invalid Arch",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Settings.Platform.Arch = "invalid-arch"
				return cfg
			}(),
			wantErr: true,
			errMsg:  "invalid architecture",
		},
		{
			name: "invalid output format",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Settings.OutputFormat = "xml"
				return cfg
			}(),
			wantErr: true,
			errMsg:  "output format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetUserDataDir(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T)
		wantPath string
	}{
		{
			name: "XDG_DATA_HOME set",
			setup: func(t *testing.T) {
				t.Setenv("XDG_DATA_HOME", "/custom/data/home")
			},
			wantPath: "/custom/data/home",
		},
		{
			name: "Linux default",
			setup: func(t *testing.T) {
				t.Setenv("XDG_DATA_HOME", "")
				t.Setenv("HOME", "/home/testuser")
			},
			wantPath: "/home/testuser/.local/share",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if runtime.GOOS != "linux" {
				t.Skip("skipping Linux-specific path assertion on non-Linux platform")
			}
			if testCase.setup != nil {
				testCase.setup(t)
			}

			path, err := getUserDataDir()
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(path, testCase.wantPath),
				"path %s should end with %s", path, testCase.wantPath)
		})
	}
}

func TestGetBlessedDBPath(t *testing.T) {
	cfg := &Config{}

	path := cfg.GetBlessedDBPath()
	expectedSuffix := filepath.Join("goldfix", "state", "blessed.json")
	assert.True(t, strings.HasSuffix(path, expectedSuffix),
		"bless journal path should end with %s, got: %s", expectedSuffix, path)
}

func TestSuiteManagement(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.AddSuite(&SuiteConfig{
		Name: "extractmethod",
		Root: "testdata/extractmethod",
		Tool: "refactor-cli extract-method {input}",
	})
	require.NoError(t, err)
	assert.Len(t, cfg.Suites, 1)
	assert.Equal(t, []string{"extractmethod"}, cfg.SuiteNames())

	// Duplicate names are rejected
	err = cfg.AddSuite(&SuiteConfig{Name: "extractmethod", Root: "elsewhere", Tool: "true"})
	assert.Error(t, err)

	suite := cfg.GetSuite("extractmethod")
	require.NotNil(t, suite)
	assert.Equal(t, DefaultCompareMode, suite.Compare)

	assert.Nil(t, cfg.GetSuite("missing"))
}

func TestRepositoryManagement(t *testing.T) {
	cfg := DefaultConfig()

	err := cfg.AddRepository("shared-fixtures", "https://example.com/fixtures")
	require.NoError(t, err)
	assert.Len(t, cfg.Repositories, 1)
	assert.Equal(t, "shared-fixtures", cfg.Repositories[0].Name)
	assert.True(t, cfg.Repositories[0].IsEnabled())

	err = cfg.AddRepository("shared-fixtures", "https://example.com/other")
	assert.Error(t, err)

	repo := cfg.GetRepository("shared-fixtures")
	require.NotNil(t, repo)
	require.NotNil(t, repo.GetURL())
	assert.Equal(t, "example.com", repo.GetURL().Host)

	assert.True(t, cfg.EnableRepository("shared-fixtures", false))
	assert.False(t, cfg.GetRepository("shared-fixtures").IsEnabled())
	assert.False(t, cfg.EnableRepository("missing", true))

	assert.True(t, cfg.RemoveRepository("shared-fixtures"))
	assert.False(t, cfg.RemoveRepository("shared-fixtures"))
	assert.Empty(t, cfg.Repositories)
}

func TestEnabledRepositories(t *testing.T) {
	disabled := false
	cfg := DefaultConfig()
	cfg.Repositories = []*RepositoryConfig{
		{Name: "low", URL: "https://example.com/low", Priority: 1},
		{Name: "off", URL: "https://example.com/off", Enabled: &disabled, Priority: 99},
		{Name: "high", URL: "https://example.com/high", Priority: 10},
	}

	repos := cfg.EnabledRepositories()
	require.Len(t, repos, 2)
	assert.Equal(t, "high", repos[0].Name)
	assert.Equal(t, "low", repos[1].Name)
}

func TestToAuthMap(t *testing.T) {
	cfg := DefaultConfig()
	assert.Nil(t, cfg.ToAuthMap())

	cfg.Repositories = []*RepositoryConfig{
		{
			Name: "private",
			URL:  "https://example.com/private",
			Auth: &AuthConfig{
				BearerAuth: &BearerAuth{Token: "tok"},
			},
		},
		{Name: "public", URL: "https://example.com/public"},
	}

	authMap := cfg.ToAuthMap()
	require.Len(t, authMap, 1)
	assert.Contains(t, authMap, "private")
}

func TestConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.SetValue("log_level", "debug"))
	got, err := cfg.GetValue("log_level")
	require.NoError(t, err)
	assert.Equal(t, "debug", got)

	require.NoError(t, cfg.SetValue("http_timeout", "45s"))
	assert.Equal(t, 45*time.Second, cfg.Settings.HTTPTimeout)

	require.NoError(t, cfg.SetValue("max_concurrent_syncs", "3"))
	assert.Equal(t, 3, cfg.Settings.MaxConcurrent)

	require.Error(t, cfg.SetValue("color_output", "maybe"))
	require.Error(t, cfg.SetValue("unknown_key", "x"))
	_, err = cfg.GetValue("unknown_key")
	require.Error(t, err)

	m := cfg.ToMap()
	assert.Equal(t, "debug", m["log_level"])
	assert.Equal(t, "3", m["max_concurrent_syncs"])
}
