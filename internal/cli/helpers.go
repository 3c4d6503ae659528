package cli

import (
	"fmt"
	"strings"

	"github.com/glorpus-work/goldfix/internal/logger"
	"github.com/glorpus-work/goldfix/pkg/compare"
	"github.com/glorpus-work/goldfix/pkg/config"
	"github.com/glorpus-work/goldfix/pkg/errors"
	"github.com/glorpus-work/goldfix/pkg/fixture"
	"github.com/glorpus-work/goldfix/pkg/hook"
	"github.com/glorpus-work/goldfix/pkg/model"
	"github.com/glorpus-work/goldfix/pkg/orchestrator"
	"github.com/glorpus-work/goldfix/pkg/runner"
)

// These variables will be set by the main package
var (
	ConfigPath   *string
	Verbose      *bool
	NoColor      *bool
	OutputFormat *string
)

// loadConfig loads the configuration, applies CLI flag overrides and
// initializes the logger from the resulting settings.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(getConfigPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Override config with CLI flags if provided
	if OutputFormat != nil && *OutputFormat != "" {
		cfg.Settings.OutputFormat = *OutputFormat
	}
	if NoColor != nil && *NoColor {
		cfg.Settings.ColorOutput = false
	}
	if Verbose != nil && *Verbose {
		cfg.Settings.LogLevel = "debug"
	}

	logger.InitLogger(cfg.Settings.LogLevel, logFormat(cfg.Settings.OutputFormat))
	return cfg, nil
}

func logFormat(outputFormat string) logger.OutputFormat {
	if outputFormat == "json" {
		return logger.FormatJSON
	}
	return logger.FormatText
}

func getConfigPath() string {
	if ConfigPath != nil && *ConfigPath != "" {
		return *ConfigPath
	}

	defaultPath, err := config.GetDefaultConfigPath()
	if err != nil {
		// If we can't get the default path, use an empty string which will
		// cause a more descriptive error later when the config file is read
		logger.Warn("Failed to get default config path, using empty path", logger.Fields{"error": err})
		return ""
	}
	return defaultPath
}

// resolveSuite picks the suite to operate on. An empty name is allowed when
// exactly one suite is configured.
func resolveSuite(cfg *config.Config, name string) (*config.SuiteConfig, error) {
	if name == "" {
		switch len(cfg.Suites) {
		case 0:
			return nil, errors.Wrapf(errors.ErrNoSuites, "config %s", getConfigPath())
		case 1:
			return cfg.Suites[0], nil
		default:
			return nil, fmt.Errorf("multiple suites configured, name one of: %s", strings.Join(cfg.SuiteNames(), ", "))
		}
	}

	suite := cfg.GetSuite(name)
	if suite == nil {
		return nil, errors.Wrapf(errors.ErrSuiteNotFound, "suite %s", name)
	}
	return suite, nil
}

// suiteLayout maps the suite configuration onto the fixture layout.
func suiteLayout(suite *config.SuiteConfig) fixture.Layout {
	return fixture.Layout{
		GoldenSuffix: suite.GoldenSuffix,
		Extensions:   suite.Extensions,
	}
}

// newRunRequest builds the run request for a suite, targeting the platform
// from the settings.
func newRunRequest(cfg *config.Config, suite *config.SuiteConfig, cases []string) model.RunRequest {
	return model.RunRequest{
		Suite: suite.Name,
		Cases: cases,
		OS:    cfg.Settings.Platform.OS,
		Arch:  cfg.Settings.Platform.Arch,
	}
}

// newSuiteOrchestrator wires the managers a verify or bless run needs:
// scanner-backed case source, exec runner, comparer, blesser and the suite's
// hook scripts.
func newSuiteOrchestrator(cfg *config.Config, suite *config.SuiteConfig) (*orchestrator.Orchestrator, error) {
	hookMgr, err := hook.NewHookManagerForSuite(suite.Root)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load hooks for suite %s", suite.Name)
	}

	layout := suiteLayout(suite)
	orch := orchestrator.New(
		fixture.NewSource(suite.Name, suite.Root, layout),
		runner.NewExecRunner(suite.ToolProbe),
		orchestrator.CompareFunc(compare.Compare),
		fixture.NewBlesser(layout, cfg.GetBlessedDBPath()),
		hookMgr,
		nil, nil, nil,
		suite,
	)
	orch.Hooks = consoleHooks()
	return orch, nil
}

// consoleHooks forwards orchestrator progress events to the logger.
func consoleHooks() orchestrator.Hooks {
	return orchestrator.Hooks{OnEvent: func(e orchestrator.Event) {
		fields := logger.Fields{"phase": e.Phase}
		if e.ID != "" {
			fields["case"] = e.ID
		}
		if e.Phase == "error" {
			logger.Error(e.Msg, fields)
			return
		}
		logger.Debug(e.Msg, fields)
	}}
}
