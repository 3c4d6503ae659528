package config

import (
	"fmt"
	"strconv"
	"time"
)

// SetValue sets a configuration value by key
// Supported keys:
//   - cache_dir: string - Path to the cache directory
//   - state_dir: string - Path to the state directory
//   - output_format: string - Output format (text, json)
//   - color_output: bool - Whether to use colored output
//   - log_level: string - Logging level (debug, info, warn, error)
//   - http_timeout: duration - Timeout for HTTP requests
//   - max_concurrent_syncs: int - Maximum concurrent operations
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "cache_dir":
		c.Settings.CacheDir = value
	case "state_dir":
		c.Settings.StateDir = value
	case "output_format":
		c.Settings.OutputFormat = value
	case "color_output":
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %s", key, value)
		}
		c.Settings.ColorOutput = boolVal
	case "log_level":
		c.Settings.LogLevel = value
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %s", key, value)
		}
		c.Settings.HTTPTimeout = d
	case "max_concurrent_syncs":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %s", key, value)
		}
		c.Settings.MaxConcurrent = n
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}

// GetValue returns a configuration value by key as a string.
func (c *Config) GetValue(key string) (string, error) {
	switch key {
	case "cache_dir":
		return c.Settings.CacheDir, nil
	case "state_dir":
		return c.Settings.StateDir, nil
	case "output_format":
		return c.Settings.OutputFormat, nil
	case "color_output":
		return strconv.FormatBool(c.Settings.ColorOutput), nil
	case "log_level":
		return c.Settings.LogLevel, nil
	case "http_timeout":
		return c.Settings.HTTPTimeout.String(), nil
	case "max_concurrent_syncs":
		return strconv.Itoa(c.Settings.MaxConcurrent), nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// ToMap flattens the settings into displayable key/value pairs.
func (c *Config) ToMap() map[string]string {
	return map[string]string{
		"cache_dir":            c.Settings.CacheDir,
		"cache_ttl":            c.Settings.CacheTTL.String(),
		"state_dir":            c.Settings.StateDir,
		"http_timeout":         c.Settings.HTTPTimeout.String(),
		"max_concurrent_syncs": strconv.Itoa(c.Settings.MaxConcurrent),
		"output_format":        c.Settings.OutputFormat,
		"color_output":         strconv.FormatBool(c.Settings.ColorOutput),
		"log_level":            c.Settings.LogLevel,
		"platform_os":          c.Settings.Platform.OS,
		"platform_arch":        c.Settings.Platform.Arch,
	}
}
