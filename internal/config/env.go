// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the HANDLEWATCH_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// String overrides
	{"FILTER", []string{"filter", "f"}, func(c *AppConfig, v string) {
		c.Filter = v
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) {
		c.LogLevel = v
	}},
	{"LOG_FILE", []string{"log-file"}, func(c *AppConfig, v string) {
		c.LogFile = v
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) {
		c.MetricsAddr = v
	}},

	// Duration overrides
	{"INTERVAL", []string{"interval", "i"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Interval = parsed
		}
	}},

	// Numeric overrides
	{"TOP", []string{"top"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Top = parsed
		}
	}},
	{"CONCURRENCY", []string{"concurrency"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Concurrency = parsed
		}
	}},

	// Boolean overrides
	{"ONCE", []string{"once"}, func(c *AppConfig, v string) {
		c.Once = parseBoolEnv(v, c.Once)
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) {
		c.TUI = parseBoolEnv(v, c.TUI)
	}},
	{"JSON", []string{"json"}, func(c *AppConfig, v string) {
		c.JSON = parseBoolEnv(v, c.JSON)
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
//
// Supported environment variables (all prefixed with HANDLEWATCH_):
//   - FILTER, INTERVAL, ONCE, TUI, TOP, JSON, NO_COLOR, LOG_LEVEL, LOG_FILE,
//     METRICS_ADDR, CONCURRENCY, CONFIG
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
