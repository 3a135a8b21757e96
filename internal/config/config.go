// Package config handles command-line, environment and file configuration
// for handlewatch.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/term"

	apperrors "github.com/agbru/handlewatch/internal/errors"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "HANDLEWATCH_"

// Default values for the configuration surface.
const (
	DefaultFilter   = ""
	DefaultInterval = 5 * time.Second
	DefaultTop      = 25
	DefaultLogLevel = "info"
	DefaultEnvFile  = ".env"
)

// AppConfig aggregates all configuration parameters of the application.
type AppConfig struct {
	// Filter is the case-insensitive process name prefix. Required.
	Filter string
	// Interval is the delay between two passes in repeating mode. It must be
	// one of AllowedIntervals.
	Interval time.Duration
	// Once runs a single sampling pass, prints it and exits.
	Once bool
	// TUI selects the interactive dashboard. Defaults to true when stdout is
	// a terminal.
	TUI bool
	// Top limits the number of process rows printed in text mode (0 = all).
	Top int
	// JSON prints snapshots as JSON in text mode.
	JSON bool
	// NoColor disables colored output.
	NoColor bool
	// LogLevel is the zerolog level name.
	LogLevel string
	// LogFile receives log output. Empty means stderr in text mode and no
	// logging in dashboard mode.
	LogFile string
	// MetricsAddr enables the Prometheus endpoint when non-empty.
	MetricsAddr string
	// Concurrency bounds the per-process read fan-out within one pass.
	// Zero selects a value derived from the CPU count.
	Concurrency int
	// ConfigFile is an optional YAML configuration file.
	ConfigFile string
	// EnvFile is an optional dotenv file loaded before environment overrides.
	EnvFile string
	// Completion prints a shell completion script for the named shell and
	// exits. No other field is validated when it is set.
	Completion string
}

// stdoutIsTerminal reports whether stdout is attached to a terminal. It is a
// variable so tests can pin the dashboard default.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ParseConfig parses command-line arguments, then layers the YAML file and
// environment variables underneath the flags that were not set explicitly.
//
// Priority: CLI flags > environment variables > YAML file > defaults.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Filter, "filter", DefaultFilter, "Process name prefix to match (case-insensitive, required).")
	fs.StringVar(&config.Filter, "f", DefaultFilter, "Shorthand for --filter.")
	fs.DurationVar(&config.Interval, "interval", DefaultInterval, "Delay between passes ("+FormatAllowedIntervals()+").")
	fs.DurationVar(&config.Interval, "i", DefaultInterval, "Shorthand for --interval.")
	fs.BoolVar(&config.Once, "once", false, "Run a single sampling pass, print it and exit.")
	fs.BoolVar(&config.TUI, "tui", stdoutIsTerminal(), "Launch the interactive dashboard.")
	fs.IntVar(&config.Top, "top", DefaultTop, "Rows to print in text mode (0 for all).")
	fs.BoolVar(&config.JSON, "json", false, "Print snapshots as JSON in text mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level (debug, info, warn, error).")
	fs.StringVar(&config.LogFile, "log-file", "", "Write logs to this file.")
	fs.StringVar(&config.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9464).")
	fs.IntVar(&config.Concurrency, "concurrency", 0, "Concurrent per-process reads within a pass (0 = auto).")
	fs.StringVar(&config.ConfigFile, "config", "", "Optional YAML configuration file.")
	fs.StringVar(&config.EnvFile, "env-file", DefaultEnvFile, "Optional dotenv file.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script (bash, zsh, fish, powershell).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if config.Completion != "" {
		return config, nil
	}
	if fs.NArg() > 0 && config.Filter == "" && !isFlagSetAny(fs, "filter", "f") {
		// A bare positional argument is accepted as the filter.
		config.Filter = fs.Arg(0)
		markSet(fs, "filter")
	}

	if err := loadEnvFile(config.EnvFile); err != nil {
		return AppConfig{}, err
	}

	if path := configFilePath(config, fs); path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return AppConfig{}, err
		}
		fc.apply(&config, fs)
	}

	applyEnvOverrides(&config, fs)
	config = ApplyAdaptiveConcurrency(config)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the configuration for semantic errors.
func (c AppConfig) Validate() error {
	if strings.TrimSpace(c.Filter) == "" {
		return apperrors.InvalidFilterError{Filter: c.Filter}
	}
	if !IsAllowedInterval(c.Interval) {
		return apperrors.ValidationError{
			Field:   "interval",
			Message: fmt.Sprintf("%s is not one of %s", c.Interval, FormatAllowedIntervals()),
		}
	}
	if c.Top < 0 {
		return apperrors.NewConfigError("--top must be non-negative, got %d", c.Top)
	}
	if c.Concurrency < 0 {
		return apperrors.NewConfigError("--concurrency must be non-negative, got %d", c.Concurrency)
	}
	return nil
}

// loadEnvFile loads a dotenv file without overriding variables already
// present in the environment. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return apperrors.NewConfigError("failed to load env file %s: %v", path, err)
	}
	return nil
}

// configFilePath resolves the YAML file from the flag or the environment.
func configFilePath(config AppConfig, fs *flag.FlagSet) string {
	if isFlagSet(fs, "config") {
		return config.ConfigFile
	}
	if v := os.Getenv(EnvPrefix + "CONFIG"); v != "" {
		return v
	}
	return config.ConfigFile
}

// markSet records a flag as explicitly set so later layers leave it alone.
func markSet(fs *flag.FlagSet, name string) {
	if f := fs.Lookup(name); f != nil {
		_ = fs.Set(name, f.Value.String())
	}
}
