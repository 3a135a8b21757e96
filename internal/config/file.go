package config

import (
	"flag"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/handlewatch/internal/errors"
)

// FileConfig is the YAML representation of the configuration file. Every
// field is optional; zero values leave the flag default in place.
type FileConfig struct {
	Filter      string `yaml:"filter"`
	Interval    string `yaml:"interval"`
	Top         *int   `yaml:"top"`
	JSON        *bool  `yaml:"json"`
	NoColor     *bool  `yaml:"no_color"`
	LogLevel    string `yaml:"log_level"`
	LogFile     string `yaml:"log_file"`
	MetricsAddr string `yaml:"metrics_addr"`
	Concurrency *int   `yaml:"concurrency"`

	interval time.Duration
}

// LoadFile reads and decodes a YAML configuration file.
func LoadFile(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, apperrors.NewConfigError("failed to read config file %s: %v", path, err)
	}
	return ParseFile(data)
}

// ParseFile decodes YAML configuration bytes.
func ParseFile(data []byte) (FileConfig, error) {
	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return FileConfig{}, apperrors.NewConfigError("invalid config file: %v", err)
	}
	if fc.Interval != "" {
		d, err := time.ParseDuration(fc.Interval)
		if err != nil {
			return FileConfig{}, apperrors.NewConfigError("invalid interval %q in config file: %v", fc.Interval, err)
		}
		fc.interval = d
	}
	return fc, nil
}

// apply copies file values into config for flags not set on the command line.
func (fc FileConfig) apply(config *AppConfig, fs *flag.FlagSet) {
	if fc.Filter != "" && !isFlagSetAny(fs, "filter", "f") {
		config.Filter = fc.Filter
	}
	if fc.interval != 0 && !isFlagSetAny(fs, "interval", "i") {
		config.Interval = fc.interval
	}
	if fc.Top != nil && !isFlagSet(fs, "top") {
		config.Top = *fc.Top
	}
	if fc.JSON != nil && !isFlagSet(fs, "json") {
		config.JSON = *fc.JSON
	}
	if fc.NoColor != nil && !isFlagSet(fs, "no-color") {
		config.NoColor = *fc.NoColor
	}
	if fc.LogLevel != "" && !isFlagSet(fs, "log-level") {
		config.LogLevel = fc.LogLevel
	}
	if fc.LogFile != "" && !isFlagSet(fs, "log-file") {
		config.LogFile = fc.LogFile
	}
	if fc.MetricsAddr != "" && !isFlagSet(fs, "metrics-addr") {
		config.MetricsAddr = fc.MetricsAddr
	}
	if fc.Concurrency != nil && !isFlagSet(fs, "concurrency") {
		config.Concurrency = *fc.Concurrency
	}
}
