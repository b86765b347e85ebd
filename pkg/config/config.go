// Package config provides configuration loading and management.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/logreport/pkg/adapters/filesource"
	"github.com/user/logreport/pkg/report"
)

// ErrInvalid is returned for configuration values that cannot be used.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the full configuration for logreport.
type Config struct {
	// Report
	Report  string `yaml:"report"`
	Padding int    `yaml:"padding"`

	// Sources
	SourcePolicy string `yaml:"source_policy"`
	Workers      int    `yaml:"workers"` // 0 means one per CPU

	// Diagnostics
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
	Timing   bool   `yaml:"timing"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Report:       string(report.KindHandlers),
		Padding:      report.DefaultPadding,
		SourcePolicy: filesource.LazySkip.String(),
		LogLevel:     "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
// A file that cannot be read is returned as is; a file that does not parse
// or names an unknown key is reported as ErrInvalid.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}

	return cfg, nil
}

var logLevels = []string{"debug", "info", "warn", "warning", "error", "quiet"}

// Validate checks every value and returns the first problem found.
func (c Config) Validate() error {
	if _, err := report.ParseKind(c.Report); err != nil {
		return fmt.Errorf("%w: report: %w", ErrInvalid, err)
	}
	if c.Padding < 0 {
		return fmt.Errorf("%w: padding must not be negative, got %d", ErrInvalid, c.Padding)
	}
	if _, err := filesource.ParsePolicy(c.SourcePolicy); err != nil {
		return fmt.Errorf("%w: source_policy: %w", ErrInvalid, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalid, c.Workers)
	}
	if !validLogLevel(c.LogLevel) {
		return fmt.Errorf("%w: log_level %q, expected one of %s", ErrInvalid, c.LogLevel, strings.Join(logLevels, ", "))
	}
	return nil
}

// Policy returns the parsed source policy. Call Validate first.
func (c Config) Policy() filesource.Policy {
	p, _ := filesource.ParsePolicy(c.SourcePolicy)
	return p
}

func validLogLevel(s string) bool {
	s = strings.ToLower(s)
	for _, l := range logLevels {
		if s == l {
			return true
		}
	}
	return false
}
