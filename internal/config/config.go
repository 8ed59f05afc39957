// =============================================================================
// USV to XLSX Converter - Configuration Module
// =============================================================================
//
// This module is responsible for loading the optional run configuration file.
// Every setting has a default, so the converter runs without any file at all.
// Command-line flags override values loaded here.
//
// EXAMPLE (usv-to-xlsx.yaml):
//   log_level: warn
//   sheet_name_prefix: Group
//   output_dir: ./out
//   output_name_format: "{index}_{timestamp}.xlsx"
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/usvtools/usv-to-xlsx/internal/logging"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is read when --config is not given and the file exists.
const DefaultConfigFile = "usv-to-xlsx.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// maxSheetPrefixLength leaves room for a sheet number within Excel's
// 31 character sheet name limit.
const maxSheetPrefixLength = 25

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the run configuration.
type Config struct {
	// LogLevel is used when no -v flag is given.
	// Valid values: "none", "error", "warn", "info", "debug", "trace"
	// Default: "none"
	LogLevel string `yaml:"log_level"`

	// SheetNamePrefix names worksheets as <prefix>1, <prefix>2, ...
	// Default: "Sheet"
	SheetNamePrefix string `yaml:"sheet_name_prefix"`

	// OutputDir enables generated output names, one workbook per USV file.
	// Empty means workbooks go to stdout or to explicit --output paths.
	OutputDir string `yaml:"output_dir"`

	// OutputNameFormat is the file name pattern used with OutputDir.
	// Placeholders:
	//   {index}     - 1-based file number, zero padded to 3 digits
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Current date (YYYYMMDD)
	// Default: "{index}_{uuid}.xlsx"
	OutputNameFormat string `yaml:"output_name_format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration file at path.
//
// An empty path falls back to DefaultConfigFile if it exists, and otherwise
// to Default(). An explicit path that does not exist is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return Default(), nil
		}
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration data, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = "none"
	}
	if cfg.SheetNamePrefix == "" {
		cfg.SheetNamePrefix = "Sheet"
	}
	if cfg.OutputNameFormat == "" {
		cfg.OutputNameFormat = "{index}_{uuid}.xlsx"
	}
	if !strings.HasSuffix(strings.ToLower(cfg.OutputNameFormat), ".xlsx") {
		cfg.OutputNameFormat += ".xlsx"
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if _, err := logging.VerbosityFromName(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}

	if len(c.SheetNamePrefix) > maxSheetPrefixLength {
		return fmt.Errorf("%w: sheet_name_prefix must be at most %d characters", ErrInvalid, maxSheetPrefixLength)
	}
	if strings.ContainsAny(c.SheetNamePrefix, `:\/?*[]`) {
		return fmt.Errorf("%w: sheet_name_prefix %q contains a character Excel does not allow in sheet names", ErrInvalid, c.SheetNamePrefix)
	}

	if strings.ContainsAny(c.OutputNameFormat, `/\`) {
		return fmt.Errorf("%w: output_name_format must be a file name, not a path", ErrInvalid)
	}

	return nil
}

// Verbosity returns the verbosity count for LogLevel.
func (c *Config) Verbosity() int {
	v, err := logging.VerbosityFromName(c.LogLevel)
	if err != nil {
		return 0
	}
	return v
}
