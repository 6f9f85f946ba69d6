package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "stripecsv.yaml"

// Environment variables that override the config file.
const (
	EnvPaid      = "STRIPECSV_PAID"
	EnvLogLevel  = "STRIPECSV_LOG_LEVEL"
	EnvOutputDir = "STRIPECSV_OUTPUT_DIR"
	EnvSource    = "STRIPECSV_SOURCE"
)

// Config represents stripecsv.yaml.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Source  SourceConfig  `yaml:"source"`
	Billing BillingConfig `yaml:"billing"`
	Log     LogConfig     `yaml:"log"`
}

// ExportConfig holds the default export parameters.
type ExportConfig struct {
	DataType  string `yaml:"data_type"`
	Format    string `yaml:"format"`     // "line" or "summary"
	OutputDir string `yaml:"output_dir"` // "-" for stdout
}

// SourceConfig selects where records come from.
type SourceConfig struct {
	Path     string `yaml:"path,omitempty"` // records CSV; empty = built-in sample
	PageSize int    `yaml:"page_size"`
}

// BillingConfig records the payment status checked before exporting.
type BillingConfig struct {
	Paid bool `yaml:"paid"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Load reads a stripecsv.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, falling back to Default when the file is missing.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			DataType:  "charges",
			Format:    "line",
			OutputDir: ".",
		},
		Source: SourceConfig{
			PageSize: 100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadDotenv loads variables from .env files into the process
// environment. Missing files are ignored; variables already set win.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with any STRIPECSV_* variables that are set.
func ApplyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv(EnvPaid); ok {
		paid, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvPaid, v, err)
		}
		cfg.Billing.Paid = paid
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvOutputDir); ok {
		cfg.Export.OutputDir = v
	}
	if v, ok := os.LookupEnv(EnvSource); ok {
		cfg.Source.Path = v
	}
	return nil
}
