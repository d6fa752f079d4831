package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Report formats.
const (
	FormatCSV  = "csv"
	FormatYAML = "yaml"
)

type LoggingConfig struct {
	Level      string `yaml:"level"`
	Pretty     bool   `yaml:"pretty"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// Config holds runtime settings of the batch tool. Classifier thresholds are
// compiled in and deliberately absent here.
type Config struct {
	Inputs        []string      `yaml:"inputs"`
	Output        string        `yaml:"output"` // "" or "-" is stdout
	Format        string        `yaml:"format"`
	Workers       int           `yaml:"workers"`
	DPI           int           `yaml:"dpi"` // PDF rendering
	Finder        string        `yaml:"finder"`
	DebugDir      string        `yaml:"debug_dir"`
	DebugCurrency bool          `yaml:"debug_currency"`
	MetricsFile   string        `yaml:"metrics_file"`
	FailFast      bool          `yaml:"fail_fast"`
	ShowStats     bool          `yaml:"show_stats"`
	Logging       LoggingConfig `yaml:"logging"`
	BuildVersion  string        `yaml:"-"`
}

// Default returns the built-in configuration. Workers 0 means one per CPU.
func Default() *Config {
	return &Config{
		Format: FormatCSV,
		DPI:    96,
		Finder: "flood",
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// Load builds a Config from defaults, an optional YAML file, a .env file in
// the working directory and PAGEINFO_* environment variables, in that order.
// The result is not validated; callers apply flag overrides first and then
// call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	applyEnv(cfg)

	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatCSV, FormatYAML:
	default:
		return fmt.Errorf("unknown report format: %q", c.Format)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("dpi must be > 0, got %d", c.DPI)
	}
	return nil
}

func applyEnv(c *Config) {
	c.Output = getEnv("PAGEINFO_OUTPUT", c.Output)
	c.Format = strings.ToLower(getEnv("PAGEINFO_FORMAT", c.Format))
	c.Workers = parseInt(os.Getenv("PAGEINFO_WORKERS"), c.Workers)
	c.DPI = parseInt(os.Getenv("PAGEINFO_DPI"), c.DPI)
	c.Finder = getEnv("PAGEINFO_FINDER", c.Finder)
	c.DebugDir = getEnv("PAGEINFO_DEBUG_DIR", c.DebugDir)
	c.MetricsFile = getEnv("PAGEINFO_METRICS_FILE", c.MetricsFile)
	c.Logging.Level = getEnv("LOG_LEVEL", c.Logging.Level)
	c.Logging.File = getEnv("LOG_FILE", c.Logging.File)
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		c.Logging.Pretty = parseBool(v)
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func parseBool(s string) bool {
	v := strings.ToLower(strings.TrimSpace(s))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
