package server

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config controls the HTTP server.
type Config struct {
	Addr         string        `yaml:"addr"`
	LexiconPath  string        `yaml:"lexicon"`
	LogLevel     string        `yaml:"log_level"`  // debug, info, warn, error
	LogFormat    string        `yaml:"log_format"` // json or console
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DefaultConfig returns standard configuration
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		LexiconPath:  "afinn111.json",
		LogLevel:     "info",
		LogFormat:    "json",
		MaxBodyBytes: 1 << 20,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig and then
// applies environment overrides. An empty path skips the file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("error parsing config YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("AFINN_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("AFINN_LEXICON"); v != "" {
		c.LexiconPath = v
	}
	if v := os.Getenv("AFINN_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("AFINN_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("AFINN_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid AFINN_MAX_BODY_BYTES %q: %w", v, err)
		}
		c.MaxBodyBytes = n
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: addr is required")
	}
	if c.LexiconPath == "" {
		return fmt.Errorf("config: lexicon path is required")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config: unknown log_format %q", c.LogFormat)
	}
	return nil
}
