// Package config loads and validates the runtime configuration at startup.
// Fail-fast: an invalid value stops the process before any work is done.
//
// Sources, lowest precedence first: built-in defaults, the YAML file named by
// CLEANER_CONFIG, environment variables. The CLI applies its flags on top.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration for the cleaning service.
type Config struct {
	InputPath  string `yaml:"input"`
	OutputPath string `yaml:"output"`

	LogDir   string `yaml:"log_dir"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`

	// Optional sinks; empty disables them.
	AuditDBPath string `yaml:"audit_db"`
	DatabaseURL string `yaml:"database_url"`
	RedisURL    string `yaml:"redis_url"`

	// Service mode.
	Schedule string `yaml:"schedule"` // cron spec, e.g. "@every 6h"
	Watch    bool   `yaml:"watch"`    // rerun when the input file changes
	Port     string `yaml:"port"`
	GRPCPort string `yaml:"grpc_port"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		InputPath:  "data.csv",
		OutputPath: "cleaned_file.csv",
		LogDir:     "logs",
		LogFile:    "data_cleaning.log",
		LogLevel:   "info",
		Schedule:   "@every 6h",
		Port:       "8083",
		GRPCPort:   "9093",
	}
}

// Load builds the configuration from defaults, the optional YAML file and
// the environment, then validates it.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CLEANER_CONFIG"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	str := map[string]*string{
		"CLEANER_INPUT":     &c.InputPath,
		"CLEANER_OUTPUT":    &c.OutputPath,
		"CLEANER_LOG_DIR":   &c.LogDir,
		"CLEANER_LOG_FILE":  &c.LogFile,
		"CLEANER_LOG_LEVEL": &c.LogLevel,
		"CLEANER_AUDIT_DB":  &c.AuditDBPath,
		"DATABASE_URL":      &c.DatabaseURL,
		"REDIS_URL":         &c.RedisURL,
		"CLEAN_SCHEDULE":    &c.Schedule,
		"CLEANER_PORT":      &c.Port,
		"CLEANER_GRPC_PORT": &c.GRPCPort,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}

	if s := os.Getenv("CLEANER_WATCH"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("CLEANER_WATCH must be a boolean, got %q", s)
		}
		c.Watch = v
	}
	return nil
}

// Validate checks required values and the schedule syntax.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.InputPath) == "" {
		errs = append(errs, errors.New("input path is required"))
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		errs = append(errs, errors.New("output path is required"))
	}
	if c.LogDir != "" && c.LogFile == "" {
		errs = append(errs, errors.New("log file name is required when a log dir is set"))
	}
	if c.Schedule != "" {
		if _, err := cron.ParseStandard(c.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("schedule %q: %w", c.Schedule, err))
		}
	}
	for name, p := range map[string]string{"port": c.Port, "grpc port": c.GRPCPort} {
		if p == "" {
			continue
		}
		if n, err := strconv.Atoi(p); err != nil || n < 1 || n > 65535 {
			errs = append(errs, fmt.Errorf("%s must be a TCP port, got %q", name, p))
		}
	}
	return errors.Join(errs...)
}
