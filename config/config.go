// Package config loads keyguess settings from a YAML file, a .env file and
// KEYGUESS_* environment variables, in increasing order of precedence.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/guileen/keyguess/errors"
	"github.com/guileen/keyguess/logger"
	"github.com/guileen/keyguess/storage"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "KEYGUESS_"

// Config is the keyguess configuration.
type Config struct {
	Server  Server  `yaml:"server"`
	Storage Storage `yaml:"storage"`
	Logging Logging `yaml:"logging"`
}

// Server configures the REST API.
type Server struct {
	Bind        string   `yaml:"bind"`
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Storage configures the pebble store used by scan.
type Storage struct {
	Path      string `yaml:"path"`
	ReadOnly  bool   `yaml:"read_only"`
	CacheSize int64  `yaml:"cache_size"`
}

// Logging configures the process logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: Server{
			Bind:        "127.0.0.1",
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Storage: Storage{
			Path:      "./data",
			ReadOnly:  true,
			CacheSize: 64 << 20,
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig reads the YAML file at configPath over the defaults.
func LoadConfig(configPath string) (*Config, error) {
	if !ConfigExists(configPath) {
		return nil, errors.Errorf(errors.ErrCodeValidation, "config file does not exist: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// SaveConfig writes config as YAML, creating the directory if needed.
func SaveConfig(config *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}

// Load builds the effective configuration. configPath may be empty. Values
// from envFile (when it exists) are exported before overrides are applied;
// variables already set in the environment win over the file.
func Load(configPath, envFile string) (*Config, error) {
	if envFile != "" && ConfigExists(envFile) {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	config := DefaultConfig()
	if configPath != "" {
		var err error
		if config, err = LoadConfig(configPath); err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from KEYGUESS_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("BIND"); ok {
		c.Server.Bind = v
	}
	if v, ok := get("PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Errorf(errors.ErrCodeValidation, "invalid %sPORT %q", EnvPrefix, v)
		}
		c.Server.Port = port
	}
	if v, ok := get("CORS_ORIGINS"); ok {
		c.Server.CORSOrigins = splitList(v)
	}
	if v, ok := get("STORAGE_PATH"); ok {
		c.Storage.Path = v
	}
	if v, ok := get("STORAGE_READ_ONLY"); ok {
		ro, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Errorf(errors.ErrCodeValidation, "invalid %sSTORAGE_READ_ONLY %q", EnvPrefix, v)
		}
		c.Storage.ReadOnly = ro
	}
	if v, ok := get("STORAGE_CACHE_SIZE"); ok {
		size, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Errorf(errors.ErrCodeValidation, "invalid %sSTORAGE_CACHE_SIZE %q", EnvPrefix, v)
		}
		c.Storage.CacheSize = size
	}
	if v, ok := get("LOG_LEVEL"); ok {
		c.Logging.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.Logging.Format = v
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.Errorf(errors.ErrCodeValidation, "port %d out of range", c.Server.Port)
	}
	if c.Storage.CacheSize < 0 {
		return errors.Errorf(errors.ErrCodeValidation, "negative cache size %d", c.Storage.CacheSize)
	}
	if _, ok := logger.ParseLevel(c.Logging.Level); !ok {
		return errors.Errorf(errors.ErrCodeValidation, "unknown log level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return errors.Errorf(errors.ErrCodeValidation, "unknown log format %q", c.Logging.Format)
	}
	return nil
}

// Addr is the listen address of the REST API.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Bind, strconv.Itoa(c.Server.Port))
}

// PebbleConfig translates the storage section.
func (c *Config) PebbleConfig() *storage.PebbleConfig {
	pc := storage.DefaultPebbleConfig(c.Storage.Path)
	pc.ReadOnly = c.Storage.ReadOnly
	if c.Storage.CacheSize > 0 {
		pc.CacheSize = c.Storage.CacheSize
	}
	return pc
}

// LoggerConfig translates the logging section. LOG_ADD_SOURCE is still read
// from the environment. Validate must have passed.
func (c *Config) LoggerConfig() logger.Config {
	lc := logger.LoadConfig()
	if level, ok := logger.ParseLevel(c.Logging.Level); ok {
		lc.Level = level
	}
	lc.Format = c.Logging.Format
	return lc
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
