// Package config loads chromascale settings from defaults, an optional YAML
// file, a .env file and the environment. Command-line flags are bound on top
// by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variable names.
const (
	EnvPrefix = "CHROMASCALE_"

	EnvListen      = EnvPrefix + "LISTEN"
	EnvDatabase    = EnvPrefix + "DATABASE"
	EnvCORSOrigins = EnvPrefix + "CORS_ORIGINS"
	EnvLogLevel    = EnvPrefix + "LOG_LEVEL"
	EnvAIBackend   = EnvPrefix + "AI_BACKEND"
	EnvAIModel     = EnvPrefix + "AI_MODEL"
	EnvAITimeout   = EnvPrefix + "AI_TIMEOUT"

	// API keys and base URL are also accepted under the names used by common
	// hosting integrations.
	EnvGoogleAPIKey      = "GOOGLE_API_KEY"
	EnvGeminiAPIKey      = "GEMINI_API_KEY"
	EnvIntegrationAPIKey = "AI_INTEGRATIONS_GEMINI_API_KEY"
	EnvIntegrationURL    = "AI_INTEGRATIONS_GEMINI_BASE_URL"
)

// AI backends.
const (
	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"
)

// Defaults.
const (
	DefaultListen    = "127.0.0.1:5000"
	DefaultDatabase  = "chromascale.db"
	DefaultLogLevel  = "info"
	DefaultAIBackend = BackendGeminiAPI
	DefaultAIModel   = "gemini-3-flash-preview"
	DefaultAITimeout = 20 * time.Second
)

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Listen      string   `yaml:"listen"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// AIConfig holds suggestion service settings.
type AIConfig struct {
	Backend string        `yaml:"backend"`
	Model   string        `yaml:"model"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	APIKey  string        `yaml:"-"` // environment only
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig `yaml:"server"`
	Database string       `yaml:"database"`
	LogLevel string       `yaml:"log_level"`
	AI       AIConfig     `yaml:"ai"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Listen:      DefaultListen,
			CORSOrigins: []string{"*"},
		},
		Database: DefaultDatabase,
		LogLevel: DefaultLogLevel,
		AI: AIConfig{
			Backend: DefaultAIBackend,
			Model:   DefaultAIModel,
			Timeout: DefaultAITimeout,
		},
	}
}

// Load builds a configuration. path may be empty, in which case no YAML file is
// read. A .env file in the working directory (or next to path) is loaded if
// present; variables already set in the environment win over it.
func Load(path string) (*Config, error) {
	cfg := Default()

	envFile := ".env"
	if path != "" {
		envFile = filepath.Join(filepath.Dir(path), ".env")
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvListen); ok && v != "" {
		c.Server.Listen = v
	}
	if v, ok := lookup(EnvDatabase); ok && v != "" {
		c.Database = v
	}
	if v, ok := lookup(EnvCORSOrigins); ok && v != "" {
		c.Server.CORSOrigins = splitList(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvAIBackend); ok && v != "" {
		c.AI.Backend = v
	}
	if v, ok := lookup(EnvAIModel); ok && v != "" {
		c.AI.Model = v
	}
	if v, ok := lookup(EnvAITimeout); ok && v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvAITimeout, err)
		}
		c.AI.Timeout = d
	}
	if v, ok := lookup(EnvIntegrationURL); ok && v != "" {
		c.AI.BaseURL = v
	}
	for _, name := range []string{EnvIntegrationAPIKey, EnvGeminiAPIKey, EnvGoogleAPIKey} {
		if v, ok := lookup(name); ok && v != "" {
			c.AI.APIKey = v
			break
		}
	}
	return nil
}

// Validate checks the configuration for obviously bad values.
func (c *Config) Validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server listen address is required")
	}
	if c.Database == "" {
		return fmt.Errorf("database path is required")
	}
	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		return fmt.Errorf("invalid log level: %s (valid: trace, debug, info, warn, error, off)", c.LogLevel)
	}
	switch c.AI.Backend {
	case BackendGeminiAPI, BackendVertexAI:
	default:
		return fmt.Errorf("invalid AI backend: %s (valid: %s, %s)", c.AI.Backend, BackendGeminiAPI, BackendVertexAI)
	}
	if c.AI.Model == "" {
		return fmt.Errorf("AI model is required")
	}
	if c.AI.Timeout <= 0 {
		return fmt.Errorf("AI timeout must be positive")
	}
	return nil
}

// AIEnabled reports whether enough is configured to call the suggestion
// service. Vertex AI authenticates with application default credentials, so
// only the Gemini API backend needs a key.
func (c *Config) AIEnabled() bool {
	return c.AI.Backend == BackendVertexAI || c.AI.APIKey != ""
}

// Level returns the configured log level as an hclog.Level.
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseDuration accepts Go durations ("20s") or a bare number of seconds.
func parseDuration(s string) (time.Duration, error) {
	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(s)
}
