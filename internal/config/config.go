package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Port           int           `yaml:"port"`
	GeminiAPIKey   string        `yaml:"gemini_api_key"`
	GeminiModel    string        `yaml:"gemini_model"`
	GeminiBaseURL  string        `yaml:"gemini_base_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	APIKey         string        `yaml:"api_key"`
	LogLevel       string        `yaml:"log_level"`
}

func defaults() Config {
	return Config{
		Port:           5000,
		GeminiModel:    "gemini-2.5-flash",
		RequestTimeout: 60 * time.Second,
		LogLevel:       "info",
	}
}

// Load reads configuration from a YAML file (if path is non-empty), then
// applies environment variable overrides. An empty path returns defaults
// plus env overrides.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse yaml: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from path without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	// PORT is the conventional platform variable; THAMBI_PORT wins when both are set.
	for _, key := range []string{"PORT", "THAMBI_PORT"} {
		if v := os.Getenv(key); v != "" {
			p, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("config: invalid %s %q: %w", key, v, err)
			}
			cfg.Port = p
		}
	}
	for _, key := range []string{"GOOGLE_GEMINI_API", "THAMBI_GEMINI_API_KEY"} {
		if v := os.Getenv(key); v != "" {
			cfg.GeminiAPIKey = v
		}
	}
	if v := os.Getenv("THAMBI_GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("THAMBI_GEMINI_BASE_URL"); v != "" {
		cfg.GeminiBaseURL = v
	}
	if v := os.Getenv("THAMBI_REQUEST_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid THAMBI_REQUEST_TIMEOUT %q: %w", v, err)
		}
		cfg.RequestTimeout = d
	}
	if v := os.Getenv("THAMBI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("THAMBI_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
