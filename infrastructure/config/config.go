package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all client configuration.
type Config struct {
	// Remote API endpoints.
	BaseURL   string `yaml:"base_url"`
	UploadURL string `yaml:"upload_url"`

	// Nominal request timeout. Enforcement is transport-dependent; the
	// retry policy's backoff delays are the only hard timing contract.
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// Retry policy tuning.
	RetryMaxAttempts       int           `yaml:"retry_max_attempts"`
	RetryBaseDelay         time.Duration `yaml:"retry_base_delay"`
	RetryMaxDelay          time.Duration `yaml:"retry_max_delay"`
	RetryBackoffMultiplier float64       `yaml:"retry_backoff_multiplier"`

	// Silent-refresh tuning.
	TokenCheckInterval time.Duration `yaml:"token_check_interval"`
	TokenRefreshWindow time.Duration `yaml:"token_refresh_window"`

	// Route guard hydration wait.
	GuardValidationWait time.Duration `yaml:"guard_validation_wait"`

	// StateDir is where the two credential strings are persisted.
	StateDir string `yaml:"state_dir"`

	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
}

// LoadConfig loads configuration from environment variables, layered on
// top of an optional YAML file named by BLOGSPACE_CONFIG.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		BaseURL:   "http://localhost:4000/api",
		UploadURL: "http://localhost:4000/uploads",

		RequestTimeout:         10 * time.Second,
		RetryMaxAttempts:       3,
		RetryBaseDelay:         1 * time.Second,
		RetryMaxDelay:          10 * time.Second,
		RetryBackoffMultiplier: 2,

		TokenCheckInterval:  5 * time.Minute,
		TokenRefreshWindow:  10 * time.Minute,
		GuardValidationWait: 1 * time.Second,

		Environment: "development",
		LogLevel:    "info",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.StateDir = filepath.Join(home, ".blogspace")
	} else {
		cfg.StateDir = ".blogspace"
	}

	if path := os.Getenv("BLOGSPACE_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	cfg.BaseURL = getEnv("BLOGSPACE_API_URL", cfg.BaseURL)
	cfg.UploadURL = getEnv("BLOGSPACE_UPLOAD_URL", cfg.UploadURL)
	cfg.StateDir = getEnv("BLOGSPACE_STATE_DIR", cfg.StateDir)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.RequestTimeout = getEnvDuration("BLOGSPACE_REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.RetryMaxAttempts = getEnvInt("BLOGSPACE_RETRY_MAX_ATTEMPTS", cfg.RetryMaxAttempts)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile overlays values from a YAML file onto the defaults.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1")
	}
	if c.RetryBackoffMultiplier < 1 {
		return fmt.Errorf("retry backoff multiplier must be at least 1")
	}
	return nil
}

// IsDevelopment checks if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnv gets an environment variable with a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
