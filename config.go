package main

import (
	"os"
	"strings"

	"go.uber.org/zap"
)

// Config holds runtime configuration, resolved once at startup
type Config struct {
	Provider ProviderType
	APIKey   string // static credential, never logged
	Model    string // empty means the provider default
	Endpoint string // Gemini base URL override
	Region   string // AWS region for Bedrock
	Theme    string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Endpoint: DefaultGeminiEndpoint,
		Theme:    "default",
	}
}

// LoadConfig resolves configuration from defaults, the settings file and
// environment variables, in increasing order of precedence.
func LoadConfig(settings *Settings) (*Config, error) {
	cfg := DefaultConfig()

	if settings != nil {
		if settings.Provider != "" {
			provider, err := ParseProviderType(settings.Provider)
			if err != nil {
				return nil, err
			}
			cfg.Provider = provider
		}
		if settings.Model != "" {
			cfg.Model = settings.Model
		}
		if settings.Endpoint != "" {
			cfg.Endpoint = settings.Endpoint
		}
		if settings.Region != "" {
			cfg.Region = settings.Region
		}
		if settings.Theme != "" {
			cfg.Theme = settings.Theme
		}
	}

	cfg.APIKey = os.Getenv("API_KEY")

	if val := os.Getenv("TASKSAI_PROVIDER"); val != "" {
		provider, err := ParseProviderType(val)
		if err != nil {
			return nil, err
		}
		cfg.Provider = provider
	}

	if val := os.Getenv("TASKSAI_MODEL"); val != "" {
		cfg.Model = val
	}

	if val := os.Getenv("TASKSAI_ENDPOINT"); val != "" {
		cfg.Endpoint = strings.TrimRight(val, "/")
	}

	if val := os.Getenv("AWS_REGION"); val != "" {
		cfg.Region = val
	}

	if val := os.Getenv("TASKSAI_THEME"); val != "" {
		cfg.Theme = val
	}

	return cfg, nil
}

// Validate reports configuration that makes every command fail
func (c *Config) Validate() error {
	if c.Provider == ProviderGemini && c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// ProviderConfig converts the configuration for NewProvider
func (c *Config) ProviderConfig(logger *zap.Logger) *ProviderConfig {
	return &ProviderConfig{
		Provider: c.Provider,
		APIKey:   c.APIKey,
		Region:   c.Region,
		Model:    c.Model,
		Endpoint: c.Endpoint,
		Timeout:  RequestTimeout,
		Logger:   logger,
	}
}
