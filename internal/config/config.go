package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Provider names accepted in the configuration.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const (
	DefaultHost  = "0.0.0.0"
	DefaultPort  = 5001
	DefaultModel = "qwen-turbo"

	DefaultSystemPrompt = "You are a helpful AI assistant. Answer the user's questions concisely."
)

// Config holds the runtime configuration, loaded from an optional YAML file
// with environment overrides on top.
type Config struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	Provider     string `yaml:"provider"`
	Model        string `yaml:"model"`
	APIKey       string `yaml:"api_key"`
	BaseURL      string `yaml:"base_url"`
	SystemPrompt string `yaml:"system_prompt"`

	LogFile string `yaml:"log_file"`

	// ConfigFile is the path the config was loaded from; empty when running
	// on defaults and environment only.
	ConfigFile string `yaml:"-"`
}

// Load reads the YAML file at path (when non-empty), then applies environment
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
		cfg.ConfigFile = path
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// Reload re-reads the config file this Config was loaded from.
func (c *Config) Reload() (*Config, error) {
	return Load(c.ConfigFile)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("UIBRIDGE_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("UIBRIDGE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("UIBRIDGE_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("UIBRIDGE_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("UIBRIDGE_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("UIBRIDGE_API_KEY"); v != "" {
		c.APIKey = v
	}
	if c.APIKey == "" {
		switch c.Provider {
		case ProviderAnthropic:
			c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		default:
			c.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Provider == "" && c.APIKey != "" {
		c.Provider = ProviderOpenAI
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.SystemPrompt == "" {
		c.SystemPrompt = DefaultSystemPrompt
	}
}

// IsLLMConfigured reports whether a model provider is usable; without one the
// agent runs in fallback echo mode.
func (c *Config) IsLLMConfigured() bool {
	return c.Provider != "" && c.APIKey != ""
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
