package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port    string `toml:"port"`
	LogMode string `toml:"log_mode"`
}

type AssistantConfig struct {
	Provider     string `toml:"provider"`
	Model        string `toml:"model"`
	APIKey       string `toml:"api_key"`
	BaseURL      string `toml:"base_url"`
	ReplyDelayMS int    `toml:"reply_delay_ms"`
	TimeoutMS    int    `toml:"timeout_ms"`
}

type RenderConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Assistant AssistantConfig `toml:"assistant"`
	Render    RenderConfig    `toml:"render"`
}

// Default returns the configuration the service runs with when no file is
// present: mock assistant, dev logging, the stock canvas size.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:    "8080",
			LogMode: "dev",
		},
		Assistant: AssistantConfig{
			Provider:     "mock",
			ReplyDelayMS: 1500,
			TimeoutMS:    30000,
		},
		Render: RenderConfig{
			Width:  900,
			Height: 520,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when present.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("LOG_MODE"); v != "" {
		c.Server.LogMode = v
	}
	if v := os.Getenv("ASSISTANT_PROVIDER"); v != "" {
		c.Assistant.Provider = v
	}
	if v := os.Getenv("ASSISTANT_MODEL"); v != "" {
		c.Assistant.Model = v
	}
	if v := os.Getenv("ASSISTANT_API_KEY"); v != "" {
		c.Assistant.APIKey = v
	}
	if v := os.Getenv("ASSISTANT_BASE_URL"); v != "" {
		c.Assistant.BaseURL = v
	}
}
