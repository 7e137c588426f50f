package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for DocuBot
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Docs      DocsConfig      `mapstructure:"docs"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Slack     SlackConfig     `mapstructure:"slack"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DocsConfig holds documentation retrieval configuration
type DocsConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Name           string `mapstructure:"name"`
	FetchTimeout   int    `mapstructure:"fetch_timeout_seconds"`
	PageCharLimit  int    `mapstructure:"page_char_limit"`
	TotalCharLimit int    `mapstructure:"total_char_limit"`
}

// LLMConfig holds completion provider configuration
type LLMConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	MaxTokens int    `mapstructure:"max_tokens"`
	Timeout   int    `mapstructure:"timeout_seconds"`
}

// SlackConfig holds Slack platform credentials
type SlackConfig struct {
	BotToken      string `mapstructure:"bot_token"`
	SigningSecret string `mapstructure:"signing_secret"`
}

// RateLimitConfig holds per-user rate limiting configuration
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxRequests   int `mapstructure:"max_requests"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("DOCUBOT")
	v.AutomaticEnv()

	// Legacy env names from the hosted deployment keep working.
	v.BindEnv("llm.api_key", "DOCUBOT_LLM_API_KEY", "GROQ_API_KEY")
	v.BindEnv("docs.base_url", "DOCUBOT_DOCS_BASE_URL", "DOCS_BASE_URL")
	v.BindEnv("docs.name", "DOCUBOT_DOCS_NAME", "DOCS_NAME")
	v.BindEnv("slack.bot_token", "DOCUBOT_SLACK_BOT_TOKEN", "SLACK_BOT_TOKEN")
	v.BindEnv("slack.signing_secret", "DOCUBOT_SLACK_SIGNING_SECRET", "SLACK_SIGNING_SECRET")
	v.BindEnv("log.level", "DOCUBOT_LOG_LEVEL", "LOG_LEVEL")

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("docs.base_url", "https://developer.adobe.com/app-builder/docs/")
	v.SetDefault("docs.name", "App Builder")
	v.SetDefault("docs.fetch_timeout_seconds", 5)
	v.SetDefault("docs.page_char_limit", 6000)
	v.SetDefault("docs.total_char_limit", 15000)

	v.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "llama-3.3-70b-versatile")
	v.SetDefault("llm.max_tokens", 1024)
	v.SetDefault("llm.timeout_seconds", 30)

	v.SetDefault("slack.bot_token", "")
	v.SetDefault("slack.signing_secret", "")

	v.SetDefault("rate_limit.window_seconds", 60)
	v.SetDefault("rate_limit.max_requests", 10)

	v.SetDefault("log.level", "info")
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Timeout returns the per-page fetch timeout as a duration
func (c *DocsConfig) Timeout() time.Duration {
	return time.Duration(c.FetchTimeout) * time.Second
}

// Window returns the rate-limit window as a duration
func (c *RateLimitConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}
