package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ClientConfig is the configuration of the donorctl client.
type ClientConfig struct {
	BaseURL        string        `yaml:"base_url"        env:"DONORCTL_BASE_URL"        env-default:"http://localhost:8080"`
	TokenPath      string        `yaml:"token_path"      env:"DONORCTL_TOKEN_PATH"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"DONORCTL_REQUEST_TIMEOUT" env-default:"15s"`
	Chat           ChatConfig    `yaml:"chat"`
	Log            LogConfig     `yaml:"log"`
}

// ChatConfig holds the pacing of the simulated assistant.
type ChatConfig struct {
	WelcomeInterval time.Duration `yaml:"welcome_interval" env:"DONORCTL_CHAT_WELCOME_INTERVAL" env-default:"600ms"`
	ReplyDelay      time.Duration `yaml:"reply_delay"      env:"DONORCTL_CHAT_REPLY_DELAY"      env-default:"1200ms"`
}

// LoadClient reads the client configuration from the YAML file named by
// DONORCTL_CONFIG (optional) and the environment. An empty TokenPath
// resolves to <user config dir>/donorbase/token.
func LoadClient() (*ClientConfig, error) {
	var cfg ClientConfig
	if err := readInto(&cfg, "DONORCTL_CONFIG", ""); err != nil {
		return nil, err
	}

	if cfg.TokenPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve token path: %w", err)
		}
		cfg.TokenPath = filepath.Join(dir, "donorbase", "token")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// Validate checks the client configuration.
func (c *ClientConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be > 0 (got %v)", c.RequestTimeout)
	}
	if c.Chat.WelcomeInterval < 0 || c.Chat.ReplyDelay < 0 {
		return fmt.Errorf("chat delays must not be negative")
	}
	return nil
}
