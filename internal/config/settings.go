package config

import (
	"errors"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultServerBaseURL  = "http://127.0.0.1:4096"
	defaultServerUsername = "opencode"
	defaultTimeoutSeconds = 30
	defaultGrouping       = "type"
	defaultControlParts   = "zero"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Tree    TreeConfig    `toml:"tree"`
	Logging LoggingConfig `toml:"logging"`
}

type ServerConfig struct {
	BaseURL        string `toml:"base_url"`
	Username       string `toml:"username"`
	Token          string `toml:"token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type TreeConfig struct {
	Grouping     string `toml:"grouping"`
	ControlParts string `toml:"control_parts"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			BaseURL:        defaultServerBaseURL,
			Username:       defaultServerUsername,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Tree: TreeConfig{
			Grouping:     defaultGrouping,
			ControlParts: defaultControlParts,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadFromPath(path)
}

func (c Config) ServerBaseURL() string {
	baseURL := strings.TrimSpace(c.Server.BaseURL)
	if baseURL == "" {
		return defaultServerBaseURL
	}
	return strings.TrimRight(baseURL, "/")
}

func (c Config) ServerUsername() string {
	username := strings.TrimSpace(c.Server.Username)
	if username == "" {
		return defaultServerUsername
	}
	return username
}

func (c Config) ServerToken() string {
	return strings.TrimSpace(c.Server.Token)
}

func (c Config) ServerTimeout() time.Duration {
	seconds := c.Server.TimeoutSeconds
	if seconds <= 0 {
		seconds = defaultTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

// TreeGrouping reports how leaves are arranged under each message,
// either "type" or "flat".
func (c Config) TreeGrouping() string {
	switch strings.ToLower(strings.TrimSpace(c.Tree.Grouping)) {
	case "flat":
		return "flat"
	default:
		return defaultGrouping
	}
}

// TreeControlParts reports how control parts are weighed, either
// "zero" or "serialized".
func (c Config) TreeControlParts() string {
	switch strings.ToLower(strings.TrimSpace(c.Tree.ControlParts)) {
	case "serialized":
		return "serialized"
	default:
		return defaultControlParts
	}
}

func (c Config) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func loadFromPath(path string) (Config, error) {
	cfg := DefaultConfig()
	if err := readTOML(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}
