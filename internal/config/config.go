package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// EnvFile overrides the bookmarks file location.
const EnvFile = "BMK_FILE"

// Config holds application configuration stored at $XDG_CONFIG_HOME/bmk/config.yaml.
type Config struct {
	BookmarksFile       string        `yaml:"bookmarks_file,omitempty"`
	Browser             string        `yaml:"browser,omitempty"`
	LaunchTimeout       time.Duration `yaml:"launch_timeout"`
	QuitOnOpen          bool          `yaml:"quit_on_open"`
	LogLevel            string        `yaml:"log_level"`
	LogFile             string        `yaml:"log_file,omitempty"`
	CheckExcludeDomains []string      `yaml:"check_exclude_domains"`
	CheckConcurrency    int           `yaml:"check_concurrency"`
	CheckTimeout        time.Duration `yaml:"check_timeout"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		LaunchTimeout:       5 * time.Second,
		LogLevel:            "disabled",
		CheckExcludeDomains: []string{"github.com", "gitlab.com"},
		CheckConcurrency:    10,
		CheckTimeout:        10 * time.Second,
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	return xdg.ConfigFile(filepath.Join("bmk", "config.yaml"))
}

// Load reads config from the YAML file at path.
// A missing file yields the defaults; fields absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	defaults := Default()
	if cfg.LaunchTimeout <= 0 {
		cfg.LaunchTimeout = defaults.LaunchTimeout
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.CheckExcludeDomains == nil {
		cfg.CheckExcludeDomains = defaults.CheckExcludeDomains
	}
	if cfg.CheckConcurrency <= 0 {
		cfg.CheckConcurrency = defaults.CheckConcurrency
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = defaults.CheckTimeout
	}

	return &cfg, nil
}

// Save writes the config to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// ResolveBookmarksFile picks the bookmarks file: the flag wins over
// $BMK_FILE, which wins over the config file, which wins over fallback.
func (c *Config) ResolveBookmarksFile(flag, fallback string) string {
	if flag != "" {
		return expandHome(flag)
	}
	if env := os.Getenv(EnvFile); env != "" {
		return expandHome(env)
	}
	if c.BookmarksFile != "" {
		return expandHome(c.BookmarksFile)
	}
	return fallback
}

func expandHome(path string) string {
	if path == "~" || len(path) > 1 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
