// Package config loads taskpad's YAML configuration.
//
// Precedence (highest first): command-line flags, environment variables, the config
// file, built-in defaults. Flags are applied by the CLI on top of Load's result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	EnvConfigDir = "TASKPAD_CONFIG_DIR"
	EnvDir       = "TASKPAD_DIR"
	EnvRemote    = "TASKPAD_REMOTE"
	EnvFormat    = "TASKPAD_FORMAT"
	EnvDebugLog  = "TASKPAD_TUI_DEBUG_LOG"

	DefaultServeAddr = "127.0.0.1:3336"
)

type Config struct {
	// Dir is the local store directory. Empty means store.DefaultDir().
	Dir string `yaml:"dir,omitempty"`
	// Remote is the base URL of a `taskpad serve` instance. When set, the CLI and TUI
	// use it instead of the local store.
	Remote         string        `yaml:"remote,omitempty"`
	Format         string        `yaml:"format,omitempty"`
	RequestTimeout time.Duration `yaml:"requestTimeout,omitempty"`
	Serve          ServeConfig   `yaml:"serve"`
	TUI            TUIConfig     `yaml:"tui"`
}

type ServeConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

type TUIConfig struct {
	DebugLog string `yaml:"debugLog,omitempty"`
	NoColor  bool   `yaml:"noColor,omitempty"`
}

func Default() *Config {
	return &Config{
		Format:         "json",
		RequestTimeout: 10 * time.Second,
		Serve:          ServeConfig{Addr: DefaultServeAddr},
	}
}

// Dir returns the directory holding config.yaml.
func Dir() (string, error) {
	if d := strings.TrimSpace(os.Getenv(EnvConfigDir)); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".taskpad"), nil
}

func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads path (or the default path when empty) and applies env overrides.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		// No resolvable home dir: run on defaults + env.
		path, _ = Path()
	}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvDir)); v != "" {
		cfg.Dir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvRemote)); v != "" {
		cfg.Remote = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFormat)); v != "" {
		cfg.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDebugLog)); v != "" {
		cfg.TUI.DebugLog = v
	}
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		cfg.TUI.NoColor = true
	}
}

func (c *Config) normalize() error {
	c.Dir = expandHome(strings.TrimSpace(c.Dir))
	c.Remote = strings.TrimRight(strings.TrimSpace(c.Remote), "/")
	c.TUI.DebugLog = expandHome(strings.TrimSpace(c.TUI.DebugLog))
	if strings.TrimSpace(c.Format) == "" {
		c.Format = "json"
	}
	switch c.Format {
	case "json", "edn":
	default:
		return fmt.Errorf("config: unknown format %q (json|edn)", c.Format)
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = 10 * time.Second
	}
	if strings.TrimSpace(c.Serve.Addr) == "" {
		c.Serve.Addr = DefaultServeAddr
	}
	return nil
}

// Save writes c as YAML to path, creating the parent directory.
func Save(path string, c *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
