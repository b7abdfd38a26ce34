package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all CLI configuration. Values resolve in priority order:
// built-in defaults, then the optional YAML config file, then QUIZMD_*
// environment variables. Command-line flags override on top of this.
type Config struct {
	// DB is the SQLite database path. Empty means the default location.
	DB string `yaml:"db"`

	// Log selects the diagnostic logger mode: "dev" or "prod".
	Log string `yaml:"log"`

	// Strict escalates warnings and duplicate IDs to failures.
	Strict bool `yaml:"strict"`

	Review ReviewConfig `yaml:"review"`
}

// ReviewConfig configures the interactive review session.
type ReviewConfig struct {
	// Limit caps the queue length per session. 0 means no cap.
	Limit int `yaml:"limit"`

	// Options is the number of options displayed per question. 0 shows
	// all of them.
	Options int `yaml:"options"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Log: "prod",
	}
}

// Load resolves the configuration from defaults, the YAML file at path (or
// the default location when path is empty) and the environment. A missing
// file at the default location is fine; a missing file named explicitly is
// an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// DefaultPath returns $XDG_CONFIG_HOME/quizmd/config.yaml, falling back to
// ~/.config/quizmd/config.yaml. Empty when no home directory is known.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "quizmd", "config.yaml")
}

// applyEnv overlays QUIZMD_* environment variables onto cfg.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("QUIZMD_DB"); v != "" {
		cfg.DB = v
	}
	if v := os.Getenv("QUIZMD_LOG"); v != "" {
		cfg.Log = v
	}
	if v := os.Getenv("QUIZMD_STRICT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("QUIZMD_STRICT: %w", err)
		}
		cfg.Strict = b
	}
	if v := os.Getenv("QUIZMD_REVIEW_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("QUIZMD_REVIEW_LIMIT: %w", err)
		}
		cfg.Review.Limit = n
	}
	if v := os.Getenv("QUIZMD_REVIEW_OPTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("QUIZMD_REVIEW_OPTIONS: %w", err)
		}
		cfg.Review.Options = n
	}
	return nil
}

// Validate checks the resolved configuration.
func (c Config) Validate() error {
	switch c.Log {
	case "dev", "prod":
	default:
		return fmt.Errorf("log mode must be \"dev\" or \"prod\", got %q", c.Log)
	}
	return nil
}
