package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/example/inkcalc/internal/theme"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // Set at compile time if needed
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
	}
}

// Load reads the configuration file, if any, and then applies INKCALC_*
// environment overrides. Flag values layer on top at the call site, so the
// effective precedence is flags > environment > file > defaults.
func (l *Loader) Load() (*Config, error) {
	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		parsed, perr := Parse(f)
		f.Close()
		if perr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, perr)
		}
		cfg = parsed
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	// 1. Variable override path
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	// 2. Local run directory (dev mode)
	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".inkcalcrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	// 3. XDG Config Path
	home, _ := os.UserHomeDir()
	xdgPath := filepath.Join(home, ".config", "inkcalc", "config.rc")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	// Fallback name
	xdgPath = filepath.Join(home, ".config", "inkcalc", "inkcalc.rc")
	if _, err := os.Stat(xdgPath); err == nil {
		return xdgPath
	}

	return ""
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("INKCALC_SERVICE_URL"); v != "" {
		cfg.ServiceURL = v
	}
	if v := os.Getenv("INKCALC_RESULT_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("INKCALC_RESULT_DELAY: %w", err)
		}
		cfg.ResultDelay = d
	}
	if v := os.Getenv("INKCALC_SAVE_DIR"); v != "" {
		cfg.SaveDir = v
	}
	if v := os.Getenv("INKCALC_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("INKCALC_BACKGROUND"); v != "" {
		col, err := theme.ParseColor(v)
		if err != nil {
			return fmt.Errorf("INKCALC_BACKGROUND: %w", err)
		}
		cfg.Background = col
	}
	return nil
}
