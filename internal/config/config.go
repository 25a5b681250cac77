package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures everything quikdocs reads from config.toml.
type Config struct {
	PrefsPath string

	FollowSystemPreference   bool
	DetectTerminalBackground bool

	BackToTopThreshold  int
	ProbeLine           int
	CellHeight          int
	ScrollSample        time.Duration
	ScrollFrames        int
	ScrollFrameInterval time.Duration
	SystemPollInterval  time.Duration

	BasePath    string
	CatalogPath string
	LogFile     string
}

const (
	defaultConfigPath          = "~/.config/quikdocs/config.toml"
	defaultPrefsPath           = "~/.config/quikdocs/prefs.toml"
	defaultBackToTopThreshold  = 300
	defaultProbeLine           = 150
	defaultCellHeight          = 16
	defaultScrollFrames        = 12
	defaultScrollFrameInterval = 16 * time.Millisecond
	defaultSystemPollInterval  = 2 * time.Second
	defaultBasePath            = "/"
	pagesBasePath              = "/quik-css_demo/"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	cfg := Config{
		PrefsPath:                mustExpand(defaultPrefsPath),
		DetectTerminalBackground: true,
		BackToTopThreshold:       defaultBackToTopThreshold,
		ProbeLine:                defaultProbeLine,
		CellHeight:               defaultCellHeight,
		ScrollFrames:             defaultScrollFrames,
		ScrollFrameInterval:      defaultScrollFrameInterval,
		SystemPollInterval:       defaultSystemPollInterval,
		BasePath:                 defaultBasePath,
	}
	if strings.TrimSpace(os.Getenv("GITHUB_PAGES")) != "" {
		cfg.BasePath = pagesBasePath
	}
	return cfg
}

type rawConfig struct {
	PrefsPath                string  `toml:"prefs_path"`
	FollowSystemPreference   *bool   `toml:"follow_system_preference"`
	DetectTerminalBackground *bool   `toml:"detect_terminal_background"`
	BackToTopThreshold       *int    `toml:"back_to_top_threshold"`
	ProbeLine                *int    `toml:"probe_line"`
	CellHeight               *int    `toml:"cell_height"`
	ScrollSample             string  `toml:"scroll_sample"`
	ScrollFrames             *int    `toml:"scroll_frames"`
	ScrollFrameInterval      string  `toml:"scroll_frame_interval"`
	SystemPollInterval       string  `toml:"system_poll_interval"`
	BasePath                 *string `toml:"base_path"`
	CatalogPath              string  `toml:"catalog_path"`
	LogFile                  string  `toml:"log_file"`
}

// Load locates and parses config.toml, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if err := raw.apply(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (raw rawConfig) apply(cfg *Config) error {
	if p := strings.TrimSpace(raw.PrefsPath); p != "" {
		cfg.PrefsPath = mustExpand(p)
	}
	if raw.FollowSystemPreference != nil {
		cfg.FollowSystemPreference = *raw.FollowSystemPreference
	}
	if raw.DetectTerminalBackground != nil {
		cfg.DetectTerminalBackground = *raw.DetectTerminalBackground
	}
	if raw.BackToTopThreshold != nil {
		cfg.BackToTopThreshold = *raw.BackToTopThreshold
	}
	if raw.ProbeLine != nil {
		cfg.ProbeLine = *raw.ProbeLine
	}
	if raw.CellHeight != nil {
		cfg.CellHeight = *raw.CellHeight
	}
	if raw.ScrollFrames != nil {
		cfg.ScrollFrames = *raw.ScrollFrames
	}

	var err error
	if cfg.ScrollSample, err = parseDuration("scroll_sample", raw.ScrollSample, cfg.ScrollSample); err != nil {
		return err
	}
	if cfg.ScrollFrameInterval, err = parseDuration("scroll_frame_interval", raw.ScrollFrameInterval, cfg.ScrollFrameInterval); err != nil {
		return err
	}
	if cfg.SystemPollInterval, err = parseDuration("system_poll_interval", raw.SystemPollInterval, cfg.SystemPollInterval); err != nil {
		return err
	}

	if raw.BasePath != nil && strings.TrimSpace(*raw.BasePath) != "" {
		cfg.BasePath = normalizeBasePath(*raw.BasePath)
	}
	if p := strings.TrimSpace(raw.CatalogPath); p != "" {
		cfg.CatalogPath = mustExpand(p)
	}
	if p := strings.TrimSpace(raw.LogFile); p != "" {
		cfg.LogFile = mustExpand(p)
	}
	return nil
}

// Validate rejects values the UI cannot work with.
func (c Config) Validate() error {
	switch {
	case c.BackToTopThreshold < 0:
		return fmt.Errorf("back_to_top_threshold must not be negative")
	case c.ProbeLine < 0:
		return fmt.Errorf("probe_line must not be negative")
	case c.CellHeight <= 0:
		return fmt.Errorf("cell_height must be positive")
	case c.ScrollFrames <= 0:
		return fmt.Errorf("scroll_frames must be positive")
	case c.ScrollSample < 0:
		return fmt.Errorf("scroll_sample must not be negative")
	case c.ScrollFrameInterval <= 0:
		return fmt.Errorf("scroll_frame_interval must be positive")
	case c.SystemPollInterval <= 0:
		return fmt.Errorf("system_poll_interval must be positive")
	}
	return nil
}

// Permalink returns the site link for an anchor id under BasePath.
func (c Config) Permalink(id string) string {
	base := normalizeBasePath(c.BasePath)
	if strings.TrimSpace(id) == "" {
		return base
	}
	return base + "#" + id
}

func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return defaultBasePath
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

func parseDuration(key, value string, fallback time.Duration) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
