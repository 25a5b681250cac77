package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GITHUB_PAGES", "")

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BackToTopThreshold != defaultBackToTopThreshold {
		t.Fatalf("BackToTopThreshold = %d, want %d", cfg.BackToTopThreshold, defaultBackToTopThreshold)
	}
	if cfg.ProbeLine != defaultProbeLine {
		t.Fatalf("ProbeLine = %d, want %d", cfg.ProbeLine, defaultProbeLine)
	}
	if cfg.FollowSystemPreference {
		t.Fatalf("FollowSystemPreference = true, want false by default")
	}
	if !cfg.DetectTerminalBackground {
		t.Fatalf("DetectTerminalBackground = false, want true by default")
	}
	if cfg.BasePath != "/" {
		t.Fatalf("BasePath = %q, want /", cfg.BasePath)
	}

	wantPrefs, err := expandPath(defaultPrefsPath)
	if err != nil {
		t.Fatalf("expandPath(defaultPrefsPath) returned error: %v", err)
	}
	if cfg.PrefsPath != wantPrefs {
		t.Fatalf("PrefsPath = %q, want %q", cfg.PrefsPath, wantPrefs)
	}
}

func TestLoad_GitHubPagesBasePath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_PAGES", "1")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BasePath != pagesBasePath {
		t.Fatalf("BasePath = %q, want %q", cfg.BasePath, pagesBasePath)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
prefs_path = "  ~/.quik/prefs.toml  "
follow_system_preference = true
detect_terminal_background = false
back_to_top_threshold = 400
probe_line = 96
cell_height = 20
scroll_sample = "120ms"
scroll_frames = 6
scroll_frame_interval = "10ms"
system_poll_interval = "5s"
base_path = "docs"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !strings.HasPrefix(cfg.PrefsPath, home) {
		t.Fatalf("PrefsPath = %q, want it under HOME %q", cfg.PrefsPath, home)
	}
	if !cfg.FollowSystemPreference || cfg.DetectTerminalBackground {
		t.Fatalf("flags = follow:%v terminal:%v, want true/false", cfg.FollowSystemPreference, cfg.DetectTerminalBackground)
	}
	if cfg.BackToTopThreshold != 400 || cfg.ProbeLine != 96 || cfg.CellHeight != 20 {
		t.Fatalf("geometry = %d/%d/%d, want 400/96/20", cfg.BackToTopThreshold, cfg.ProbeLine, cfg.CellHeight)
	}
	if cfg.ScrollSample != 120*time.Millisecond {
		t.Fatalf("ScrollSample = %v, want 120ms", cfg.ScrollSample)
	}
	if cfg.ScrollFrames != 6 || cfg.ScrollFrameInterval != 10*time.Millisecond {
		t.Fatalf("animation = %d/%v, want 6/10ms", cfg.ScrollFrames, cfg.ScrollFrameInterval)
	}
	if cfg.SystemPollInterval != 5*time.Second {
		t.Fatalf("SystemPollInterval = %v, want 5s", cfg.SystemPollInterval)
	}
	if cfg.BasePath != "/docs/" {
		t.Fatalf("BasePath = %q, want /docs/", cfg.BasePath)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_PAGES", "")

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
prefs_path = "   "
scroll_sample = ""
base_path = " "
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg.PrefsPath != want.PrefsPath || cfg.ScrollSample != 0 || cfg.BasePath != "/" {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoad_InvalidTOMLFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`probe_line = [`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatalf("Load returned nil error, want parse error")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	cases := map[string]string{
		"bad duration":      `scroll_sample = "soon"`,
		"negative probe":    `probe_line = -1`,
		"zero cell height":  `cell_height = 0`,
		"zero frames":       `scroll_frames = 0`,
		"negative sampling": `scroll_sample = "-5ms"`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), "invalid config") {
				t.Fatalf("Load error = %v, want invalid config", err)
			}
		})
	}
}

func TestPermalink(t *testing.T) {
	tests := []struct {
		base string
		id   string
		want string
	}{
		{"/", "installation", "/#installation"},
		{"/quik-css_demo/", "flex", "/quik-css_demo/#flex"},
		{"quik-css_demo", "grid", "/quik-css_demo/#grid"},
		{"/", "", "/"},
	}
	for _, tt := range tests {
		cfg := Config{BasePath: tt.base}
		if got := cfg.Permalink(tt.id); got != tt.want {
			t.Fatalf("Permalink(%q) with base %q = %q, want %q", tt.id, tt.base, got, tt.want)
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}
