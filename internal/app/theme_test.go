package app

import (
	"bytes"
	"context"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/five82/quikdocs/internal/config"
	"github.com/five82/quikdocs/internal/controller"
	"github.com/five82/quikdocs/internal/prefs"
	"github.com/five82/quikdocs/internal/sysprefs"
	"github.com/five82/quikdocs/internal/ui"
)

func testOptions(t *testing.T, answers ...resolveAnswer) Options {
	t.Helper()
	dir := t.TempDir()
	if len(answers) == 0 {
		answers = []resolveAnswer{{err: sysprefs.ErrUndetected}}
	}
	return Options{
		ConfigPath: filepath.Join(dir, "config.toml"),
		PrefsPath:  filepath.Join(dir, "prefs.toml"),
		Resolver:   &scriptedResolver{answers: answers},
	}
}

func TestShowTheme_DefaultsToLight(t *testing.T) {
	opts := testOptions(t)
	info, err := ShowTheme(context.Background(), opts)
	if err != nil {
		t.Fatalf("ShowTheme: %v", err)
	}
	if info.Theme != controller.Light || info.Origin != controller.OriginDefault {
		t.Fatalf("info = %+v, want light/default", info)
	}
	if info.HasSystem {
		t.Fatal("HasSystem = true with no detector answering")
	}
	if _, err := os.Stat(opts.PrefsPath); !os.IsNotExist(err) {
		t.Fatalf("ShowTheme wrote the prefs file (stat err %v)", err)
	}
}

func TestShowTheme_UsesSystemSignal(t *testing.T) {
	opts := testOptions(t, resolveAnswer{pref: sysprefs.Preference{PrefersDark: true, Source: "env"}})
	info, err := ShowTheme(context.Background(), opts)
	if err != nil {
		t.Fatalf("ShowTheme: %v", err)
	}
	if info.Theme != controller.Dark || info.Origin != controller.OriginSystem {
		t.Fatalf("info = %+v, want dark/system", info)
	}
	if !info.HasSystem || info.System.Source != "env" {
		t.Fatalf("system = %+v", info.System)
	}
}

func TestSetTheme_PersistsUserChoice(t *testing.T) {
	opts := testOptions(t, resolveAnswer{pref: sysprefs.Preference{PrefersDark: false}})

	info, err := SetTheme(context.Background(), opts, " Dark ")
	if err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if info.Theme != controller.Dark || info.Origin != controller.OriginUser {
		t.Fatalf("info = %+v, want dark/user", info)
	}

	p, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "dark" || p.ThemeSource != "user" {
		t.Fatalf("prefs = %+v, want dark/user", p)
	}

	// A stored user choice beats the light OS signal.
	info, err = ShowTheme(context.Background(), opts)
	if err != nil {
		t.Fatalf("ShowTheme: %v", err)
	}
	if info.Theme != controller.Dark || info.Origin != controller.OriginUser {
		t.Fatalf("info = %+v, want stored dark/user", info)
	}
}

func TestSetTheme_RejectsUnknown(t *testing.T) {
	opts := testOptions(t)
	if _, err := SetTheme(context.Background(), opts, "sepia"); err == nil || !strings.Contains(err.Error(), "sepia") {
		t.Fatalf("SetTheme(sepia) err = %v", err)
	}
	if _, err := os.Stat(opts.PrefsPath); !os.IsNotExist(err) {
		t.Fatal("rejected theme was written")
	}
}

func TestToggleTheme_FlipsResolvedTheme(t *testing.T) {
	opts := testOptions(t, resolveAnswer{pref: sysprefs.Preference{PrefersDark: true}})

	info, err := ToggleTheme(context.Background(), opts)
	if err != nil {
		t.Fatalf("ToggleTheme: %v", err)
	}
	if info.Theme != controller.Light || info.Origin != controller.OriginUser {
		t.Fatalf("first toggle = %+v, want light/user", info)
	}

	info, err = ToggleTheme(context.Background(), opts)
	if err != nil {
		t.Fatalf("ToggleTheme: %v", err)
	}
	if info.Theme != controller.Dark {
		t.Fatalf("second toggle = %q, want dark", info.Theme)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := "follow_system_preference = true\nsystem_poll_interval = \"5s\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(Options{ConfigPath: configPath})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !cfg.FollowSystemPreference || cfg.SystemPollInterval != 5*time.Second {
		t.Fatalf("cfg = %+v, want file values", cfg)
	}

	follow := false
	cfg, err = loadConfig(Options{
		ConfigPath:   configPath,
		PrefsPath:    filepath.Join(dir, "p.toml"),
		FollowSystem: &follow,
		PollEvery:    time.Second,
	})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.FollowSystemPreference || cfg.SystemPollInterval != time.Second {
		t.Fatalf("cfg = %+v, want overrides", cfg)
	}
	if cfg.PrefsPath != filepath.Join(dir, "p.toml") {
		t.Fatalf("PrefsPath = %q", cfg.PrefsPath)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(configPath, []byte("probe_line = [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadConfig(Options{ConfigPath: configPath}); err == nil {
		t.Fatal("loadConfig accepted malformed TOML")
	}
}

func TestShowTheme_MatchesUIStart(t *testing.T) {
	for _, dark := range []bool{true, false} {
		opts := testOptions(t, resolveAnswer{pref: sysprefs.Preference{PrefersDark: dark, Source: "terminal"}})
		info, err := ShowTheme(context.Background(), opts)
		if err != nil {
			t.Fatalf("ShowTheme: %v", err)
		}

		// The start-up path Run takes before handing off to the UI.
		cfg, err := loadConfig(opts)
		if err != nil {
			t.Fatalf("loadConfig: %v", err)
		}
		ctrl := newController(cfg)
		ui.New(ui.Options{
			Controller: ctrl,
			Store:      initialReading(context.Background(), systemResolver(opts, cfg)),
			Config:     &cfg,
		})
		if ctrl.Theme() != info.Theme || ctrl.Origin() != info.Origin {
			t.Fatalf("UI started %s/%s, theme command reported %s/%s",
				ctrl.Theme(), ctrl.Origin(), info.Theme, info.Origin)
		}
	}
}

func TestSystemResolver_HonorsTerminalSetting(t *testing.T) {
	cfg := config.Default()
	cfg.DetectTerminalBackground = false
	r, ok := systemResolver(Options{}, cfg).(*sysprefs.Resolver)
	if !ok {
		t.Fatal("systemResolver did not build a sysprefs.Resolver")
	}
	if slices.Contains(r.Detectors(), "terminal") {
		t.Fatalf("detectors = %v, want no terminal detector", r.Detectors())
	}

	cfg.DetectTerminalBackground = true
	r = systemResolver(Options{}, cfg).(*sysprefs.Resolver)
	if !slices.Contains(r.Detectors(), "terminal") {
		t.Fatalf("detectors = %v, want the terminal detector", r.Detectors())
	}

	fake := &scriptedResolver{answers: []resolveAnswer{{err: sysprefs.ErrUndetected}}}
	if got := systemResolver(Options{Resolver: fake}, cfg); got != Resolver(fake) {
		t.Fatal("systemResolver ignored the injected resolver")
	}
}

func TestNewController_ZeroThresholdsFromConfig(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	content := "back_to_top_threshold = 0\nprobe_line = 0\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadConfig(Options{ConfigPath: configPath, PrefsPath: filepath.Join(dir, "prefs.toml")})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.BackToTopThreshold != 0 || cfg.ProbeLine != 0 {
		t.Fatalf("threshold/probe = %d/%d, want 0/0", cfg.BackToTopThreshold, cfg.ProbeLine)
	}

	ctrl := newController(cfg)
	ctrl.Start(nil, controller.SystemSignal{})
	ctrl.Scroll(100, time.Now())
	if !ctrl.ShowBackToTop() {
		t.Fatal("back_to_top_threshold = 0 did not show back-to-top at 100px")
	}
}

func TestToggleTheme_LogsCorruptPrefs(t *testing.T) {
	opts := testOptions(t)
	if err := os.WriteFile(opts.PrefsPath, []byte("theme = [\n"), 0o644); err != nil {
		t.Fatalf("write prefs: %v", err)
	}

	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})

	info, err := ToggleTheme(context.Background(), opts)
	if err != nil {
		t.Fatalf("ToggleTheme: %v", err)
	}
	if info.Theme != controller.Dark {
		t.Fatalf("Theme = %q, want dark toggled from the light default", info.Theme)
	}
	if !strings.Contains(buf.String(), "prefs:") {
		t.Fatalf("log = %q, want the corrupt prefs file reported", buf.String())
	}
}
