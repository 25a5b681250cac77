package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quikdocs/internal/catalog"
	"github.com/five82/quikdocs/internal/config"
	"github.com/five82/quikdocs/internal/controller"
	"github.com/five82/quikdocs/internal/prefs"
	"github.com/five82/quikdocs/internal/state"
	"github.com/five82/quikdocs/internal/sysprefs"
	"github.com/five82/quikdocs/internal/ui"
)

// resolveTimeout bounds the one-shot OS reading taken outside the poller.
const resolveTimeout = 2 * time.Second

// Options configure the quikdocs application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses prefs_path from the config

	// FollowSystem overrides follow_system_preference when set.
	FollowSystem *bool

	// PollEvery overrides system_poll_interval when positive.
	PollEvery time.Duration

	// Resolver overrides the OS color-scheme detectors.
	Resolver Resolver
}

// Run boots the quikdocs TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	if dangling := cat.DanglingTargets(); len(dangling) > 0 {
		log.Printf("catalog: sidebar links without sections: %v", dangling)
	}

	resolver := systemResolver(opts, cfg)

	// Initial reading so the controller starts with the OS signal
	store := initialReading(ctx, resolver)

	// The poller stops with ctx, which ends the OS subscription
	pollCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	StartPoller(pollCtx, store, resolver, cfg.SystemPollInterval)

	ctrl := newController(cfg)
	defer ctrl.Close()

	return ui.Run(ui.Options{
		Context:    ctx,
		Controller: ctrl,
		Catalog:    cat,
		Store:      store,
		Config:     &cfg,
	})
}

// loadConfig reads the config file and applies option overrides.
func loadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.PrefsPath != "" {
		path, err := config.ExpandPath(opts.PrefsPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("resolve prefs path: %w", err)
		}
		cfg.PrefsPath = path
	}
	if opts.FollowSystem != nil {
		cfg.FollowSystemPreference = *opts.FollowSystem
	}
	if opts.PollEvery > 0 {
		cfg.SystemPollInterval = opts.PollEvery
	}
	return cfg, nil
}

// systemResolver returns the OS color-scheme resolver shared by the UI and
// the theme commands, so both start from the same reading.
func systemResolver(opts Options, cfg config.Config) Resolver {
	if opts.Resolver != nil {
		return opts.Resolver
	}
	return sysprefs.NewResolver(sysprefs.DefaultDetectors(cfg.DetectTerminalBackground)...)
}

// initialReading takes one bounded OS reading into a fresh store.
func initialReading(ctx context.Context, resolver Resolver) *state.Store {
	store := &state.Store{}
	rctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	defer cancel()
	_ = refresh(rctx, store, resolver)
	return store
}

func newPrefsStore(cfg config.Config) *prefs.Store {
	store := prefs.NewStore(cfg.PrefsPath)
	store.Logf = log.Printf
	return store
}

func newController(cfg config.Config) *controller.Controller {
	return controller.New(controller.Options{
		Store:              newPrefsStore(cfg),
		FollowSystem:       cfg.FollowSystemPreference,
		BackToTopThreshold: cfg.BackToTopThreshold,
		ProbeLine:          cfg.ProbeLine,
		ExactThresholds:    true,
		SampleEvery:        cfg.ScrollSample,
		ScrollFrames:       cfg.ScrollFrames,
	})
}

// setupLogging sends the standard logger to the configured file, or discards
// it while the UI owns the terminal.
func setupLogging(path string) (func(), error) {
	if path == "" {
		prev := log.Writer()
		log.SetOutput(io.Discard)
		return func() { log.SetOutput(prev) }, nil
	}
	f, err := tea.LogToFile(path, "quikdocs")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}
