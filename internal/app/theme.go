package app

import (
	"context"
	"fmt"

	"github.com/five82/quikdocs/internal/config"
	"github.com/five82/quikdocs/internal/controller"
	"github.com/five82/quikdocs/internal/sysprefs"
)

// ThemeInfo describes the theme quikdocs would start with.
type ThemeInfo struct {
	Theme  controller.Theme
	Origin controller.Origin

	// System is the OS reading used for resolution, if any.
	System    sysprefs.Preference
	HasSystem bool

	PrefsPath string
}

// ShowTheme resolves the starting theme without writing anything.
func ShowTheme(ctx context.Context, opts Options) (ThemeInfo, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return ThemeInfo{}, err
	}
	ctrl, info := startHeadless(ctx, cfg, systemResolver(opts, cfg))
	info.Theme = ctrl.Theme()
	info.Origin = ctrl.Origin()
	return info, nil
}

// SetTheme stores theme as an explicit user choice.
func SetTheme(ctx context.Context, opts Options, theme string) (ThemeInfo, error) {
	t, ok := controller.ParseTheme(theme)
	if !ok {
		return ThemeInfo{}, fmt.Errorf("unknown theme %q (want light or dark)", theme)
	}
	return changeTheme(ctx, opts, func(*controller.Controller) controller.Theme { return t })
}

// ToggleTheme stores the opposite of the starting theme as an explicit user
// choice.
func ToggleTheme(ctx context.Context, opts Options) (ThemeInfo, error) {
	return changeTheme(ctx, opts, func(c *controller.Controller) controller.Theme {
		return c.Theme().Opposite()
	})
}

func changeTheme(ctx context.Context, opts Options, pick func(*controller.Controller) controller.Theme) (ThemeInfo, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return ThemeInfo{}, err
	}
	ctrl, info := startHeadless(ctx, cfg, systemResolver(opts, cfg))

	// Written directly so the CLI can report a failed save
	pref := controller.Preference{Theme: pick(ctrl), Origin: controller.OriginUser}
	if err := newPrefsStore(cfg).Save(pref); err != nil {
		return ThemeInfo{}, fmt.Errorf("save theme: %w", err)
	}
	info.Theme = pref.Theme
	info.Origin = pref.Origin
	return info, nil
}

// startHeadless runs the controller's start-up resolution against the stored
// preference and a one-shot OS reading, with no sink attached. It uses the
// same detectors and reading as Run.
func startHeadless(ctx context.Context, cfg config.Config, resolver Resolver) (*controller.Controller, ThemeInfo) {
	snap := initialReading(ctx, resolver).Snapshot()

	ctrl := newController(cfg)
	ctrl.Start(nil, controller.SystemSignal{Dark: snap.PrefersDark(), Known: snap.HasPreference})
	ctrl.Close()

	return ctrl, ThemeInfo{
		System:    snap.Preference,
		HasSystem: snap.HasPreference,
		PrefsPath: cfg.PrefsPath,
	}
}
