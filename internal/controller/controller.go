package controller

import (
	"log"
	"time"
)

// Defaults in document units (pixels).
const (
	DefaultBackToTopThreshold = 300
	DefaultProbeLine          = 150
	DefaultScrollFrames       = 12
)

// Store is the durable key/value store holding the theme preference.
type Store interface {
	// Load returns the stored preference. ok is false when nothing usable is stored.
	Load() (pref Preference, ok bool)
	Save(pref Preference) error
}

// Sink receives the document-wide theme every time it changes.
type Sink interface {
	Apply(theme Theme)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Theme)

// Apply calls f(theme).
func (f SinkFunc) Apply(theme Theme) { f(theme) }

// Options configure a Controller. Zero values fall back to the defaults above.
type Options struct {
	Store Store

	// FollowSystem makes every OS preference change overwrite the theme, even
	// one the user picked explicitly.
	FollowSystem bool

	BackToTopThreshold int
	ProbeLine          int

	// ExactThresholds uses BackToTopThreshold and ProbeLine as given, so 0
	// means "after any scroll" and "at the viewport top". Negative values
	// still fall back to the defaults.
	ExactThresholds bool

	// SampleEvery limits how often the active-section scan runs. Zero scans
	// on every scroll event.
	SampleEvery time.Duration

	ScrollFrames int

	// Logf receives store failures. Defaults to log.Printf.
	Logf func(format string, args ...any)
}

// Controller owns the theme, the back-to-top flag and the active section.
// It is not safe for concurrent use; drive it from a single event loop.
type Controller struct {
	store        Store
	sink         Sink
	followSystem bool
	threshold    int
	probe        int
	sampleEvery  time.Duration
	frames       int
	logf         func(format string, args ...any)

	theme  Theme
	origin Origin

	started bool
	closed  bool

	sections      []Section
	offset        int
	showBackToTop bool
	active        string
	lastScan      time.Time
	pending       bool
}

// New builds a Controller. Call Start before using it.
func New(opts Options) *Controller {
	c := &Controller{
		store:        opts.Store,
		followSystem: opts.FollowSystem,
		threshold:    opts.BackToTopThreshold,
		probe:        opts.ProbeLine,
		sampleEvery:  opts.SampleEvery,
		frames:       opts.ScrollFrames,
		logf:         opts.Logf,
		theme:        Light,
	}
	if c.threshold < 0 || (c.threshold == 0 && !opts.ExactThresholds) {
		c.threshold = DefaultBackToTopThreshold
	}
	if c.probe < 0 || (c.probe == 0 && !opts.ExactThresholds) {
		c.probe = DefaultProbeLine
	}
	if c.frames <= 0 {
		c.frames = DefaultScrollFrames
	}
	if c.sampleEvery < 0 {
		c.sampleEvery = 0
	}
	if c.logf == nil {
		c.logf = log.Printf
	}
	return c
}

// Start resolves the initial theme and applies it to sink.
//
// Resolution order: a stored user choice, then the OS signal, then a stored
// system-derived value, then Light. The store is only read here; nothing is
// written until the first transition.
func (c *Controller) Start(sink Sink, system SystemSignal) Theme {
	c.sink = sink
	c.started = true
	c.closed = false

	c.theme, c.origin = c.resolve(system)
	c.apply()
	return c.theme
}

func (c *Controller) resolve(system SystemSignal) (Theme, Origin) {
	var (
		stored Preference
		ok     bool
	)
	if c.store != nil {
		stored, ok = c.store.Load()
	}
	if ok && (stored.Origin == OriginUser || !system.Known) {
		return stored.Theme, stored.Origin
	}
	if system.Known {
		return FromDark(system.Dark), OriginSystem
	}
	return Light, OriginDefault
}

// Theme returns the current in-memory theme.
func (c *Controller) Theme() Theme {
	return c.theme
}

// Origin returns who chose the current theme.
func (c *Controller) Origin() Origin {
	return c.origin
}

// FollowSystem reports whether OS changes override explicit choices.
func (c *Controller) FollowSystem() bool {
	return c.followSystem
}

// Toggle flips the theme as an explicit user choice and returns the new value.
// After Close it returns the current theme unchanged.
func (c *Controller) Toggle() Theme {
	if c.closed {
		return c.theme
	}
	c.set(c.theme.Opposite(), OriginUser)
	return c.theme
}

// SetTheme sets the theme as an explicit user choice. It does nothing after
// Close.
func (c *Controller) SetTheme(theme Theme) {
	if c.closed {
		return
	}
	if theme != Dark {
		theme = Light
	}
	c.set(theme, OriginUser)
}

// SystemChanged reacts to an OS color-scheme notification. It reports whether
// the notification was applied. Without FollowSystem, a theme the user picked
// explicitly is left alone.
func (c *Controller) SystemChanged(dark bool) bool {
	if !c.started || c.closed {
		return false
	}
	if !c.followSystem && c.origin == OriginUser {
		return false
	}
	c.set(FromDark(dark), OriginSystem)
	return true
}

func (c *Controller) set(theme Theme, origin Origin) {
	c.theme = theme
	c.origin = origin
	if c.store != nil {
		if err := c.store.Save(Preference{Theme: theme, Origin: origin}); err != nil {
			c.logf("theme: persist %s: %v", theme, err)
		}
	}
	c.apply()
}

func (c *Controller) apply() {
	if c.sink != nil {
		c.sink.Apply(c.theme)
	}
}

// Close tears the controller down. Later scroll events, OS notifications and
// user actions are ignored, so nothing is applied or persisted after it.
func (c *Controller) Close() {
	c.closed = true
	c.pending = false
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	return c.closed
}
