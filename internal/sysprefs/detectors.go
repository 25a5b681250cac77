package sysprefs

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

// EnvVar lets the user force a scheme: "dark" or "light".
const EnvVar = "QUIKDOCS_COLOR_SCHEME"

// EnvDetector reads QUIKDOCS_COLOR_SCHEME.
type EnvDetector struct {
	Getenv func(string) string
}

func (EnvDetector) Name() string  { return "env" }
func (EnvDetector) Priority() int { return 100 }

func (d EnvDetector) Detect(context.Context) (bool, bool) {
	getenv := d.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	switch strings.ToLower(strings.TrimSpace(getenv(EnvVar))) {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	return false, false
}

// CommandRunner runs an external command and returns its stdout.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	if _, err := exec.LookPath(name); err != nil {
		return nil, err
	}
	return exec.CommandContext(ctx, name, args...).Output()
}

// GSettingsDetector asks GNOME for org.gnome.desktop.interface color-scheme.
type GSettingsDetector struct {
	Run     CommandRunner
	Timeout time.Duration
}

func (GSettingsDetector) Name() string  { return "gsettings" }
func (GSettingsDetector) Priority() int { return 50 }

func (d GSettingsDetector) Detect(ctx context.Context) (bool, bool) {
	run := d.Run
	if run == nil {
		run = execRunner
	}
	timeout := d.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := run(ctx, "gsettings", "get", "org.gnome.desktop.interface", "color-scheme")
	if err != nil {
		return false, false
	}
	value := strings.Trim(strings.TrimSpace(string(out)), "'\"")
	switch value {
	case "prefer-dark":
		return true, true
	case "prefer-light", "default":
		return false, true
	}
	return false, false
}

// ColorFGBGDetector parses the COLORFGBG variable set by rxvt, Konsole and
// others ("fg;bg" or "fg;default;bg").
type ColorFGBGDetector struct {
	Getenv func(string) string
}

func (ColorFGBGDetector) Name() string  { return "colorfgbg" }
func (ColorFGBGDetector) Priority() int { return 20 }

func (d ColorFGBGDetector) Detect(context.Context) (bool, bool) {
	getenv := d.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	raw := strings.TrimSpace(getenv("COLORFGBG"))
	if raw == "" {
		return false, false
	}
	parts := strings.Split(raw, ";")
	bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
	if err != nil || bg < 0 || bg > 15 {
		return false, false
	}
	// ANSI 7 (white) and 9-15 (bright colors) are light backgrounds.
	return !(bg == 7 || bg >= 9), true
}

// TerminalDetector reports whether the terminal background is dark. The
// terminal is queried once, when the detector is built, because the UI owns
// the terminal afterwards. Without a terminal on stdin and stdout there is
// nothing to query and the detector never answers.
type TerminalDetector struct {
	dark  bool
	known bool
}

// isTerminal reports whether both stdin and stdout are terminals.
var isTerminal = func() bool {
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

// NewTerminalDetector queries the terminal background now.
func NewTerminalDetector() *TerminalDetector {
	return newTerminalDetector(isTerminal, lipgloss.HasDarkBackground)
}

func newTerminalDetector(tty func() bool, hasDark func() bool) *TerminalDetector {
	// lipgloss assumes dark when it cannot ask, so only ask a real terminal.
	if !tty() {
		return &TerminalDetector{}
	}
	return &TerminalDetector{dark: hasDark(), known: true}
}

func (*TerminalDetector) Name() string  { return "terminal" }
func (*TerminalDetector) Priority() int { return 10 }

func (d *TerminalDetector) Detect(context.Context) (bool, bool) {
	return d.dark, d.known
}

// DefaultDetectors returns the detectors quikdocs uses. The terminal detector
// is included only when terminal is true.
func DefaultDetectors(terminal bool) []Detector {
	detectors := []Detector{
		EnvDetector{},
		GSettingsDetector{},
		ColorFGBGDetector{},
	}
	if terminal {
		detectors = append(detectors, NewTerminalDetector())
	}
	return detectors
}
