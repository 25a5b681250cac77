package sysprefs

import (
	"context"
	"errors"
	"testing"
)

type fixedDetector struct {
	name     string
	priority int
	dark     bool
	ok       bool
	calls    int
}

func (d *fixedDetector) Name() string  { return d.name }
func (d *fixedDetector) Priority() int { return d.priority }
func (d *fixedDetector) Detect(context.Context) (bool, bool) {
	d.calls++
	return d.dark, d.ok
}

func TestResolver_PriorityOrder(t *testing.T) {
	low := &fixedDetector{name: "low", priority: 1, dark: false, ok: true}
	high := &fixedDetector{name: "high", priority: 9, dark: true, ok: true}
	r := NewResolver(low, high)

	pref, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !pref.PrefersDark || pref.Source != "high" {
		t.Fatalf("Resolve = %+v, want dark from high", pref)
	}
	if low.calls != 0 {
		t.Fatalf("low priority detector was asked %d times, want 0", low.calls)
	}
	if names := r.Detectors(); len(names) != 2 || names[0] != "high" {
		t.Fatalf("Detectors = %v, want [high low]", names)
	}
}

func TestResolver_FallsThroughUnavailable(t *testing.T) {
	r := NewResolver(
		&fixedDetector{name: "broken", priority: 9, ok: false},
		&fixedDetector{name: "fallback", priority: 1, dark: false, ok: true},
		nil,
	)
	pref, err := r.Resolve(context.Background())
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if pref.PrefersDark || pref.Source != "fallback" {
		t.Fatalf("Resolve = %+v, want light from fallback", pref)
	}
}

func TestResolver_Undetected(t *testing.T) {
	r := NewResolver(&fixedDetector{name: "none", ok: false})
	if _, err := r.Resolve(context.Background()); !errors.Is(err, ErrUndetected) {
		t.Fatalf("Resolve error = %v, want ErrUndetected", err)
	}
}

func TestResolver_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewResolver(&fixedDetector{name: "x", ok: true})
	if _, err := r.Resolve(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Resolve error = %v, want context.Canceled", err)
	}
}

func env(values map[string]string) func(string) string {
	return func(k string) string { return values[k] }
}

func TestEnvDetector(t *testing.T) {
	tests := []struct {
		value    string
		wantDark bool
		wantOK   bool
	}{
		{"dark", true, true},
		{" Light ", false, true},
		{"", false, false},
		{"auto", false, false},
	}
	for _, tt := range tests {
		d := EnvDetector{Getenv: env(map[string]string{EnvVar: tt.value})}
		dark, ok := d.Detect(context.Background())
		if dark != tt.wantDark || ok != tt.wantOK {
			t.Fatalf("Detect(%q) = (%v, %v), want (%v, %v)", tt.value, dark, ok, tt.wantDark, tt.wantOK)
		}
	}
}

func TestGSettingsDetector(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		err      error
		wantDark bool
		wantOK   bool
	}{
		{"prefer dark", "'prefer-dark'\n", nil, true, true},
		{"prefer light", "'prefer-light'\n", nil, false, true},
		{"default", "'default'\n", nil, false, true},
		{"garbage", "'sepia'\n", nil, false, false},
		{"missing binary", "", errors.New("not found"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotArgs []string
			d := GSettingsDetector{Run: func(_ context.Context, name string, args ...string) ([]byte, error) {
				gotArgs = append([]string{name}, args...)
				return []byte(tt.out), tt.err
			}}
			dark, ok := d.Detect(context.Background())
			if dark != tt.wantDark || ok != tt.wantOK {
				t.Fatalf("Detect = (%v, %v), want (%v, %v)", dark, ok, tt.wantDark, tt.wantOK)
			}
			if len(gotArgs) != 4 || gotArgs[0] != "gsettings" || gotArgs[3] != "color-scheme" {
				t.Fatalf("command = %v, want gsettings get ... color-scheme", gotArgs)
			}
		})
	}
}

func TestColorFGBGDetector(t *testing.T) {
	tests := []struct {
		value    string
		wantDark bool
		wantOK   bool
	}{
		{"15;0", true, true},
		{"0;15", false, true},
		{"0;7", false, true},
		{"15;default;0", true, true},
		{"15;8", true, true},
		{"", false, false},
		{"15;x", false, false},
		{"15;42", false, false},
	}
	for _, tt := range tests {
		d := ColorFGBGDetector{Getenv: env(map[string]string{"COLORFGBG": tt.value})}
		dark, ok := d.Detect(context.Background())
		if dark != tt.wantDark || ok != tt.wantOK {
			t.Fatalf("Detect(%q) = (%v, %v), want (%v, %v)", tt.value, dark, ok, tt.wantDark, tt.wantOK)
		}
	}
}

func TestDefaultDetectors(t *testing.T) {
	if got := len(DefaultDetectors(false)); got != 3 {
		t.Fatalf("DefaultDetectors(false) = %d detectors, want 3", got)
	}
	r := NewResolver(DefaultDetectors(false)...)
	names := r.Detectors()
	if names[0] != "env" || names[len(names)-1] != "colorfgbg" {
		t.Fatalf("detector order = %v, want env first and colorfgbg last", names)
	}
}

func TestTerminalDetector_NoTerminal(t *testing.T) {
	queried := false
	d := newTerminalDetector(func() bool { return false }, func() bool {
		queried = true
		return true
	})
	if dark, ok := d.Detect(context.Background()); dark || ok {
		t.Fatalf("Detect = (%v, %v), want (false, false) without a terminal", dark, ok)
	}
	if queried {
		t.Fatal("background was queried without a terminal")
	}
}

func TestTerminalDetector_Terminal(t *testing.T) {
	for _, dark := range []bool{true, false} {
		d := newTerminalDetector(func() bool { return true }, func() bool { return dark })
		got, ok := d.Detect(context.Background())
		if !ok || got != dark {
			t.Fatalf("Detect = (%v, %v), want (%v, true)", got, ok, dark)
		}
	}
}

func TestDefaultDetectors_UndetectedWithoutSignals(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv("COLORFGBG", "")
	t.Setenv("PATH", "")
	prev := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = prev })

	r := NewResolver(DefaultDetectors(true)...)
	if names := r.Detectors(); names[len(names)-1] != "terminal" {
		t.Fatalf("detector order = %v, want terminal last", names)
	}
	pref, err := r.Resolve(context.Background())
	if !errors.Is(err, ErrUndetected) {
		t.Fatalf("Resolve = %+v, %v, want ErrUndetected", pref, err)
	}
}
