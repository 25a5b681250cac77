package ui

import (
	"testing"

	"github.com/five82/quikdocs/internal/controller"
)

func TestThemeFor(t *testing.T) {
	light := ThemeFor(controller.Light)
	dark := ThemeFor(controller.Dark)

	if light.Name != "light" || light.Glamour != "light" {
		t.Fatalf("light theme = %q/%q", light.Name, light.Glamour)
	}
	if dark.Name != "dark" || dark.Glamour != "dark" {
		t.Fatalf("dark theme = %q/%q", dark.Name, dark.Glamour)
	}
	if light.Background == dark.Background || light.Text == dark.Text {
		t.Fatal("light and dark palettes share base colors")
	}
	if got := ThemeFor(controller.Theme("sepia")); got.Name != "light" {
		t.Fatalf("unknown theme = %q, want light", got.Name)
	}
}

func TestMarkdownStyle(t *testing.T) {
	th := ThemeFor(controller.Dark)
	cfg := markdownStyle(th)
	if cfg.Document.BackgroundColor == nil || *cfg.Document.BackgroundColor != th.Background {
		t.Fatal("document background not set from theme")
	}
	if cfg.Document.Margin == nil || *cfg.Document.Margin != 2 {
		t.Fatal("document margin not set")
	}
}

func TestThemeSinkCountsApplies(t *testing.T) {
	s := &themeSink{}
	s.Apply(controller.Dark)
	s.Apply(controller.Dark)
	theme, n := s.Current()
	if theme != controller.Dark || n != 2 {
		t.Fatalf("Current = %q, %d", theme, n)
	}
}
