package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/quikdocs/internal/sysprefs"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "quikdocs dev\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestThemeCommands(t *testing.T) {
	t.Setenv(sysprefs.EnvVar, "dark")
	dir := t.TempDir()
	base := []string{
		"--config", filepath.Join(dir, "config.toml"),
		"--prefs", filepath.Join(dir, "prefs.toml"),
	}

	out, err := execute(t, append([]string{"theme"}, base...)...)
	if err != nil {
		t.Fatalf("theme: %v", err)
	}
	if !strings.Contains(out, "theme:  dark") || !strings.Contains(out, "origin: system") {
		t.Fatalf("theme output = %q", out)
	}

	out, err = execute(t, append([]string{"theme", "set", "light"}, base...)...)
	if err != nil {
		t.Fatalf("theme set: %v", err)
	}
	if !strings.Contains(out, "theme:  light") || !strings.Contains(out, "origin: user") {
		t.Fatalf("theme set output = %q", out)
	}

	out, err = execute(t, append([]string{"theme", "toggle"}, base...)...)
	if err != nil {
		t.Fatalf("theme toggle: %v", err)
	}
	if !strings.Contains(out, "theme:  dark") {
		t.Fatalf("theme toggle output = %q", out)
	}

	if _, err := execute(t, append([]string{"theme", "set", "sepia"}, base...)...); err == nil {
		t.Fatal("theme set sepia succeeded")
	}
}

func TestRootRejectsArgs(t *testing.T) {
	if _, err := execute(t, "extra"); err == nil {
		t.Fatal("root accepted a positional argument")
	}
}
