// Package prefs handles quikdocs user preferences persistence.
// Preferences are stored in ~/.config/quikdocs/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/quikdocs/internal/controller"
)

// Prefs holds user preferences for quikdocs.
type Prefs struct {
	Theme       string `toml:"theme"`
	ThemeSource string `toml:"theme_source,omitempty"`
}

const defaultPrefsPath = "~/.config/quikdocs/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. A missing file yields empty
// preferences and no error.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{}, fmt.Errorf("resolve path: %w", err)
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Prefs{}, nil
		}
		return Prefs{}, fmt.Errorf("open prefs: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Prefs{}, fmt.Errorf("read prefs: %w", err)
	}

	var p Prefs
	if err := toml.Unmarshal(bytes, &p); err != nil {
		return Prefs{}, fmt.Errorf("parse prefs: %w", err)
	}
	p.Theme = strings.TrimSpace(p.Theme)
	p.ThemeSource = strings.TrimSpace(p.ThemeSource)
	return p, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// Store persists the theme preference in a prefs file. It satisfies
// controller.Store.
type Store struct {
	Path string

	// Logf receives read failures. Nil discards them.
	Logf func(format string, args ...any)
}

// NewStore returns a Store for path; an empty path uses DefaultPath.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Load returns the stored theme. Missing files, unreadable files and values
// other than "light" or "dark" all count as nothing stored.
func (s *Store) Load() (controller.Preference, bool) {
	p, err := Load(s.Path)
	if err != nil {
		if s.Logf != nil {
			s.Logf("prefs: %v", err)
		}
		return controller.Preference{}, false
	}
	theme, ok := controller.ParseTheme(p.Theme)
	if !ok {
		return controller.Preference{}, false
	}
	return controller.Preference{Theme: theme, Origin: controller.ParseOrigin(p.ThemeSource)}, true
}

// Save writes the theme and its origin.
func (s *Store) Save(pref controller.Preference) error {
	return Save(s.Path, Prefs{Theme: pref.Theme.String(), ThemeSource: pref.Origin.String()})
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
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
