package controller

import "strings"

// Theme is the light/dark visual mode of the document.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme accepts "light" or "dark" (case-insensitive, surrounding space ignored).
func ParseTheme(s string) (Theme, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(Light):
		return Light, true
	case string(Dark):
		return Dark, true
	}
	return "", false
}

// Opposite returns the other theme. Anything that is not Dark flips to Dark.
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// IsDark reports whether t is the dark theme.
func (t Theme) IsDark() bool {
	return t == Dark
}

func (t Theme) String() string {
	return string(t)
}

// FromDark maps an OS "prefers dark" signal to a theme.
func FromDark(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}

// Origin records who chose the current theme.
type Origin int

const (
	OriginDefault Origin = iota
	OriginSystem
	OriginUser
)

func (o Origin) String() string {
	switch o {
	case OriginSystem:
		return "system"
	case OriginUser:
		return "user"
	default:
		return "default"
	}
}

// ParseOrigin maps a stored origin label back to an Origin. Blank or unknown
// labels are treated as OriginUser so that stores written before origins were
// recorded keep their "stored choice wins" meaning.
func ParseOrigin(s string) Origin {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "system":
		return OriginSystem
	case "default":
		return OriginDefault
	default:
		return OriginUser
	}
}

// Preference is the persisted theme together with its origin.
type Preference struct {
	Theme  Theme
	Origin Origin
}

// SystemSignal is the OS-level "prefers dark color scheme" reading.
// Known is false when no detector could answer.
type SystemSignal struct {
	Dark  bool
	Known bool
}
