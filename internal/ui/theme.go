package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quikdocs/internal/controller"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Header, footer and sidebar
	SurfaceAlt string // Code and card backgrounds

	// Selection colors
	SelectionBg   string
	SelectionText string

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string

	// Glamour names the markdown style family ("light" or "dark").
	Glamour string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Badge: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Accent)).
			Foreground(lipgloss.Color(t.SelectionText)).
			Bold(true).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Background lipgloss.Style
	Surface    lipgloss.Style

	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	Header   lipgloss.Style
	Footer   lipgloss.Style
	Logo     lipgloss.Style
	Selected lipgloss.Style
	Badge    lipgloss.Style
}

// WithBackground returns a copy of Styles with every text style carrying the
// given background, so segments rendered side by side leave no gaps.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	return Styles{
		Background: s.Background.Background(bg),
		Surface:    s.Surface.Background(bg),

		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		WarningText: s.WarningText.Background(bg),
		DangerText:  s.DangerText.Background(bg),

		Header:   s.Header.Background(bg),
		Footer:   s.Footer.Background(bg),
		Logo:     s.Logo.Background(bg),
		Selected: s.Selected,
		Badge:    s.Badge,
	}
}

// ThemeFor returns the palette for a controller theme.
func ThemeFor(t controller.Theme) Theme {
	if t.IsDark() {
		return darkTheme()
	}
	return lightTheme()
}

func lightTheme() Theme {
	// Quik CSS light palette
	return Theme{
		Name: "light",

		Background: "#ffffff",
		Surface:    "#f5f5f5", // --card-bg
		SurfaceAlt: "#e6f0ff", // bg-light-blue

		SelectionBg:   "#0000ff", // back-to-top blue
		SelectionText: "#ffffff",

		Border:      "#dddddd",
		BorderFocus: "#0000ff",

		Text:    "#333333",
		Muted:   "#666666",
		Faint:   "#999999",
		Accent:  "#0000ff",
		Success: "#2e7d32", // deep green
		Warning: "#b26a00",
		Danger:  "#c62828", // deep red

		Glamour: "light",
	}
}

func darkTheme() Theme {
	// Quik CSS dark palette
	return Theme{
		Name: "dark",

		Background: "#1a1a1a",
		Surface:    "#2d2d2d", // --card-bg
		SurfaceAlt: "#243447",

		SelectionBg:   "#4d8dff",
		SelectionText: "#ffffff",

		Border:      "#444444",
		BorderFocus: "#4d8dff",

		Text:    "#e0e0e0", // sidebar link color
		Muted:   "#a0a0a0",
		Faint:   "#707070",
		Accent:  "#4d8dff",
		Success: "#66bb6a",
		Warning: "#ffb74d",
		Danger:  "#ef5350",

		Glamour: "dark",
	}
}
