package ui

import (
	"fmt"
	"strings"

	"github.com/five82/quikdocs/internal/controller"
)

// renderHeader renders the top bar: logo, header links and theme indicator.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	title := m.cat.Title
	if title == "" {
		title = "Quik CSS"
	}
	left := bg.Spaces(1) + bg.Render(title, styles.Logo) + bg.Spaces(1) + bg.Render("docs", styles.FaintText)

	var links []string
	for _, l := range m.cat.HeaderLinks {
		links = append(links, bg.Render(l.Label, styles.MutedText))
	}
	right := m.themeBadge()
	if len(links) > 0 && m.width >= LayoutCompactWidth {
		right = bg.Join(links, "  ") + bg.Spaces(2) + right
	}
	return bg.Spread(left, right+bg.Spaces(1), m.width)
}

func (m Model) themeBadge() string {
	icon := "☀"
	if m.ctrl.Theme().IsDark() {
		icon = "☾"
	}
	return m.theme.Styles().Badge.Render(icon + " " + m.ctrl.Theme().String())
}

// themeSummary describes the current theme and who chose it.
func (m Model) themeSummary() string {
	summary := fmt.Sprintf("%s (%s)", m.ctrl.Theme(), originLabel(m.ctrl.Origin()))
	if m.ctrl.FollowSystem() {
		summary += ", following OS"
	}
	if m.snapshot.HasPreference {
		summary += fmt.Sprintf(", OS prefers %s via %s",
			controller.FromDark(m.snapshot.Preference.PrefersDark), m.snapshot.Preference.Source)
	} else if m.snapshot.LastError != nil {
		summary += ", OS preference unknown"
	}
	return summary
}

func originLabel(o controller.Origin) string {
	switch o {
	case controller.OriginUser:
		return "your choice"
	case controller.OriginSystem:
		return "from OS"
	default:
		return "default"
	}
}

// renderFooter renders the status line and the page footer.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	// Line 1: active section, permalink, back-to-top
	var left string
	if m.flashActive() {
		left = bg.Spaces(1) + bg.Render(m.flash, styles.WarningText)
	} else if id := m.ctrl.ActiveSection(); id != "" {
		left = bg.Spaces(1) +
			bg.Render("§ "+m.cat.Label(id), styles.Text.Bold(true)) +
			bg.Spaces(2) +
			bg.Render(m.cfg.Permalink(id), styles.FaintText)
	} else {
		left = bg.Spaces(1) + bg.Render(m.cat.Title, styles.MutedText)
	}

	right := bg.Render(fmt.Sprintf("%3.0f%%", m.viewport.ScrollPercent()*100), styles.FaintText)
	if m.ctrl.ShowBackToTop() {
		right = m.theme.Styles().Badge.Render("▲ top (g)") + bg.Spaces(1) + right
	}
	status := bg.Spread(left, right+bg.Spaces(1), m.width)

	// Line 2: copyright and footer links
	copyright := bg.Spaces(1) + bg.Render(m.cat.Footer.Text, styles.FaintText)
	var links []string
	for _, l := range m.cat.Footer.Links {
		links = append(links, bg.Render(l.Label, styles.MutedText))
	}
	hint := bg.Render("h help", styles.FaintText)
	if len(links) > 0 && m.width >= LayoutCompactWidth {
		hint = bg.Join(links, " · ") + bg.Spaces(2) + hint
	}
	page := bg.Spread(copyright, hint+bg.Spaces(1), m.width)

	return strings.Join([]string{status, page}, "\n")
}
