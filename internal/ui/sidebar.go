package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quikdocs/internal/catalog"
)

// sidebarRow is one rendered sidebar line: a group title or a nav item.
type sidebarRow struct {
	group    bool
	label    string
	target   string
	dangling bool
}

// sidebar holds navigation state. The cursor indexes the selectable rows of
// the current filter, not every row.
type sidebar struct {
	groups    []catalog.NavGroup
	dangling  map[string]bool
	filter    textinput.Model
	filtering bool
	cursor    int
}

func newSidebar(cat *catalog.Catalog) sidebar {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "filter"
	ti.CharLimit = 32

	dangling := make(map[string]bool)
	for _, id := range cat.DanglingTargets() {
		dangling[id] = true
	}
	return sidebar{
		groups:   cat.Nav,
		dangling: dangling,
		filter:   ti,
	}
}

func (s sidebar) query() string {
	return strings.ToLower(strings.TrimSpace(s.filter.Value()))
}

// rows returns the visible rows for the current filter. A group title that
// matches keeps all of its items.
func (s sidebar) rows() []sidebarRow {
	q := s.query()
	var out []sidebarRow
	for _, g := range s.groups {
		groupMatch := q == "" || strings.Contains(strings.ToLower(g.Title), q)
		var items []sidebarRow
		for _, item := range g.Items {
			if !groupMatch &&
				!strings.Contains(strings.ToLower(item.Label), q) &&
				!strings.Contains(item.Target, q) {
				continue
			}
			items = append(items, sidebarRow{
				label:    item.Label,
				target:   item.Target,
				dangling: s.dangling[item.Target],
			})
		}
		if len(items) == 0 {
			continue
		}
		if g.Title != "" {
			out = append(out, sidebarRow{group: true, label: g.Title})
		}
		out = append(out, items...)
	}
	return out
}

// items returns the selectable rows.
func (s sidebar) items() []sidebarRow {
	var out []sidebarRow
	for _, r := range s.rows() {
		if !r.group {
			out = append(out, r)
		}
	}
	return out
}

func (s sidebar) selected() (sidebarRow, bool) {
	items := s.items()
	if s.cursor < 0 || s.cursor >= len(items) {
		return sidebarRow{}, false
	}
	return items[s.cursor], true
}

func (s *sidebar) move(delta int) {
	s.cursor += delta
	s.clamp()
}

func (s *sidebar) clamp() {
	n := len(s.items())
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *sidebar) startFilter() {
	s.filtering = true
	s.filter.Focus()
}

func (s *sidebar) stopFilter() {
	s.filtering = false
	s.filter.Blur()
	s.clamp()
}

func (s *sidebar) clearFilter() {
	s.filter.SetValue("")
	s.stopFilter()
}

// navTarget maps the active section to the sidebar item that should be
// highlighted: the section itself when it has an item, else the smallest
// enclosing anchor that has one.
func navTarget(cat *catalog.Catalog, active string) string {
	if active == "" {
		return ""
	}
	targets := make(map[string]bool)
	for _, g := range cat.Nav {
		for _, item := range g.Items {
			targets[item.Target] = true
		}
	}
	if targets[active] {
		return active
	}
	inner, ok := cat.Anchor(active)
	if !ok {
		return ""
	}
	best, span := "", -1
	for _, a := range cat.Anchors {
		if !targets[a.ID] || a.ID == active {
			continue
		}
		if a.Start <= inner.Start && inner.End <= a.End && (span < 0 || a.End-a.Start < span) {
			best, span = a.ID, a.End-a.Start
		}
	}
	return best
}

// renderSidebar renders the navigation column at the given height.
func (m Model) renderSidebar(height int) string {
	width := SidebarWidth - 1
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	focused := m.focus == focusSidebar
	active := navTarget(m.cat, m.ctrl.ActiveSection())

	var lines []string
	if m.sidebar.filtering || m.sidebar.query() != "" {
		lines = append(lines, bg.FillLine(m.sidebar.filter.View(), width))
	}

	rows := m.sidebar.rows()
	cursorLine := -1
	item := 0
	var body []string
	for _, r := range rows {
		if r.group {
			if len(body) > 0 {
				body = append(body, bg.Spaces(width))
			}
			body = append(body, bg.FillLine(bg.Render(" "+r.label, styles.MutedText.Bold(true)), width))
			continue
		}

		label := truncate(r.label, width-4)
		var line string
		switch {
		case focused && item == m.sidebar.cursor:
			cursorLine = len(body)
			line = m.theme.Styles().Selected.Width(width).Render(" › " + label)
		case r.target != "" && r.target == active:
			line = bg.FillLine(bg.Render(" ▸ "+label, styles.AccentText.Bold(true)), width)
		case r.dangling:
			line = bg.FillLine(bg.Render("   "+label, styles.FaintText.Strikethrough(true)), width)
		default:
			line = bg.FillLine(bg.Render("   "+label, styles.Text), width)
		}
		body = append(body, line)
		item++
	}
	if len(rows) == 0 {
		body = append(body, bg.FillLine(bg.Render(" no matches", styles.FaintText), width))
	}

	avail := height - len(lines)
	if avail < 1 {
		avail = 1
	}
	body = window(body, cursorLine, avail)
	lines = append(lines, body...)

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Width(width).
		Height(height).
		MaxHeight(height).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(m.sidebarBorder()).
		BorderBackground(lipgloss.Color(m.theme.Surface)).
		Render(strings.Join(lines, "\n"))
}

func (m Model) sidebarBorder() lipgloss.Color {
	if m.focus == focusSidebar {
		return lipgloss.Color(m.theme.BorderFocus)
	}
	return lipgloss.Color(m.theme.Border)
}

// window returns at most n lines, scrolled so that line focus stays visible.
func window(lines []string, focus, n int) []string {
	if len(lines) <= n {
		return lines
	}
	start := 0
	if focus >= n {
		start = focus - n + 1
	}
	if start+n > len(lines) {
		start = len(lines) - n
	}
	return lines[start : start+n]
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
