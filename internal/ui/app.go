package ui

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/quikdocs/internal/catalog"
	"github.com/five82/quikdocs/internal/config"
	"github.com/five82/quikdocs/internal/controller"
	"github.com/five82/quikdocs/internal/state"
)

// focus is the pane receiving navigation keys.
type focus int

const (
	focusContent focus = iota
	focusSidebar
)

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *controller.Controller
	Catalog    *catalog.Catalog
	Store      *state.Store
	Config     *config.Config
	PollTick   time.Duration

	// Now overrides the clock used for scroll sampling.
	Now func() time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx           context.Context
	ctrl          *controller.Controller
	cat           *catalog.Catalog
	store         *state.Store
	cfg           config.Config
	pollTick      time.Duration
	frameInterval time.Duration
	cellHeight    int
	now           func() time.Time
	keys          keyMap

	// Theme state
	sink      *themeSink
	seenApply int
	theme     Theme

	// UI state
	width    int
	height   int
	ready    bool
	focus    focus
	showHelp bool

	// Document state
	doc      document
	viewport viewport.Model
	sidebar  sidebar

	// Scroll state
	anim           *controller.Animation
	animID         int
	flushScheduled bool

	// OS preference state
	snapshot state.Snapshot
	snapGen  uint64

	flash      string
	flashUntil time.Time
}

// New creates a new Bubble Tea model and starts the controller against the
// model's theme sink.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	pollTick := opts.PollTick
	if pollTick <= 0 {
		pollTick = DefaultUIInterval
	}
	frameInterval := cfg.ScrollFrameInterval
	if frameInterval <= 0 {
		frameInterval = DefaultFrameInterval
	}
	cellHeight := cfg.CellHeight
	if cellHeight <= 0 {
		cellHeight = 16
	}

	cat := opts.Catalog
	if cat == nil {
		var err error
		if cat, err = catalog.Default(); err != nil {
			log.Printf("load catalog: %v", err)
			cat = &catalog.Catalog{}
		}
	}

	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = controller.New(controller.Options{
			FollowSystem:       cfg.FollowSystemPreference,
			BackToTopThreshold: cfg.BackToTopThreshold,
			ProbeLine:          cfg.ProbeLine,
			ExactThresholds:    true,
			SampleEvery:        cfg.ScrollSample,
			ScrollFrames:       cfg.ScrollFrames,
		})
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		ctx:           ctx,
		ctrl:          ctrl,
		cat:           cat,
		store:         opts.Store,
		cfg:           cfg,
		pollTick:      pollTick,
		frameInterval: frameInterval,
		cellHeight:    cellHeight,
		now:           now,
		keys:          DefaultKeyMap(),
		sink:          &themeSink{},
		sidebar:       newSidebar(cat),
		viewport:      viewport.New(0, 0),
	}

	var signal controller.SystemSignal
	if m.store != nil {
		m.snapshot = m.store.Snapshot()
		m.snapGen = m.snapshot.Generation
		signal = controller.SystemSignal{
			Dark:  m.snapshot.PrefersDark(),
			Known: m.snapshot.HasPreference,
		}
	}
	ctrl.Start(m.sink, signal)
	m.syncTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}
		return m.scrollContent(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		cmd := m.layout()
		return m, cmd

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		cmd := m.applySnapshot(state.Snapshot(msg))
		return m, cmd

	case frameMsg:
		return m.handleFrame(msg)

	case flushMsg:
		m.flushScheduled = false
		m.ctrl.Flush(m.now())
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderBody(),
		m.renderFooter(),
	)
}

func (m Model) renderBody() string {
	width, height := m.contentSize()
	content := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Background)).
		Width(width).
		Height(height).
		MaxHeight(height).
		Render(m.viewport.View())
	if !m.sidebarVisible() {
		return content
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(height), content)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.sidebar.filtering {
		return m.handleFilterKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.ToggleTheme):
		m.ctrl.Toggle()
		cmd := m.syncTheme()
		return m, cmd

	case key.Matches(msg, m.keys.Tab):
		m.toggleFocus()
		return m, nil

	case key.Matches(msg, m.keys.Top):
		cmd := m.startScrollToTop()
		return m, cmd

	case key.Matches(msg, m.keys.Bottom):
		m.viewport.GotoBottom()
		cmd := m.reportScroll()
		return m, cmd

	case key.Matches(msg, m.keys.Filter):
		if !m.sidebarVisible() {
			return m, nil
		}
		m.focus = focusSidebar
		m.sidebar.startFilter()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Escape):
		m.sidebar.clearFilter()
		return m, nil
	}

	if m.focus == focusSidebar && m.sidebarVisible() {
		return m.handleSidebarKey(msg)
	}
	return m.scrollContent(msg)
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.sidebar.clearFilter()
		return m, nil
	case tea.KeyEnter:
		m.sidebar.stopFilter()
		m.sidebar.cursor = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.sidebar.filter, cmd = m.sidebar.filter.Update(msg)
	m.sidebar.cursor = 0
	return m, cmd
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.sidebar.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.sidebar.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Jump):
		row, ok := m.sidebar.selected()
		if !ok {
			return m, nil
		}
		cmd := m.jumpTo(row.target)
		return m, cmd
	}
	return m.scrollContent(msg)
}

// scrollContent forwards keys and mouse events to the viewport and reports
// any resulting offset change to the controller.
func (m Model) scrollContent(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.viewport.YOffset
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	if m.viewport.YOffset != before {
		report := m.reportScroll()
		return m, tea.Batch(cmd, report)
	}
	return m, cmd
}

func (m *Model) toggleFocus() {
	if !m.sidebarVisible() || m.focus == focusSidebar {
		m.focus = focusContent
		return
	}
	m.focus = focusSidebar
	if target := navTarget(m.cat, m.ctrl.ActiveSection()); target != "" {
		for i, r := range m.sidebar.items() {
			if r.target == target {
				m.sidebar.cursor = i
				break
			}
		}
	}
}

// jumpTo scrolls so the anchor's first line is at the top of the viewport.
func (m *Model) jumpTo(target string) tea.Cmd {
	line, ok := m.doc.anchorLine(m.cat, target)
	if !ok {
		m.setFlash("No section for #" + target)
		return nil
	}
	m.viewport.SetYOffset(line)
	return m.reportScroll()
}

// reportScroll tells the controller about the current offset and schedules a
// flush when the section scan was deferred.
func (m *Model) reportScroll() tea.Cmd {
	deferred := m.ctrl.Scroll(m.viewport.YOffset*m.cellHeight, m.now())
	if deferred && !m.flushScheduled {
		m.flushScheduled = true
		return flushCmd(m.ctrl.SampleEvery())
	}
	return nil
}

// startScrollToTop begins the eased scroll animation. A newer animation
// replaces any running one.
func (m *Model) startScrollToTop() tea.Cmd {
	m.anim = m.ctrl.ScrollToTop()
	m.animID++
	return frameCmd(m.frameInterval, m.animID)
}

func (m Model) handleFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	if m.anim == nil || msg.id != m.animID {
		return m, nil
	}
	px, done := m.anim.Next()
	m.viewport.SetYOffset(rowsForPixels(px, m.cellHeight))
	cmd := m.reportScroll()
	if done {
		m.anim = nil
		return m, cmd
	}
	return m, tea.Batch(cmd, frameCmd(m.frameInterval, m.animID))
}

// syncTheme restyles the UI when the controller applied a new theme.
func (m *Model) syncTheme() tea.Cmd {
	t, n := m.sink.Current()
	if n == m.seenApply {
		return nil
	}
	m.seenApply = n
	m.theme = ThemeFor(t)
	if !m.ready {
		return nil
	}
	return m.layout()
}

// applySnapshot forwards a changed OS reading to the controller.
func (m *Model) applySnapshot(snap state.Snapshot) tea.Cmd {
	m.snapshot = snap
	if !snap.HasPreference || snap.Generation == m.snapGen {
		return nil
	}
	m.snapGen = snap.Generation
	if m.ctrl.SystemChanged(snap.Preference.PrefersDark) {
		return m.syncTheme()
	}
	return nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.ctx.Err() != nil {
		return m, tea.Quit
	}
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.flash != "" && !m.flashActive() {
		m.flash = ""
	}
	return m, tea.Batch(cmds...)
}

// layout sizes the viewport and re-renders the document when the wrap width
// or theme changed.
func (m *Model) layout() tea.Cmd {
	width, height := m.contentSize()
	m.viewport.Width = width
	m.viewport.Height = height

	wrap := min(width-2, MaxContentWidth)
	if wrap < 20 {
		wrap = 20
	}
	if m.doc.width == wrap && m.doc.theme == m.theme.Name && len(m.doc.lines) > 0 {
		m.viewport.SetYOffset(m.viewport.YOffset)
		return m.reportScroll()
	}

	doc, err := renderDocument(m.cat, m.theme, wrap)
	if err != nil {
		log.Printf("render catalog: %v", err)
		doc = plainDocument(m.cat, m.theme, wrap)
	}
	m.doc = doc
	offset := m.viewport.YOffset
	m.viewport.SetContent(doc.content())
	m.viewport.SetYOffset(offset)
	m.ctrl.RegisterSections(sectionsFor(m.cat, doc, m.cellHeight))
	return m.reportScroll()
}

func (m Model) sidebarVisible() bool {
	return m.width >= LayoutCompactWidth
}

func (m Model) contentSize() (int, int) {
	width := m.width
	if m.sidebarVisible() {
		width -= SidebarWidth
	}
	height := m.height - HeaderHeight - FooterHeight
	return max(width, 1), max(height, 1)
}

func (m *Model) setFlash(msg string) {
	m.flash = msg
	m.flashUntil = m.now().Add(FlashDuration)
}

func (m Model) flashActive() bool {
	return m.flash != "" && m.now().Before(m.flashUntil)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type frameMsg struct{ id int }

type flushMsg struct{}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func frameCmd(d time.Duration, id int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

func flushCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return flushMsg{}
	})
}

// Run starts the Bubble Tea program and blocks until it exits. Cancelling
// the context ends the program without an error.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	opts.Context = ctx

	m := New(opts)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	if err != nil && errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
