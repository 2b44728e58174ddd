package ui

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tabpager/internal/bridge"
	"tabpager/internal/config"
	"tabpager/internal/domain"
	"tabpager/internal/eventbus"
	"tabpager/internal/nav"
	"tabpager/internal/session"
	"tabpager/internal/source"
	"tabpager/internal/window"
)

const animInterval = 30 * time.Millisecond

// Model is the Bubble Tea host. It owns the two views (menu strip and
// pager), feeds user input through the bridge, and steps the synthetic
// scroll animation for menu-driven transitions. Everything runs on the
// program's update loop, which is the single coordination context the
// navigation service requires.
type Model struct {
	cfg     *config.Config
	bus     eventbus.EventBus
	nav     *nav.Service
	win     *window.Service
	bridge  *bridge.Bridge
	store   *session.Store
	source  string
	styles  *Styles
	strip   *MenuStrip
	pager   *Pager
	palette *Palette

	width   int
	height  int
	drag    float64
	status  string
	isError bool
}

// NewModel creates the host model and attaches its views to the bridge.
func NewModel(cfg *config.Config, bus eventbus.EventBus, navSvc *nav.Service, winSvc *window.Service, br *bridge.Bridge, store *session.Store, sourceName string) *Model {
	styles := NewStyles()
	m := &Model{
		cfg:     cfg,
		bus:     bus,
		nav:     navSvc,
		win:     winSvc,
		bridge:  br,
		store:   store,
		source:  sourceName,
		styles:  styles,
		strip:   NewMenuStrip(styles, cfg.UI.TabWidth, cfg.UI.IndicatorGlyph),
		pager:   NewPager(styles),
		palette: NewPalette(styles),
	}
	br.Attach(m.strip, m.pager)
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.strip.SetWidth(msg.Width)
		contentHeight := msg.Height - 7
		if contentHeight < 3 {
			contentHeight = 3
		}
		m.pager.SetSize(msg.Width-4, contentHeight)
		return m, nil

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case animTickMsg:
		return m, m.stepAnimation()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.palette.Active() {
		chosen, cmd := m.palette.Update(msg)
		if !chosen.Zero() {
			m.bridge.UserSelectedTab(chosen)
			return m, m.animCmd()
		}
		return m, cmd
	}

	switch key := msg.String(); key {
	case "ctrl+c", "q":
		m.persistSelection()
		return m, tea.Quit

	case "left", "right":
		m.selectNeighbor(key == "right")
		return m, m.animCmd()

	case "h":
		m.dragBy(-m.cfg.UI.DragStep)
		return m, nil
	case "l":
		m.dragBy(m.cfg.UI.DragStep)
		return m, nil

	case "enter", " ":
		if m.drag != 0 || m.nav.State().Kind == nav.KindScrolling {
			m.bridge.ContentDragSettled()
			m.drag = 0
		}
		return m, nil

	case "esc":
		if m.nav.State().Kind == nav.KindScrolling {
			m.bridge.ContentDragProgressed(0)
			m.bridge.ContentDragSettled()
			m.drag = 0
		}
		return m, nil

	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n, _ := strconv.Atoi(key)
		items := m.allItems()
		if n <= len(items) {
			m.bridge.UserSelectedTab(items[n-1])
			return m, m.animCmd()
		}
		return m, nil

	case "/":
		return m, m.palette.Open(m.allItems())

	case "r":
		m.nav.ReloadMenu(domain.Item{})
		m.drag = 0
		m.setStatus("menu reloaded", false)
		return m, nil
	case "R":
		m.nav.ReloadData(domain.Item{})
		m.drag = 0
		m.setStatus("data reloaded", false)
		return m, nil

	case "x":
		m.nav.RemoveAll()
		m.drag = 0
		m.setStatus("cleared", false)
		return m, nil

	case "[":
		offset := m.strip.Scroll(-1, m.win.Len())
		m.bridge.MenuStripScrolled(float64(offset))
		return m, nil
	case "]":
		offset := m.strip.Scroll(1, m.win.Len())
		m.bridge.MenuStripScrolled(float64(offset))
		return m, nil

	case "up", "k":
		m.pager.ScrollUp(1)
		return m, nil
	case "down", "j":
		m.pager.ScrollDown(1)
		return m, nil
	}
	return m, nil
}

// selectNeighbor starts an animated transition to the adjacent tab.
func (m *Model) selectNeighbor(forward bool) {
	sel, ok := m.nav.Selected()
	if !ok {
		return
	}
	dir := domain.DirectionReverse
	if forward {
		dir = domain.DirectionForward
	}
	next, ok := m.win.Neighbor(sel, dir)
	if !ok {
		m.setStatus("at the edge", false)
		return
	}
	m.bridge.UserSelectedTab(next)
}

// dragBy accumulates a simulated content drag.
func (m *Model) dragBy(delta float64) {
	if m.nav.State().Kind == nav.KindEmpty {
		return
	}
	m.drag = math.Max(-1, math.Min(1, m.drag+delta))
	m.bridge.ContentDragProgressed(m.drag)
	if m.nav.State().Kind != nav.KindScrolling {
		// The machine settled or ignored it; do not accumulate stale drag.
		m.drag = 0
	}
}

// stepAnimation feeds one synthesized progress sample into the machine
// and advances the pager one frame.
func (m *Model) stepAnimation() tea.Cmd {
	if st := m.nav.State(); st.Kind == nav.KindScrolling && st.Trigger == domain.TriggerMenu {
		frac := m.pager.AnimProgress()
		if st.Direction == domain.DirectionReverse {
			frac = -frac
		}
		m.bridge.ContentDragProgressed(frac)
	}
	if done := m.pager.Step(); done != nil {
		done()
	}
	return m.animCmd()
}

func (m *Model) animCmd() tea.Cmd {
	if !m.pager.Animating() {
		return nil
	}
	return tea.Tick(animInterval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch ev := event.(type) {
	case eventbus.SelectionChangedEvent:
		m.persistSelection()
		m.setStatus("selected "+ev.Current.Title, false)
	case eventbus.ErrorEvent:
		slog.Error("navigation error", "message", ev.Message, "error", ev.Err)
		m.setStatus(ev.Message, true)
	case eventbus.WindowReloadedEvent:
		m.setStatus("reloaded around "+ev.Anchor.Title, false)
	}
}

func (m *Model) persistSelection() {
	sel, ok := m.nav.Selected()
	if !ok {
		return
	}
	if err := m.store.SaveSelection(m.source, sel.ID); err != nil {
		slog.Warn("failed to persist selection", "error", err)
	}
}

// allItems returns every item when the source is enumerable, else just
// the materialized window.
func (m *Model) allItems() []domain.Item {
	if fa, ok := m.win.Adapter().(source.FiniteAdapter); ok {
		return fa.AllItems()
	}
	return m.win.Items()
}

func (m *Model) setStatus(text string, isError bool) {
	m.status = text
	m.isError = isError
}

func (m *Model) View() string {
	title := m.styles.Title.Render("tabpager")

	sel, _ := m.nav.Selected()
	strip := m.strip.Render(m.win.Items(), sel)

	body := m.pager.View()
	if m.palette.Active() {
		body = m.palette.View()
	}

	status := m.statusLine()
	help := m.styles.Help.Render("←/→ switch · h/l drag · enter settle · esc cancel · / jump · r/R reload · x clear · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, strip, body, status, help)
}

func (m *Model) statusLine() string {
	st := m.nav.State()
	var state string
	switch st.Kind {
	case nav.KindEmpty:
		state = "empty"
	case nav.KindSelected:
		state = "on " + st.Selected.Title
	case nav.KindScrolling:
		target := "edge"
		if up, ok := st.Upcoming(); ok {
			target = up.Title
		}
		state = fmt.Sprintf("%s → %s (%.0f%%)", st.From.Title, target, math.Abs(st.Progress)*100)
	}

	line := state
	if m.status != "" {
		line = state + " · " + m.status
	}
	if m.isError {
		return m.styles.StatusError.Render(line)
	}
	return m.styles.Status.Render(line)
}
