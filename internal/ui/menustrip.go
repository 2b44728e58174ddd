package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tabpager/internal/domain"
)

// MenuStrip renders the horizontal tab row plus the selection indicator
// that tracks transition progress underneath it. It implements
// bridge.MenuView: the state machine drives it purely through
// ScrollToItem and SetIndicator.
type MenuStrip struct {
	styles   *Styles
	tabWidth int
	glyph    string
	width    int

	from     domain.Item
	to       domain.Item
	progress float64

	ensure domain.Item // item the indicator wants visible
	offset int         // first visible tab index
}

func NewMenuStrip(styles *Styles, tabWidth int, glyph string) *MenuStrip {
	if tabWidth < 4 {
		tabWidth = 4
	}
	if glyph == "" {
		glyph = "▔"
	}
	return &MenuStrip{
		styles:   styles,
		tabWidth: tabWidth,
		glyph:    glyph,
	}
}

func (m *MenuStrip) SetWidth(width int) {
	m.width = width
}

// ScrollToItem asks the strip to bring a tab into view. Repeating the
// same target is a no-op, so the bridge can issue it freely.
func (m *MenuStrip) ScrollToItem(item domain.Item) {
	m.ensure = item
}

// SetIndicator positions the selection indicator. A zero to with
// nonzero progress is a boundary rubber-band.
func (m *MenuStrip) SetIndicator(from, to domain.Item, progress float64) {
	m.from = from
	m.to = to
	m.progress = progress
}

// Scroll shifts the visible tab range manually and returns the new
// offset, which the host reports as a raw strip scroll.
func (m *MenuStrip) Scroll(delta, total int) int {
	m.offset += delta
	max := total - m.visibleCount()
	if m.offset > max {
		m.offset = max
	}
	if m.offset < 0 {
		m.offset = 0
	}
	// Manual scrolling overrides the pending ensure-visible target.
	m.ensure = domain.Item{}
	return m.offset
}

// Render draws the tab row and indicator row for the given window
// items.
func (m *MenuStrip) Render(items []domain.Item, selected domain.Item) string {
	if len(items) == 0 {
		return m.styles.Dim.Render("no tabs") + "\n"
	}

	m.ensureVisible(items)

	visible := m.visibleCount()
	end := m.offset + visible
	if end > len(items) {
		end = len(items)
	}

	active := selected
	if !m.from.Zero() && !m.to.Zero() {
		active = m.from
	}

	var tabs []string
	for _, it := range items[m.offset:end] {
		style := m.styles.Tab
		switch it {
		case active:
			style = m.styles.TabActive
		case m.to:
			style = m.styles.TabUpcoming
		}
		tabs = append(tabs, style.Width(m.tabWidth).Render(truncate(it.Title, m.tabWidth-2)))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return row + "\n" + m.indicatorRow(items, selected)
}

// indicatorRow places the indicator bar at a fractional position
// between the from and to tabs. Before the first SetIndicator the bar
// sits under the settled selection.
func (m *MenuStrip) indicatorRow(items []domain.Item, selected domain.Item) string {
	fromIdx := indexOf(items, m.from)
	if fromIdx < 0 {
		fromIdx = indexOf(items, selected)
	}
	if fromIdx < 0 {
		fromIdx = indexOf(items, m.ensure)
	}
	if fromIdx < 0 {
		return ""
	}

	pos := float64(fromIdx)
	if toIdx := indexOf(items, m.to); toIdx >= 0 {
		pos += math.Abs(m.progress) * float64(toIdx-fromIdx)
	} else if m.to.Zero() && m.progress != 0 {
		// Rubber-band: nudge the bar past the edge without a target.
		pos += m.progress * 0.3
	}

	x := int(math.Round((pos - float64(m.offset)) * float64(m.tabWidth)))
	if x < 0 {
		x = 0
	}
	bar := strings.Repeat(m.glyph, m.tabWidth)
	return strings.Repeat(" ", x) + m.styles.Indicator.Render(bar)
}

func (m *MenuStrip) ensureVisible(items []domain.Item) {
	idx := indexOf(items, m.ensure)
	if idx < 0 {
		return
	}
	visible := m.visibleCount()
	if idx < m.offset {
		m.offset = idx
	} else if idx >= m.offset+visible {
		m.offset = idx - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *MenuStrip) visibleCount() int {
	if m.width <= 0 {
		return 5
	}
	n := m.width / m.tabWidth
	if n < 1 {
		n = 1
	}
	return n
}

func indexOf(items []domain.Item, item domain.Item) int {
	if item.Zero() {
		return -1
	}
	for i, it := range items {
		if it == item {
			return i
		}
	}
	return -1
}

func truncate(s string, width int) string {
	if width < 1 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
