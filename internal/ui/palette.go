package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"tabpager/internal/domain"
)

const paletteMaxRows = 8

// Palette is the fuzzy tab-jump overlay: type a few letters, pick a
// tab, jump. Only usable when the full item list is enumerable.
type Palette struct {
	styles *Styles
	input  textinput.Model

	items   []domain.Item
	matches []domain.Item
	cursor  int
	active  bool
}

func NewPalette(styles *Styles) *Palette {
	ti := textinput.New()
	ti.Placeholder = "jump to tab"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	return &Palette{
		styles: styles,
		input:  ti,
	}
}

func (p *Palette) Active() bool {
	return p.active
}

// Open shows the palette over the given items.
func (p *Palette) Open(items []domain.Item) tea.Cmd {
	p.items = items
	p.matches = items
	p.cursor = 0
	p.active = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) Close() {
	p.active = false
	p.input.Blur()
}

// Update handles one key press while the palette is open. The returned
// item is non-zero when the user confirmed a jump.
func (p *Palette) Update(msg tea.KeyMsg) (domain.Item, tea.Cmd) {
	switch msg.String() {
	case "esc":
		p.Close()
		return domain.Item{}, nil
	case "enter":
		if len(p.matches) == 0 {
			p.Close()
			return domain.Item{}, nil
		}
		chosen := p.matches[p.cursor]
		p.Close()
		return chosen, nil
	case "up", "ctrl+k":
		if p.cursor > 0 {
			p.cursor--
		}
		return domain.Item{}, nil
	case "down", "ctrl+j":
		if p.cursor < len(p.matches)-1 {
			p.cursor++
		}
		return domain.Item{}, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.filter()
	return domain.Item{}, cmd
}

// filter reranks items against the query.
func (p *Palette) filter() {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		p.matches = p.items
		p.cursor = 0
		return
	}

	titles := make([]string, len(p.items))
	for i, it := range p.items {
		titles[i] = it.Title
	}
	ranks := fuzzy.RankFindFold(query, titles)
	sort.Sort(ranks)

	matches := make([]domain.Item, 0, len(ranks))
	for _, r := range ranks {
		matches = append(matches, p.items[r.OriginalIndex])
	}
	p.matches = matches
	p.cursor = 0
}

func (p *Palette) View() string {
	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("\n")

	shown := p.matches
	if len(shown) > paletteMaxRows {
		shown = shown[:paletteMaxRows]
	}
	for i, it := range shown {
		line := it.Title
		if i == p.cursor {
			line = p.styles.PaletteSel.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(p.matches) > paletteMaxRows {
		b.WriteString(p.styles.Dim.Render(fmt.Sprintf("  …%d more", len(p.matches)-paletteMaxRows)))
	}
	return p.styles.Palette.Render(b.String())
}
