package ui

import (
	"github.com/charmbracelet/bubbles/viewport"

	"tabpager/internal/domain"
)

// animFrames is how many ticks a menu-driven page animation takes.
const animFrames = 8

// animation is one in-flight page move. done fires exactly once when
// the last frame lands.
type animation struct {
	target domain.ContentHandle
	frame  int
	done   func()
}

// Pager is the content half of the screen: one page of body text in a
// viewport. It implements bridge.ContentView; animated navigations are
// stepped by the host's tick loop rather than a background goroutine so
// every state mutation stays on the program's update path.
type Pager struct {
	viewport viewport.Model
	styles   *Styles

	current domain.ContentHandle
	anim    *animation
}

func NewPager(styles *Styles) *Pager {
	return &Pager{
		viewport: viewport.New(0, 0),
		styles:   styles,
	}
}

func (p *Pager) SetSize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = height
}

// NavigateTo moves the pager to a content page. Non-animated moves land
// immediately and complete synchronously; animated ones are queued for
// the tick loop. A new navigation replaces any in-flight animation
// without firing its completion, mirroring how a native pager abandons
// a superseded scroll.
func (p *Pager) NavigateTo(handle domain.ContentHandle, animated bool, done func()) {
	if !animated {
		p.anim = nil
		p.setContent(handle)
		if done != nil {
			done()
		}
		return
	}
	p.anim = &animation{target: handle, done: done}
}

// RemoveAllPages drops the current page and any in-flight animation.
func (p *Pager) RemoveAllPages() {
	p.anim = nil
	p.current = domain.ContentHandle{}
	p.viewport.SetContent("")
	p.viewport.GotoTop()
}

// Animating reports whether the tick loop should keep running.
func (p *Pager) Animating() bool {
	return p.anim != nil
}

// AnimProgress returns how far the in-flight animation has come, in
// [0,1].
func (p *Pager) AnimProgress() float64 {
	if p.anim == nil {
		return 0
	}
	return float64(p.anim.frame) / float64(animFrames)
}

// Step advances the animation one frame. On the final frame it lands
// the page and returns the completion callback for the host to invoke.
func (p *Pager) Step() func() {
	if p.anim == nil {
		return nil
	}
	p.anim.frame++
	if p.anim.frame < animFrames {
		return nil
	}
	done := p.anim.done
	p.setContent(p.anim.target)
	p.anim = nil
	return done
}

// Current returns the handle of the page on screen.
func (p *Pager) Current() domain.ContentHandle {
	return p.current
}

func (p *Pager) ScrollUp(lines int) {
	p.viewport.ScrollUp(lines)
}

func (p *Pager) ScrollDown(lines int) {
	p.viewport.ScrollDown(lines)
}

func (p *Pager) View() string {
	return p.styles.Content.Render(p.viewport.View())
}

func (p *Pager) setContent(handle domain.ContentHandle) {
	p.current = handle
	p.viewport.SetContent(handle.Body)
	p.viewport.GotoTop()
}
