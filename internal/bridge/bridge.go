package bridge

import (
	"log/slog"
	"math"

	"tabpager/internal/domain"
	"tabpager/internal/nav"
	"tabpager/internal/window"
)

// Bridge translates discrete events from the two host views into
// state-machine inputs, and state-machine outputs back into idempotent
// view commands. It is the only component that talks to both sides.
type Bridge struct {
	nav *nav.Service
	win *window.Service

	menu    MenuView
	content ContentView

	// last emitted content command, for redundant-command suppression.
	lastItem   domain.Item
	lastHandle domain.ContentHandle
	haveLast   bool
}

// New creates a bridge and wires itself into the navigation service's
// command outputs.
func New(navSvc *nav.Service, winSvc *window.Service) *Bridge {
	b := &Bridge{
		nav: navSvc,
		win: winSvc,
	}
	navSvc.SetNavigateFunction(b.navigate)
	navSvc.SetIndicatorFunction(b.indicator)
	navSvc.SetClearFunction(b.clear)
	return b
}

// Attach connects the host views. Commands issued before Attach are
// dropped; the state machine re-emits on reconciliation, so a late
// host catches up on the next reload or selection.
func (b *Bridge) Attach(menu MenuView, content ContentView) {
	b.menu = menu
	b.content = content
}

// Host view inputs, forwarded to the state machine. All of these must
// be called from the single coordination context.

// UserSelectedTab reports a discrete tab tap on the menu strip.
func (b *Bridge) UserSelectedTab(item domain.Item) {
	b.nav.Select(item, true)
}

// ContentDragProgressed reports a signed drag fraction from the
// content view.
func (b *Bridge) ContentDragProgressed(fraction float64) {
	b.nav.ContentScrolled(fraction)
}

// ContentDragSettled reports that the content view's settle animation
// finished.
func (b *Bridge) ContentDragSettled() {
	b.nav.ContentFinishedScrolling()
}

// MenuStripScrolled reports a raw menu scroll offset change.
func (b *Bridge) MenuStripScrolled(offset float64) {
	b.nav.MenuScrolled(offset)
}

// State machine outputs, translated into view commands.

func (b *Bridge) navigate(item domain.Item, animated bool, transitionID string) {
	handle := b.resolveContent(item)

	// Re-issuing "scroll to X" while already at X is a no-op, unless a
	// reload swapped the content handle underneath the same item.
	if transitionID == "" && b.haveLast && b.lastItem == item && b.lastHandle == handle {
		return
	}

	if b.content == nil {
		slog.Debug("no content view attached, dropping navigate", "item", item.ID)
		return
	}
	b.lastItem = item
	b.lastHandle = handle
	b.haveLast = true
	b.content.NavigateTo(handle, animated, func() {
		// Stale completions for superseded transitions are filtered
		// against the active transition identity inside the machine.
		b.nav.CompleteTransition(transitionID)
	})
}

func (b *Bridge) indicator(from, to domain.Item, progress float64) {
	if b.menu == nil {
		return
	}
	b.menu.SetIndicator(from, to, progress)

	target := from
	if !to.Zero() && math.Abs(progress) >= 0.5 {
		target = to
	}
	b.menu.ScrollToItem(target)
}

func (b *Bridge) clear() {
	b.haveLast = false
	b.lastItem = domain.Item{}
	b.lastHandle = domain.ContentHandle{}
	if b.content != nil {
		b.content.RemoveAllPages()
	}
}

func (b *Bridge) resolveContent(item domain.Item) domain.ContentHandle {
	if entry, ok := b.win.Entry(item); ok {
		return entry.Content
	}
	// Not materialized: resolve directly, the window will cache it when
	// the item enters the window.
	return b.win.Adapter().ResolveContent(item)
}
