package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabpager/internal/domain"
	"tabpager/internal/nav"
	"tabpager/internal/source"
	"tabpager/internal/window"
)

func item(id string) domain.Item {
	return domain.Item{ID: id, Title: id}
}

type fakeMenu struct {
	scrolledTo []domain.Item
	indicators []float64
}

func (f *fakeMenu) ScrollToItem(item domain.Item) {
	f.scrolledTo = append(f.scrolledTo, item)
}

func (f *fakeMenu) SetIndicator(_, _ domain.Item, progress float64) {
	f.indicators = append(f.indicators, progress)
}

type contentCall struct {
	handle   domain.ContentHandle
	animated bool
	done     func()
}

type fakeContent struct {
	calls   []contentCall
	cleared int
}

func (f *fakeContent) NavigateTo(handle domain.ContentHandle, animated bool, done func()) {
	f.calls = append(f.calls, contentCall{handle: handle, animated: animated, done: done})
}

func (f *fakeContent) RemoveAllPages() {
	f.cleared++
}

// harness wires a bridge over a finite source whose page bodies the test
// can mutate to simulate upstream data changes.
type harness struct {
	bridge  *Bridge
	nav     *nav.Service
	adapter *source.Finite
	menu    *fakeMenu
	content *fakeContent
	bodies  map[string]string
}

func newHarness(t *testing.T, ids ...string) *harness {
	t.Helper()

	h := &harness{
		menu:    &fakeMenu{},
		content: &fakeContent{},
		bodies:  make(map[string]string),
	}

	items := make([]domain.Item, len(ids))
	for i, id := range ids {
		items[i] = item(id)
		h.bodies[id] = "page " + id
	}
	contentFn := func(i domain.Item) domain.ContentHandle {
		return domain.ContentHandle{ID: i.ID, Body: h.bodies[i.ID]}
	}
	cellFn := func(i domain.Item) domain.CellDescriptor {
		return domain.CellDescriptor{ReuseID: "tab", Title: i.Title}
	}

	h.adapter = source.NewFinite(items, contentFn, cellFn)
	win := window.NewService(h.adapter, nil)
	h.nav = nav.NewService(win, nil, nav.DefaultOptions())
	h.bridge = New(h.nav, win)
	h.bridge.Attach(h.menu, h.content)
	return h
}

func (h *harness) lastCall(t *testing.T) contentCall {
	t.Helper()
	require.NotEmpty(t, h.content.calls)
	return h.content.calls[len(h.content.calls)-1]
}

func Test_InitialSelectionNavigatesOnce(t *testing.T) {
	h := newHarness(t, "a", "b")
	require.NoError(t, h.nav.SelectInitial(item("a")))

	require.Len(t, h.content.calls, 1)
	call := h.lastCall(t)
	assert.Equal(t, "page a", call.handle.Body)
	assert.False(t, call.animated)
}

func Test_TabTapCompletesThroughDoneCallback(t *testing.T) {
	h := newHarness(t, "a", "b", "c")
	require.NoError(t, h.nav.SelectInitial(item("a")))

	h.bridge.UserSelectedTab(item("c"))
	call := h.lastCall(t)
	assert.True(t, call.animated)
	assert.Equal(t, "page c", call.handle.Body)
	require.Equal(t, nav.KindScrolling, h.nav.State().Kind)

	call.done()
	sel, ok := h.nav.Selected()
	require.True(t, ok)
	assert.Equal(t, item("c"), sel)
}

// A superseded transition's done callback fires late and must not
// disturb the replacement.
func Test_StaleDoneCallbackIsHarmless(t *testing.T) {
	h := newHarness(t, "a", "b", "c")
	require.NoError(t, h.nav.SelectInitial(item("a")))

	h.bridge.UserSelectedTab(item("c"))
	stale := h.lastCall(t)

	h.bridge.UserSelectedTab(item("b"))
	active := h.lastCall(t)

	stale.done()
	assert.Equal(t, nav.KindScrolling, h.nav.State().Kind, "stale completion must not settle the active transition")

	active.done()
	sel, ok := h.nav.Selected()
	require.True(t, ok)
	assert.Equal(t, item("b"), sel)
}

// Re-selecting the settled item and menu-only reloads repeat the same
// command; the bridge issues it to the view only once.
func Test_RedundantCommandsAreSuppressed(t *testing.T) {
	h := newHarness(t, "a", "b")
	require.NoError(t, h.nav.SelectInitial(item("a")))
	require.Len(t, h.content.calls, 1)

	h.bridge.UserSelectedTab(item("a"))
	assert.Len(t, h.content.calls, 1)

	h.nav.ReloadMenu(domain.Item{})
	assert.Len(t, h.content.calls, 1)
}

// A data reload hands out a fresh handle for the same item, which must
// defeat the suppression.
func Test_DataReloadReissuesContent(t *testing.T) {
	h := newHarness(t, "a", "b")
	require.NoError(t, h.nav.SelectInitial(item("a")))
	require.Len(t, h.content.calls, 1)

	h.bodies["a"] = "page a, edition 2"
	h.nav.ReloadData(domain.Item{})

	require.Len(t, h.content.calls, 2)
	assert.Equal(t, "page a, edition 2", h.lastCall(t).handle.Body)
}

func Test_DragRoutesIndicatorAndSettle(t *testing.T) {
	h := newHarness(t, "a", "b", "c")
	require.NoError(t, h.nav.SelectInitial(item("a")))

	h.bridge.ContentDragProgressed(0.3)
	require.NotEmpty(t, h.menu.indicators)
	assert.InDelta(t, 0.3, h.menu.indicators[len(h.menu.indicators)-1], 1e-9)
	// Below half-way the indicator stays anchored on the origin tab.
	assert.Equal(t, item("a"), h.menu.scrolledTo[len(h.menu.scrolledTo)-1])

	h.bridge.ContentDragProgressed(0.7)
	assert.Equal(t, item("b"), h.menu.scrolledTo[len(h.menu.scrolledTo)-1])

	h.bridge.ContentDragProgressed(1.0)
	h.bridge.ContentDragSettled()

	sel, ok := h.nav.Selected()
	require.True(t, ok)
	assert.Equal(t, item("b"), sel)
}

func Test_ClearResetsSuppression(t *testing.T) {
	h := newHarness(t, "a", "b")
	require.NoError(t, h.nav.SelectInitial(item("a")))
	require.Len(t, h.content.calls, 1)

	h.nav.RemoveAll()
	assert.Equal(t, 1, h.content.cleared)

	// Same item, same handle, but the pages were dropped: issue again.
	require.NoError(t, h.nav.SelectInitial(item("a")))
	assert.Len(t, h.content.calls, 2)
}

func Test_CommandsBeforeAttachAreDropped(t *testing.T) {
	h := newHarness(t, "a", "b")
	h.bridge.Attach(nil, nil)

	require.NoError(t, h.nav.SelectInitial(item("a")))
	assert.Empty(t, h.content.calls)

	// A late host catches up on the next reload.
	h.bridge.Attach(h.menu, h.content)
	h.nav.ReloadMenu(domain.Item{})
	assert.Len(t, h.content.calls, 1)
}

func Test_MenuStripScrollLeavesStateAlone(t *testing.T) {
	h := newHarness(t, "a", "b")
	require.NoError(t, h.nav.SelectInitial(item("a")))

	before := h.nav.State()
	h.bridge.MenuStripScrolled(120)
	assert.Equal(t, before, h.nav.State())
}
