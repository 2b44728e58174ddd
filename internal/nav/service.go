package nav

import (
	"log/slog"
	"math"

	"github.com/google/uuid"

	"tabpager/internal/domain"
	"tabpager/internal/eventbus"
	"tabpager/internal/source"
	"tabpager/internal/window"
)

// Service is the navigation state machine. It owns what item is
// selected, what item (if any) the views are scrolling toward, and how
// far along that transition is, and it reconciles menu-driven and
// content-driven inputs into at most one active transition.
//
// All inputs must arrive on one coordination context, serialized in
// call order. There is no internal locking because there is no
// concurrent mutation.
type Service struct {
	win  *window.Service
	bus  eventbus.EventBus
	opts Options

	state State
	// anchor is the item that was Selected when the in-flight
	// transition began. Reversals re-pair From/To but never move the
	// anchor; a cancelled transition settles back on it.
	anchor domain.Item

	navigateFn  NavigateFunc
	indicatorFn IndicatorFunc
	clearFn     ClearFunc
}

// NewService creates a new navigation service over the given window.
func NewService(win *window.Service, bus eventbus.EventBus, opts Options) *Service {
	return &Service{
		win:  win,
		bus:  bus,
		opts: opts.withDefaults(),
		state: State{
			Kind: KindEmpty,
		},
	}
}

// SetNavigateFunction sets the command used to move the content view.
func (s *Service) SetNavigateFunction(fn NavigateFunc) {
	s.navigateFn = fn
}

// SetIndicatorFunction sets the command used to position the menu
// selection indicator.
func (s *Service) SetIndicatorFunction(fn IndicatorFunc) {
	s.indicatorFn = fn
}

// SetClearFunction sets the command used to drop all content pages.
func (s *Service) SetClearFunction(fn ClearFunc) {
	s.clearFn = fn
}

// State returns a read-only snapshot of the current navigation state.
func (s *Service) State() State {
	return s.state
}

// Selected returns the settled selection, if any.
func (s *Service) Selected() (domain.Item, bool) {
	if s.state.Kind != KindSelected {
		return domain.Item{}, false
	}
	return s.state.Selected, true
}

// Window returns the item window backing this service.
func (s *Service) Window() *window.Service {
	return s.win
}

// Options returns the active policy values.
func (s *Service) Options() Options {
	return s.opts
}

// ApplyOptions replaces the policy values in one explicit call.
func (s *Service) ApplyOptions(opts Options) {
	s.opts = opts.withDefaults()
	if item, ok := s.Selected(); ok {
		s.win.EnsureNeighbors(item, s.opts.NeighborCount)
	}
	s.publish(eventbus.OptionsAppliedEvent{})
}

// SelectInitial seeds the very first selection. The window is reset to
// the item plus its neighbors and the state becomes Selected without a
// transition.
func (s *Service) SelectInitial(item domain.Item) error {
	s.mustConfigured()
	if err := s.win.Reanchor(item, s.opts.NeighborCount); err != nil {
		s.publish(eventbus.ErrorEvent{Message: "initial selection rejected", Err: err})
		return err
	}
	s.state = State{Kind: KindSelected, Selected: item}
	s.publish(eventbus.SelectionChangedEvent{Current: item})
	s.emitIndicator(item, domain.Item{}, 0)
	s.emitNavigate(item, false, "")
	return nil
}

// Select starts a transition toward the given item. An in-flight
// transition is abandoned (forced-replace): the machine never stacks
// transitions, at most one is active. The new transition starts from
// the item the abandoned one would have settled on.
func (s *Service) Select(item domain.Item, animated bool) {
	s.mustConfigured()
	if item.Zero() {
		s.publish(eventbus.ErrorEvent{Message: "select rejected", Err: window.ErrNoIdentity})
		return
	}
	if s.state.Kind == KindEmpty {
		// Nothing to animate from; seed and snap.
		_ = s.SelectInitial(item)
		return
	}

	wasScrolling := s.state.Kind == KindScrolling
	from := s.settledWouldBe()
	if wasScrolling {
		s.publish(eventbus.TransitionEndedEvent{
			TransitionID: s.state.TransitionID,
			Superseded:   true,
			Final:        from,
		})
	}
	if from == item {
		prev := s.anchor
		s.anchor = item
		s.state = State{Kind: KindSelected, Selected: item}
		s.win.SetSelected(item)
		if wasScrolling && prev != item {
			s.publish(eventbus.SelectionChangedEvent{Previous: prev, Current: item})
		}
		s.emitIndicator(item, domain.Item{}, 0)
		s.emitNavigate(item, false, "")
		return
	}

	dir := s.directionTo(item, from)

	id := uuid.NewString()
	s.anchor = from
	s.state = State{
		Kind:         KindScrolling,
		From:         from,
		To:           item,
		Progress:     0,
		Direction:    dir,
		Trigger:      domain.TriggerMenu,
		TransitionID: id,
	}
	s.publish(eventbus.TransitionStartedEvent{
		TransitionID: id,
		From:         from,
		To:           item,
		Direction:    dir,
		Trigger:      domain.TriggerMenu,
	})
	s.emitNavigate(item, animated, id)
}

// CompleteTransition finishes the content move issued for a menu-driven
// transition. Completions for superseded transitions are checked
// against the active id and silently dropped when stale.
func (s *Service) CompleteTransition(transitionID string) {
	if s.state.Kind != KindScrolling || s.state.TransitionID != transitionID {
		slog.Debug("dropping stale transition completion", "transition", transitionID)
		return
	}
	if s.state.To.Zero() {
		s.settle(s.anchor, false)
		return
	}
	s.settle(s.state.To, true)
}

// ContentScrolled feeds one signed progress sample from a content-view
// drag. On a settled state it opens a transition toward the neighbor in
// the sign direction (or a boundary rubber-band when there is none).
// On an in-flight one it updates progress in place; a sign flip past
// zero re-pairs From/To and flips Direction within the same transition.
func (s *Service) ContentScrolled(progress float64) {
	progress = clamp(progress, -1, 1)

	switch s.state.Kind {
	case KindEmpty:
		return

	case KindSelected:
		if progress == 0 {
			return
		}
		cur := s.state.Selected
		dir := directionOf(progress)
		to, ok := s.win.Neighbor(cur, dir)
		if !ok {
			to = domain.Item{} // boundary, rubber-band scroll
		}
		id := uuid.NewString()
		s.anchor = cur
		s.state = State{
			Kind:         KindScrolling,
			From:         cur,
			To:           to,
			Progress:     progress,
			Direction:    dir,
			Trigger:      domain.TriggerContent,
			TransitionID: id,
		}
		s.publish(eventbus.TransitionStartedEvent{
			TransitionID: id,
			From:         cur,
			To:           to,
			Direction:    dir,
			Trigger:      domain.TriggerContent,
		})
		s.publishProgress()
		s.emitIndicator(cur, to, progress)

	case KindScrolling:
		// Compare against the transition's direction, not the previous
		// sample: a drag that passes through an exact 0.0 sample must
		// still reverse.
		if signOf(progress) != 0 && directionOf(progress) != s.state.Direction {
			s.reverse(progress)
		}
		s.state.Progress = progress
		s.publishProgress()
		s.emitIndicator(s.state.From, s.state.To, progress)
	}
}

// ContentFinishedScrolling settles the in-flight transition: commit to
// the upcoming item when terminal progress reached the commit
// threshold, otherwise revert to the anchor. Safe to call redundantly;
// without an active transition it changes nothing.
func (s *Service) ContentFinishedScrolling() {
	if s.state.Kind != KindScrolling {
		return
	}
	won := !s.state.To.Zero() && math.Abs(s.state.Progress) >= s.opts.CommitThreshold
	if won {
		s.settle(s.state.To, true)
		return
	}
	s.settle(s.anchor, false)
}

// MenuScrolled reports a raw menu-strip offset change. Purely
// informational for indicator rendering; navigation state is untouched.
func (s *Service) MenuScrolled(offset float64) {
	s.publish(eventbus.MenuOffsetChangedEvent{Offset: offset})
}

// ReloadMenu re-anchors the window and re-selects unconditionally,
// keeping already materialized content pages.
func (s *Service) ReloadMenu(around domain.Item) {
	s.reload(around, false)
}

// ReloadData re-anchors the window, re-selects unconditionally, and
// invalidates content so pages are re-resolved.
func (s *Service) ReloadData(around domain.Item) {
	s.reload(around, true)
}

// RemoveAll empties the window, drops all content pages, and resets the
// machine to Empty.
func (s *Service) RemoveAll() {
	s.abandonInFlight()
	s.win.RemoveAll()
	s.state = State{Kind: KindEmpty}
	s.publish(eventbus.ItemsClearedEvent{})
	if s.clearFn != nil {
		s.clearFn()
	}
}

// reload implements both reload paths. A zero anchor means "reconcile":
// finite sources re-match the previous selection against the fresh
// list, infinite ones keep the current selection.
func (s *Service) reload(around domain.Item, invalidate bool) {
	s.mustConfigured()

	anchor := around
	if anchor.Zero() {
		prev := s.settledWouldBe()
		if fa, ok := s.win.Adapter().(source.FiniteAdapter); ok {
			kept, found := s.win.Reconcile(fa.AllItems(), prev)
			if !found {
				s.abandonInFlight()
				s.win.RemoveAll()
				s.state = State{Kind: KindEmpty}
				s.publish(eventbus.ItemsClearedEvent{})
				if s.clearFn != nil {
					s.clearFn()
				}
				return
			}
			anchor = kept
		} else {
			anchor = prev
		}
	}
	if anchor.Zero() {
		return
	}

	prev := s.settledWouldBe()
	s.abandonInFlight()

	if err := s.win.ReanchorPreservingContent(anchor, s.opts.NeighborCount); err != nil {
		s.publish(eventbus.ErrorEvent{Message: "reload rejected", Err: err})
		return
	}
	if invalidate {
		s.win.InvalidateContent(anchor)
	}

	s.state = State{Kind: KindSelected, Selected: anchor}
	s.publish(eventbus.WindowReloadedEvent{Anchor: anchor, ContentInvalidated: invalidate})
	if prev != anchor {
		s.publish(eventbus.SelectionChangedEvent{Previous: prev, Current: anchor})
	}
	s.emitIndicator(anchor, domain.Item{}, 0)
	// Commands are idempotent, so re-emitting after reload is safe.
	s.emitNavigate(anchor, false, "")
}

// reverse re-pairs the travel items after progress crossed zero.
// For a real pair From/To swap and Direction flips; for a boundary
// rubber-band the anchor stays From and the neighbor on the other side
// becomes the new To. Either way it is the same transition.
func (s *Service) reverse(progress float64) {
	newDir := directionOf(progress)
	if s.state.To.Zero() {
		to, ok := s.win.Neighbor(s.anchor, newDir)
		if !ok {
			to = domain.Item{}
		}
		s.state.From = s.anchor
		s.state.To = to
		s.state.Direction = newDir
		return
	}
	s.state.From, s.state.To = s.state.To, s.state.From
	s.state.Direction = newDir
}

// settle finalizes the active transition onto final.
func (s *Service) settle(final domain.Item, committed bool) {
	id := s.state.TransitionID
	if !s.win.SetSelected(final) {
		if err := s.win.Reanchor(final, s.opts.NeighborCount); err != nil {
			s.publish(eventbus.ErrorEvent{Message: "settle rejected", Err: err})
			return
		}
	}
	s.win.EnsureNeighbors(final, s.opts.NeighborCount)

	prev := s.anchor
	s.state = State{Kind: KindSelected, Selected: final}
	s.publish(eventbus.TransitionEndedEvent{
		TransitionID: id,
		Committed:    committed,
		Final:        final,
	})
	if prev != final {
		s.publish(eventbus.SelectionChangedEvent{Previous: prev, Current: final})
	}
	s.emitIndicator(final, domain.Item{}, 0)
}

func (s *Service) abandonInFlight() {
	if s.state.Kind != KindScrolling {
		return
	}
	s.publish(eventbus.TransitionEndedEvent{
		TransitionID: s.state.TransitionID,
		Superseded:   true,
		Final:        s.settledWouldBe(),
	})
}

// settledWouldBe is the item an interrupted transition would settle on:
// the upcoming item once it is closer than the anchor, else the anchor.
func (s *Service) settledWouldBe() domain.Item {
	switch s.state.Kind {
	case KindSelected:
		return s.state.Selected
	case KindScrolling:
		if !s.state.To.Zero() && math.Abs(s.state.Progress) >= 0.5 {
			return s.state.To
		}
		return s.anchor
	default:
		return domain.Item{}
	}
}

// directionTo decides travel direction from window order when both
// items are materialized, else by bounded adapter traversal: forward
// wins if forward traversal reaches the target within the lookahead
// bound, then reverse gets the same chance, and an undeterminable jump
// defaults to forward.
func (s *Service) directionTo(item, from domain.Item) domain.Direction {
	if cmp, ok := s.win.Compare(item, from); ok {
		if cmp < 0 {
			return domain.DirectionReverse
		}
		return domain.DirectionForward
	}
	if s.reaches(from, item, domain.DirectionForward) {
		return domain.DirectionForward
	}
	if s.reaches(from, item, domain.DirectionReverse) {
		return domain.DirectionReverse
	}
	// Item never seen, unreachable within the bound: re-anchor on the
	// target so it is materialized for the jump, direction forward.
	if s.win.IndexOf(item) < 0 {
		if err := s.win.Reanchor(item, s.opts.NeighborCount); err != nil {
			s.publish(eventbus.ErrorEvent{Message: "jump target rejected", Err: err})
		}
	}
	return domain.DirectionForward
}

// reaches walks the window (extending it one adapter call at a time)
// from cur toward item, at most LookaheadBound steps.
func (s *Service) reaches(cur, item domain.Item, dir domain.Direction) bool {
	for i := 0; i < s.opts.LookaheadBound; i++ {
		next, ok := s.win.Neighbor(cur, dir)
		if !ok {
			return false
		}
		if next == item {
			return true
		}
		cur = next
	}
	return false
}

func (s *Service) mustConfigured() {
	if s.win == nil || s.win.Adapter() == nil {
		panic("nav: selection requested before a data source was configured")
	}
}

func (s *Service) publish(event eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}

func (s *Service) publishProgress() {
	s.publish(eventbus.TransitionProgressedEvent{
		TransitionID: s.state.TransitionID,
		Progress:     s.state.Progress,
	})
}

func (s *Service) emitNavigate(item domain.Item, animated bool, transitionID string) {
	if s.navigateFn != nil {
		s.navigateFn(item, animated, transitionID)
	}
}

func (s *Service) emitIndicator(from, to domain.Item, progress float64) {
	if s.indicatorFn != nil {
		s.indicatorFn(from, to, progress)
	}
}

func directionOf(progress float64) domain.Direction {
	if progress < 0 {
		return domain.DirectionReverse
	}
	return domain.DirectionForward
}

func signOf(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
