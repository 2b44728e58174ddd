package nav

import (
	"tabpager/internal/domain"
)

// StateKind discriminates the navigation state union.
type StateKind int

const (
	// KindEmpty means no item is selected yet: initial condition, or
	// after the item source emptied out.
	KindEmpty StateKind = iota
	// KindSelected means a single item is the settled selection.
	KindSelected
	// KindScrolling means a transition is in flight.
	KindScrolling
)

func (k StateKind) String() string {
	switch k {
	case KindSelected:
		return "selected"
	case KindScrolling:
		return "scrolling"
	default:
		return "empty"
	}
}

// State is a read-only snapshot of the navigation state machine.
// Exactly one of the three kinds is active at any instant.
//
// For KindScrolling, From and To are the current travel pair; To is the
// zero Item when scrolling past a boundary with no neighbor. Progress
// is signed: magnitude is fractional distance toward To, sign agrees
// with Direction. A mid-drag reversal swaps From and To and flips
// Direction within the same transition.
type State struct {
	Kind         StateKind
	Selected     domain.Item
	From         domain.Item
	To           domain.Item
	Progress     float64
	Direction    domain.Direction
	Trigger      domain.Trigger
	TransitionID string
}

// Upcoming returns the item the machine is scrolling toward, if any.
func (s State) Upcoming() (domain.Item, bool) {
	if s.Kind != KindScrolling || s.To.Zero() {
		return domain.Item{}, false
	}
	return s.To, true
}

// Options are the tunable policies of the state machine. Zero values
// fall back to the defaults below.
type Options struct {
	// CommitThreshold is the terminal progress magnitude at which a
	// finished scroll commits to the upcoming item. The content view's
	// settle animation drives progress to full or back to zero, so the
	// default of 1.0 makes the check effectively binary.
	CommitThreshold float64
	// LookaheadBound caps the adapter traversal used to decide the
	// direction of a long jump. Beyond it the direction defaults to
	// forward.
	LookaheadBound int
	// NeighborCount is how many items the window resolves on each side
	// of the selection for the menu layout.
	NeighborCount int
}

// DefaultOptions returns the default policy values.
func DefaultOptions() Options {
	return Options{
		CommitThreshold: 1.0,
		LookaheadBound:  16,
		NeighborCount:   3,
	}
}

func (o Options) withDefaults() Options {
	if o.CommitThreshold <= 0 {
		o.CommitThreshold = 1.0
	}
	if o.LookaheadBound <= 0 {
		o.LookaheadBound = 16
	}
	if o.NeighborCount <= 0 {
		o.NeighborCount = 3
	}
	return o
}

// NavigateFunc is the command the machine emits to move the content
// view to an item. The transition id comes back through
// CompleteTransition when the move finishes.
type NavigateFunc func(item domain.Item, animated bool, transitionID string)

// IndicatorFunc positions the menu selection indicator for the current
// travel pair and signed progress.
type IndicatorFunc func(from, to domain.Item, progress float64)

// ClearFunc removes all materialized content pages.
type ClearFunc func()
