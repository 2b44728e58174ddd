package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged     EventType = "SelectionChanged"
	EventTransitionStarted    EventType = "TransitionStarted"
	EventTransitionProgressed EventType = "TransitionProgressed"
	EventTransitionEnded      EventType = "TransitionEnded"
	EventWindowExtended       EventType = "WindowExtended"
	EventWindowReloaded       EventType = "WindowReloaded"
	EventItemsCleared         EventType = "ItemsCleared"
	EventMenuOffsetChanged    EventType = "MenuOffsetChanged"
	EventOptionsApplied       EventType = "OptionsApplied"
	EventError                EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted when the settled selection changes.
// Previous is the zero Item when there was no prior selection.
type SelectionChangedEvent struct {
	Previous Item
	Current  Item
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// TransitionStartedEvent is emitted when a new transition opens.
// To is the zero Item for a boundary (rubber-band) scroll with no neighbor.
type TransitionStartedEvent struct {
	TransitionID string
	From         Item
	To           Item
	Direction    Direction
	Trigger      Trigger
}

func (e TransitionStartedEvent) Type() EventType { return EventTransitionStarted }

// TransitionProgressedEvent carries a signed progress update for the
// active transition.
type TransitionProgressedEvent struct {
	TransitionID string
	Progress     float64
}

func (e TransitionProgressedEvent) Type() EventType { return EventTransitionProgressed }

// TransitionEndedEvent is emitted when a transition commits, cancels, or
// is superseded by a new selection request.
type TransitionEndedEvent struct {
	TransitionID string
	Committed    bool
	Superseded   bool
	Final        Item
}

func (e TransitionEndedEvent) Type() EventType { return EventTransitionEnded }

// WindowExtendedEvent is emitted when the item window materializes new
// neighbors on either side.
type WindowExtendedEvent struct {
	Added int
	Total int
}

func (e WindowExtendedEvent) Type() EventType { return EventWindowExtended }

// WindowReloadedEvent is emitted when the window is re-anchored on an item.
type WindowReloadedEvent struct {
	Anchor             Item
	ContentInvalidated bool
}

func (e WindowReloadedEvent) Type() EventType { return EventWindowReloaded }

// ItemsClearedEvent is emitted when the item source becomes empty.
type ItemsClearedEvent struct{}

func (e ItemsClearedEvent) Type() EventType { return EventItemsCleared }

// MenuOffsetChangedEvent reports a raw menu-strip scroll offset change.
// Informational only; it never mutates navigation state.
type MenuOffsetChangedEvent struct {
	Offset float64
}

func (e MenuOffsetChangedEvent) Type() EventType { return EventMenuOffsetChanged }

// OptionsAppliedEvent is emitted after an explicit reconfiguration call.
type OptionsAppliedEvent struct{}

func (e OptionsAppliedEvent) Type() EventType { return EventOptionsApplied }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
