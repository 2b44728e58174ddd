package ui

import (
	"time"

	"tabpager/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// animTickMsg drives the synthesized scroll animation for menu-driven
// transitions
type animTickMsg time.Time
