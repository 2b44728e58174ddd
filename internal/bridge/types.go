package bridge

import (
	"tabpager/internal/domain"
)

// MenuView is the host menu strip. Commands are idempotent: repeating
// the last command must be a no-op for the view.
type MenuView interface {
	// ScrollToItem brings the tab for the item into view.
	ScrollToItem(item domain.Item)
	// SetIndicator positions the selection indicator for the travel
	// pair and signed progress. A zero `to` with zero progress means a
	// settled selection on `from`.
	SetIndicator(from, to domain.Item, progress float64)
}

// ContentView is the host content pager. NavigateTo must invoke done
// exactly once when the move finishes (immediately for an instant
// snap); the bridge routes it back on the coordination context.
type ContentView interface {
	NavigateTo(content domain.ContentHandle, animated bool, done func())
	RemoveAllPages()
}
