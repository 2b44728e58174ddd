package window

import (
	"errors"

	"tabpager/internal/domain"
)

// Entry is one materialized item together with its cached resolutions.
// Resolved distinguishes a fully materialized entry from a placeholder
// that only carries identity.
type Entry struct {
	Item     domain.Item
	Cell     domain.CellDescriptor
	Content  domain.ContentHandle
	Resolved bool
}

// ErrNoIdentity is reported when an item with no resolvable identity is
// passed where a real item is required. This is a configuration error,
// not a runtime condition to recover from.
var ErrNoIdentity = errors.New("window: item has no identity")
