package source

import (
	"tabpager/internal/domain"
)

// NeighborFunc answers "what comes before/after this item" for an
// unbounded sequence. The second return is false when no neighbor
// exists in that direction.
type NeighborFunc func(domain.Item) (domain.Item, bool)

// Infinite is an adapter over an unbounded item sequence, navigated
// purely through neighbor functions. The core never enumerates it.
type Infinite struct {
	before  NeighborFunc
	after   NeighborFunc
	content ContentResolver
	cell    CellResolver
}

// NewInfinite creates an infinite adapter from a pair of neighbor
// functions and the two resolvers.
func NewInfinite(before, after NeighborFunc, content ContentResolver, cell CellResolver) *Infinite {
	return &Infinite{
		before:  before,
		after:   after,
		content: content,
		cell:    cell,
	}
}

// Variant identifies the adapter capability set.
func (s *Infinite) Variant() Variant { return VariantInfinite }

// ItemBefore returns the item preceding the given one, if any.
func (s *Infinite) ItemBefore(item domain.Item) (domain.Item, bool) {
	return s.before(item)
}

// ItemAfter returns the item following the given one, if any.
func (s *Infinite) ItemAfter(item domain.Item) (domain.Item, bool) {
	return s.after(item)
}

// ResolveContent materializes the content page for an item.
func (s *Infinite) ResolveContent(item domain.Item) domain.ContentHandle {
	return s.content(item)
}

// ResolveCell materializes the menu cell descriptor for an item.
func (s *Infinite) ResolveCell(item domain.Item) domain.CellDescriptor {
	return s.cell(item)
}
