package source

import (
	"github.com/samber/lo"

	"tabpager/internal/domain"
)

// StaticEntry pairs an item with its pre-built cell and content.
type StaticEntry struct {
	Item    domain.Item
	Cell    domain.CellDescriptor
	Content domain.ContentHandle
}

// Static is a 1:1 adapter: every item ships with its cell and content
// already built, so resolution is a lookup rather than a callback.
type Static struct {
	entries []StaticEntry
}

// NewStatic creates a static adapter from pre-built entries.
func NewStatic(entries []StaticEntry) *Static {
	return &Static{entries: append([]StaticEntry(nil), entries...)}
}

// Variant identifies the adapter capability set.
func (s *Static) Variant() Variant { return VariantStatic }

// AllItems returns the fixed ordered list.
func (s *Static) AllItems() []domain.Item {
	return lo.Map(s.entries, func(e StaticEntry, _ int) domain.Item { return e.Item })
}

// ItemBefore returns the item preceding the given one, if any.
func (s *Static) ItemBefore(item domain.Item) (domain.Item, bool) {
	idx := s.indexOf(item)
	if idx <= 0 {
		return domain.Item{}, false
	}
	return s.entries[idx-1].Item, true
}

// ItemAfter returns the item following the given one, if any.
func (s *Static) ItemAfter(item domain.Item) (domain.Item, bool) {
	idx := s.indexOf(item)
	if idx < 0 || idx >= len(s.entries)-1 {
		return domain.Item{}, false
	}
	return s.entries[idx+1].Item, true
}

// ResolveContent returns the pre-built content page for an item.
func (s *Static) ResolveContent(item domain.Item) domain.ContentHandle {
	if idx := s.indexOf(item); idx >= 0 {
		return s.entries[idx].Content
	}
	return domain.ContentHandle{}
}

// ResolveCell returns the pre-built cell descriptor for an item.
func (s *Static) ResolveCell(item domain.Item) domain.CellDescriptor {
	if idx := s.indexOf(item); idx >= 0 {
		return s.entries[idx].Cell
	}
	return domain.CellDescriptor{}
}

func (s *Static) indexOf(item domain.Item) int {
	_, idx, _ := lo.FindIndexOf(s.entries, func(e StaticEntry) bool { return e.Item == item })
	return idx
}
