package source

import (
	"github.com/samber/lo"

	"tabpager/internal/domain"
)

// Finite is a slice-backed adapter over a fixed ordered list of items.
// Neighbor queries are index arithmetic; past either edge they report
// no neighbor.
type Finite struct {
	items   []domain.Item
	content ContentResolver
	cell    CellResolver
}

// NewFinite creates a finite adapter. The resolvers are invoked lazily
// by the item window, at most once per item per materialization.
func NewFinite(items []domain.Item, content ContentResolver, cell CellResolver) *Finite {
	return &Finite{
		items:   append([]domain.Item(nil), items...),
		content: content,
		cell:    cell,
	}
}

// Variant identifies the adapter capability set.
func (f *Finite) Variant() Variant { return VariantFinite }

// AllItems returns the current ordered list.
func (f *Finite) AllItems() []domain.Item {
	return append([]domain.Item(nil), f.items...)
}

// SetItems replaces the backing list. Callers follow up with a reload
// on the navigation service so window and selection reconcile.
func (f *Finite) SetItems(items []domain.Item) {
	f.items = append([]domain.Item(nil), items...)
}

// ItemBefore returns the item preceding the given one, if any.
func (f *Finite) ItemBefore(item domain.Item) (domain.Item, bool) {
	idx := f.indexOf(item)
	if idx <= 0 {
		return domain.Item{}, false
	}
	return f.items[idx-1], true
}

// ItemAfter returns the item following the given one, if any.
func (f *Finite) ItemAfter(item domain.Item) (domain.Item, bool) {
	idx := f.indexOf(item)
	if idx < 0 || idx >= len(f.items)-1 {
		return domain.Item{}, false
	}
	return f.items[idx+1], true
}

// ResolveContent materializes the content page for an item.
func (f *Finite) ResolveContent(item domain.Item) domain.ContentHandle {
	return f.content(item)
}

// ResolveCell materializes the menu cell descriptor for an item.
func (f *Finite) ResolveCell(item domain.Item) domain.CellDescriptor {
	return f.cell(item)
}

func (f *Finite) indexOf(item domain.Item) int {
	_, idx, _ := lo.FindIndexOf(f.items, func(i domain.Item) bool { return i == item })
	return idx
}
