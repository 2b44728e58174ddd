package source

import (
	"tabpager/internal/domain"
)

// Variant identifies the capability set an adapter was built with.
// It is fixed at construction; switching variants at runtime is a
// setup contract violation and fails fast in the navigation service.
type Variant string

const (
	VariantFinite   Variant = "finite"
	VariantInfinite Variant = "infinite"
	VariantStatic   Variant = "static"
)

// ContentResolver materializes the content page for an item.
type ContentResolver func(domain.Item) domain.ContentHandle

// CellResolver materializes the menu cell descriptor for an item.
type CellResolver func(domain.Item) domain.CellDescriptor

// Adapter supplies item sequencing and content/cell resolution.
// The boolean return on the neighbor calls reports whether a neighbor
// exists; past the edge of a bounded sequence it is false.
//
// Adapters must answer neighbor queries deterministically and
// consistently: ItemAfter(ItemBefore(x)) must yield x again. The core
// does not verify this.
type Adapter interface {
	Variant() Variant
	ItemBefore(item domain.Item) (domain.Item, bool)
	ItemAfter(item domain.Item) (domain.Item, bool)
	ResolveContent(item domain.Item) domain.ContentHandle
	ResolveCell(item domain.Item) domain.CellDescriptor
}

// FiniteAdapter is an Adapter over a bounded sequence that can expose
// the whole ordered list at any instant. Infinite adapters never
// implement it; the core must not assume a bounded count.
type FiniteAdapter interface {
	Adapter
	AllItems() []domain.Item
}
