package window

import (
	"github.com/samber/lo"

	"tabpager/internal/domain"
	"tabpager/internal/eventbus"
	"tabpager/internal/source"
)

// Service maintains the item window: the contiguous, lazily resolved
// subset of items currently materialized for the menu strip. The window
// always contains the selected item once selection exists, and grows by
// single adapter calls in either direction, never by bulk enumeration.
type Service struct {
	adapter  source.Adapter
	entries  []Entry
	selected int // index into entries, -1 when empty
	bus      eventbus.EventBus

	// preserved carries content handles across a menu-only reload so
	// surviving items are not re-resolved.
	preserved map[domain.Item]domain.ContentHandle
}

// NewService creates a new item window over the given adapter.
func NewService(adapter source.Adapter, bus eventbus.EventBus) *Service {
	return &Service{
		adapter:  adapter,
		selected: -1,
		bus:      bus,
	}
}

// Adapter returns the adapter the window was built over.
func (s *Service) Adapter() source.Adapter {
	return s.adapter
}

// SelectInitial clears the window and re-seeds it with the single given
// item, which becomes the sole selected member.
func (s *Service) SelectInitial(item domain.Item) error {
	if item.Zero() {
		return ErrNoIdentity
	}
	s.entries = []Entry{s.materialize(item)}
	s.selected = 0
	return nil
}

// Len returns the number of materialized entries.
func (s *Service) Len() int {
	return len(s.entries)
}

// Items returns the materialized items in window order.
func (s *Service) Items() []domain.Item {
	return lo.Map(s.entries, func(e Entry, _ int) domain.Item { return e.Item })
}

// Entries returns a copy of the materialized entries in window order.
func (s *Service) Entries() []Entry {
	return append([]Entry(nil), s.entries...)
}

// Entry returns the materialized entry for an item, if present.
func (s *Service) Entry(item domain.Item) (Entry, bool) {
	idx := s.IndexOf(item)
	if idx < 0 {
		return Entry{}, false
	}
	return s.entries[idx], true
}

// IndexOf returns the window index of an item, or -1.
func (s *Service) IndexOf(item domain.Item) int {
	_, idx, _ := lo.FindIndexOf(s.entries, func(e Entry) bool { return e.Item == item })
	return idx
}

// Selected returns the currently selected item, if any.
func (s *Service) Selected() (domain.Item, bool) {
	if s.selected < 0 || s.selected >= len(s.entries) {
		return domain.Item{}, false
	}
	return s.entries[s.selected].Item, true
}

// SetSelected moves the selection to an item already in the window.
// Returns false when the item is not materialized.
func (s *Service) SetSelected(item domain.Item) bool {
	idx := s.IndexOf(item)
	if idx < 0 {
		return false
	}
	s.selected = idx
	return true
}

// Neighbor returns the item adjacent to the given one in the travel
// direction, materializing it through the adapter when the window has
// not seen it yet. A single O(1) adapter call, never a bulk fetch.
func (s *Service) Neighbor(item domain.Item, dir domain.Direction) (domain.Item, bool) {
	idx := s.IndexOf(item)
	if idx < 0 {
		return domain.Item{}, false
	}
	if dir == domain.DirectionForward {
		if idx+1 < len(s.entries) {
			return s.entries[idx+1].Item, true
		}
		next, ok := s.adapter.ItemAfter(item)
		if !ok {
			return domain.Item{}, false
		}
		s.entries = append(s.entries, s.materialize(next))
		s.publishExtended(1)
		return next, true
	}
	if idx > 0 {
		return s.entries[idx-1].Item, true
	}
	prev, ok := s.adapter.ItemBefore(item)
	if !ok {
		return domain.Item{}, false
	}
	s.entries = append([]Entry{s.materialize(prev)}, s.entries...)
	s.selected++
	s.publishExtended(1)
	return prev, true
}

// EnsureNeighbors resolves up to count items on each side of the given
// item, extending the window. Already materialized neighbors are reused
// and never re-fetched. Returns how many entries were added.
func (s *Service) EnsureNeighbors(around domain.Item, count int) int {
	idx := s.IndexOf(around)
	if idx < 0 || count <= 0 {
		return 0
	}

	added := 0

	// Grow backward until count items sit before `around`.
	have := idx
	head := s.entries[0].Item
	for have < count {
		prev, ok := s.adapter.ItemBefore(head)
		if !ok {
			break
		}
		s.entries = append([]Entry{s.materialize(prev)}, s.entries...)
		s.selected++
		head = prev
		have++
		added++
	}

	// Grow forward until count items sit after `around`.
	have = len(s.entries) - 1 - s.IndexOf(around)
	tail := s.entries[len(s.entries)-1].Item
	for have < count {
		next, ok := s.adapter.ItemAfter(tail)
		if !ok {
			break
		}
		s.entries = append(s.entries, s.materialize(next))
		tail = next
		have++
		added++
	}

	if added > 0 {
		s.publishExtended(added)
	}
	return added
}

// Compare reports the window-order relation between two materialized
// items: negative when a precedes b, positive when it follows, zero for
// the same item. The bool is false when either item is not in the window.
func (s *Service) Compare(a, b domain.Item) (int, bool) {
	ia, ib := s.IndexOf(a), s.IndexOf(b)
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return ia - ib, true
}

// Reconcile resolves which item survives a reload: the item in newItems
// equal to previous if present, else the first of newItems, else none.
// Equality lookup, O(n); reload is infrequent and lists are UI-sized.
func (s *Service) Reconcile(newItems []domain.Item, previous domain.Item) (domain.Item, bool) {
	if kept, ok := lo.Find(newItems, func(i domain.Item) bool { return i == previous }); ok {
		return kept, true
	}
	if len(newItems) > 0 {
		return newItems[0], true
	}
	return domain.Item{}, false
}

// Reanchor resets the window to the single given item and resolves
// count neighbors around it.
func (s *Service) Reanchor(item domain.Item, count int) error {
	if err := s.SelectInitial(item); err != nil {
		return err
	}
	s.EnsureNeighbors(item, count)
	return nil
}

// ReanchorPreservingContent resets the window like Reanchor but keeps
// the already materialized content pages of items that survive the
// reload. Cell descriptors are re-resolved either way.
func (s *Service) ReanchorPreservingContent(item domain.Item, count int) error {
	kept := make(map[domain.Item]domain.ContentHandle, len(s.entries))
	for _, e := range s.entries {
		if e.Resolved {
			kept[e.Item] = e.Content
		}
	}
	s.preserved = kept
	err := s.Reanchor(item, count)
	s.preserved = nil
	return err
}

// InvalidateContent evicts and re-resolves the content page for an
// item. Cell descriptors are left untouched.
func (s *Service) InvalidateContent(item domain.Item) bool {
	idx := s.IndexOf(item)
	if idx < 0 {
		return false
	}
	s.entries[idx].Content = s.adapter.ResolveContent(item)
	return true
}

// Remove evicts one item and its cached resolutions from the window.
// Removing an interior item would split the window, so eviction is only
// honored at the edges; interior removes trim everything on the far
// side of the selection to keep contiguity.
func (s *Service) Remove(item domain.Item) {
	idx := s.IndexOf(item)
	if idx < 0 {
		return
	}
	switch {
	case idx == 0:
		s.entries = s.entries[1:]
		if s.selected > 0 {
			s.selected--
		}
	case idx == len(s.entries)-1:
		s.entries = s.entries[:idx]
	case idx > s.selected:
		s.entries = s.entries[:idx]
	default:
		s.entries = s.entries[idx+1:]
		s.selected -= idx + 1
	}
	if len(s.entries) == 0 {
		s.selected = -1
	} else if s.selected < 0 {
		s.selected = 0
	}
}

// RemoveAll evicts every entry and cached resolution.
func (s *Service) RemoveAll() {
	s.entries = nil
	s.selected = -1
}

func (s *Service) materialize(item domain.Item) Entry {
	content, ok := s.preserved[item]
	if !ok {
		content = s.adapter.ResolveContent(item)
	}
	return Entry{
		Item:     item,
		Cell:     s.adapter.ResolveCell(item),
		Content:  content,
		Resolved: true,
	}
}

func (s *Service) publishExtended(added int) {
	if s.bus != nil {
		s.bus.Publish(eventbus.WindowExtendedEvent{Added: added, Total: len(s.entries)})
	}
}
