package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabpager/internal/domain"
	"tabpager/internal/source"
)

func item(id string) domain.Item {
	return domain.Item{ID: id, Title: id}
}

func items(ids ...string) []domain.Item {
	out := make([]domain.Item, len(ids))
	for i, id := range ids {
		out[i] = item(id)
	}
	return out
}

// countingAdapter wraps a finite adapter and counts resolver calls per item.
func countingAdapter(ids ...string) (*source.Finite, map[string]int) {
	calls := make(map[string]int)
	content := func(i domain.Item) domain.ContentHandle {
		calls[i.ID]++
		return domain.ContentHandle{ID: i.ID, Body: "page " + i.ID}
	}
	cell := func(i domain.Item) domain.CellDescriptor {
		return domain.CellDescriptor{ReuseID: "tab", Title: i.Title}
	}
	return source.NewFinite(items(ids...), content, cell), calls
}

func Test_SelectInitial(t *testing.T) {
	adapter, _ := countingAdapter("a", "b", "c")
	w := NewService(adapter, nil)

	require.NoError(t, w.SelectInitial(item("b")))
	assert.Equal(t, items("b"), w.Items())

	sel, ok := w.Selected()
	require.True(t, ok)
	assert.Equal(t, item("b"), sel)
}

func Test_SelectInitial_NoIdentity(t *testing.T) {
	adapter, _ := countingAdapter("a")
	w := NewService(adapter, nil)

	err := w.SelectInitial(domain.Item{})
	assert.ErrorIs(t, err, ErrNoIdentity)
	assert.Zero(t, w.Len())
}

func Test_EnsureNeighbors_GrowsBothSides(t *testing.T) {
	adapter, _ := countingAdapter("a", "b", "c", "d", "e")
	w := NewService(adapter, nil)
	require.NoError(t, w.SelectInitial(item("c")))

	added := w.EnsureNeighbors(item("c"), 1)
	assert.Equal(t, 2, added)
	assert.Equal(t, items("b", "c", "d"), w.Items())

	// Growing further reuses what is already there.
	added = w.EnsureNeighbors(item("c"), 2)
	assert.Equal(t, 2, added)
	assert.Equal(t, items("a", "b", "c", "d", "e"), w.Items())

	// Edges stop growth without error.
	added = w.EnsureNeighbors(item("c"), 10)
	assert.Zero(t, added)
}

func Test_EnsureNeighbors_SelectionSurvivesPrepend(t *testing.T) {
	adapter, _ := countingAdapter("a", "b", "c")
	w := NewService(adapter, nil)
	require.NoError(t, w.SelectInitial(item("c")))

	w.EnsureNeighbors(item("c"), 2)

	sel, ok := w.Selected()
	require.True(t, ok)
	assert.Equal(t, item("c"), sel)
}

func Test_Contiguity(t *testing.T) {
	adapter, _ := countingAdapter("a", "b", "c", "d", "e", "f", "g")
	w := NewService(adapter, nil)
	require.NoError(t, w.SelectInitial(item("d")))

	w.EnsureNeighbors(item("d"), 2)
	w.Neighbor(item("f"), domain.DirectionForward)
	w.Neighbor(item("b"), domain.DirectionReverse)

	// The window must have no gaps relative to the adapter's
	// before/after relation.
	got := w.Items()
	for i := 0; i < len(got)-1; i++ {
		next, ok := adapter.ItemAfter(got[i])
		require.True(t, ok)
		assert.Equal(t, next, got[i+1], "gap after %s", got[i].ID)
	}
}

func Test_Neighbor_MaterializesLazily(t *testing.T) {
	adapter, calls := countingAdapter("a", "b", "c")
	w := NewService(adapter, nil)
	require.NoError(t, w.SelectInitial(item("a")))

	assert.Zero(t, calls["b"])

	next, ok := w.Neighbor(item("a"), domain.DirectionForward)
	require.True(t, ok)
	assert.Equal(t, item("b"), next)
	assert.Equal(t, 1, calls["b"])

	// Second query reuses the materialized entry.
	_, _ = w.Neighbor(item("a"), domain.DirectionForward)
	assert.Equal(t, 1, calls["b"])

	_, ok = w.Neighbor(item("a"), domain.DirectionReverse)
	assert.False(t, ok)
}

func Test_Reconcile(t *testing.T) {
	adapter, _ := countingAdapter("a", "b", "c")
	w := NewService(adapter, nil)

	tests := []struct {
		name     string
		newItems []domain.Item
		previous domain.Item
		want     domain.Item
		found    bool
	}{
		{"previous survives", items("x", "b", "y"), item("b"), item("b"), true},
		{"previous gone, first wins", items("x", "y"), item("b"), item("x"), true},
		{"empty list", nil, item("b"), domain.Item{}, false},
		{"no previous, first wins", items("x", "y"), domain.Item{}, item("x"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := w.Reconcile(tt.newItems, tt.previous)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_ReanchorPreservingContent(t *testing.T) {
	adapter, calls := countingAdapter("a", "b", "c")
	w := NewService(adapter, nil)
	require.NoError(t, w.Reanchor(item("b"), 1))
	assert.Equal(t, 1, calls["b"])

	require.NoError(t, w.ReanchorPreservingContent(item("b"), 1))
	// Content for surviving items is kept, not re-resolved.
	assert.Equal(t, 1, calls["b"])
	assert.Equal(t, 1, calls["a"])

	// A plain reanchor re-resolves everything.
	require.NoError(t, w.Reanchor(item("b"), 1))
	assert.Equal(t, 2, calls["b"])
}

func Test_Remove(t *testing.T) {
	adapter, _ := countingAdapter("a", "b", "c", "d", "e")
	w := NewService(adapter, nil)
	require.NoError(t, w.Reanchor(item("c"), 2))
	require.Equal(t, 5, w.Len())

	// Edge removals trim one entry.
	w.Remove(item("a"))
	assert.Equal(t, items("b", "c", "d", "e"), w.Items())
	w.Remove(item("e"))
	assert.Equal(t, items("b", "c", "d"), w.Items())

	// Interior removal keeps the selected side contiguous.
	w.Remove(item("d"))
	assert.Equal(t, items("b", "c"), w.Items())

	sel, ok := w.Selected()
	require.True(t, ok)
	assert.Equal(t, item("c"), sel)
}

func Test_RemoveAll(t *testing.T) {
	adapter, _ := countingAdapter("a", "b")
	w := NewService(adapter, nil)
	require.NoError(t, w.Reanchor(item("a"), 1))

	w.RemoveAll()
	assert.Zero(t, w.Len())
	_, ok := w.Selected()
	assert.False(t, ok)
}

func Test_Compare(t *testing.T) {
	adapter, _ := countingAdapter("a", "b", "c")
	w := NewService(adapter, nil)
	require.NoError(t, w.Reanchor(item("b"), 1))

	cmp, ok := w.Compare(item("a"), item("c"))
	require.True(t, ok)
	assert.Negative(t, cmp)

	cmp, ok = w.Compare(item("c"), item("a"))
	require.True(t, ok)
	assert.Positive(t, cmp)

	_, ok = w.Compare(item("a"), item("zz"))
	assert.False(t, ok)
}
