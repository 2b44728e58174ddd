package source

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabpager/internal/domain"
)

func item(id string) domain.Item {
	return domain.Item{ID: id, Title: id}
}

func testResolvers() (ContentResolver, CellResolver) {
	content := func(i domain.Item) domain.ContentHandle {
		return domain.ContentHandle{ID: i.ID, Body: "page " + i.ID}
	}
	cell := func(i domain.Item) domain.CellDescriptor {
		return domain.CellDescriptor{ReuseID: "tab", Title: i.Title}
	}
	return content, cell
}

func Test_Finite_Neighbors(t *testing.T) {
	content, cell := testResolvers()
	f := NewFinite([]domain.Item{item("a"), item("b"), item("c")}, content, cell)

	tests := []struct {
		name   string
		from   domain.Item
		before domain.Item
		after  domain.Item
		hasB   bool
		hasA   bool
	}{
		{"first item", item("a"), domain.Item{}, item("b"), false, true},
		{"middle item", item("b"), item("a"), item("c"), true, true},
		{"last item", item("c"), item("b"), domain.Item{}, true, false},
		{"unknown item", item("z"), domain.Item{}, domain.Item{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, okB := f.ItemBefore(tt.from)
			after, okA := f.ItemAfter(tt.from)
			assert.Equal(t, tt.hasB, okB)
			assert.Equal(t, tt.hasA, okA)
			assert.Equal(t, tt.before, before)
			assert.Equal(t, tt.after, after)
		})
	}
}

func Test_Finite_NeighborConsistency(t *testing.T) {
	content, cell := testResolvers()
	f := NewFinite([]domain.Item{item("a"), item("b"), item("c"), item("d")}, content, cell)

	// itemAfter(itemBefore(x)) == x for every interior item.
	for _, it := range []domain.Item{item("b"), item("c"), item("d")} {
		prev, ok := f.ItemBefore(it)
		require.True(t, ok)
		back, ok := f.ItemAfter(prev)
		require.True(t, ok)
		assert.Equal(t, it, back)
	}
}

func Test_Finite_SetItems(t *testing.T) {
	content, cell := testResolvers()
	f := NewFinite([]domain.Item{item("a")}, content, cell)

	f.SetItems([]domain.Item{item("x"), item("y")})
	assert.Equal(t, []domain.Item{item("x"), item("y")}, f.AllItems())

	after, ok := f.ItemAfter(item("x"))
	require.True(t, ok)
	assert.Equal(t, item("y"), after)
}

func Test_Finite_Resolvers(t *testing.T) {
	content, cell := testResolvers()
	f := NewFinite([]domain.Item{item("a")}, content, cell)

	assert.Equal(t, "page a", f.ResolveContent(item("a")).Body)
	assert.Equal(t, "tab", f.ResolveCell(item("a")).ReuseID)
}

func Test_Infinite_NeighborsAreUnbounded(t *testing.T) {
	content, cell := testResolvers()
	num := func(i domain.Item) int {
		n, _ := strconv.Atoi(i.ID)
		return n
	}
	mk := func(n int) domain.Item { return item(strconv.Itoa(n)) }

	inf := NewInfinite(
		func(i domain.Item) (domain.Item, bool) { return mk(num(i) - 1), true },
		func(i domain.Item) (domain.Item, bool) { return mk(num(i) + 1), true },
		content, cell,
	)

	require.Equal(t, VariantInfinite, inf.Variant())

	cur := mk(0)
	for i := 1; i <= 100; i++ {
		next, ok := inf.ItemAfter(cur)
		require.True(t, ok)
		cur = next
	}
	assert.Equal(t, "100", cur.ID)

	prev, ok := inf.ItemBefore(mk(0))
	require.True(t, ok)
	assert.Equal(t, "-1", prev.ID)
}

func Test_Static_LookupsArePrebuilt(t *testing.T) {
	s := NewStatic([]StaticEntry{
		{Item: item("a"), Cell: domain.CellDescriptor{Title: "A"}, Content: domain.ContentHandle{Body: "body a"}},
		{Item: item("b"), Cell: domain.CellDescriptor{Title: "B"}, Content: domain.ContentHandle{Body: "body b"}},
	})

	require.Equal(t, VariantStatic, s.Variant())
	assert.Equal(t, []domain.Item{item("a"), item("b")}, s.AllItems())
	assert.Equal(t, "body b", s.ResolveContent(item("b")).Body)
	assert.Equal(t, "A", s.ResolveCell(item("a")).Title)

	after, ok := s.ItemAfter(item("a"))
	require.True(t, ok)
	assert.Equal(t, item("b"), after)

	_, ok = s.ItemAfter(item("b"))
	assert.False(t, ok)

	assert.Empty(t, s.ResolveContent(item("zz")).Body)
}
