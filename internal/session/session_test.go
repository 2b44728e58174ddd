package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SaveAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	_, found := store.LastSelection("demo")
	assert.False(t, found)

	require.NoError(t, store.SaveSelection("demo", "tab-3"))
	got, found := store.LastSelection("demo")
	require.True(t, found)
	assert.Equal(t, "tab-3", got)

	// Per-source isolation.
	_, found = store.LastSelection("other")
	assert.False(t, found)

	require.NoError(t, store.SaveSelection("demo", "tab-5"))
	got, _ = store.LastSelection("demo")
	assert.Equal(t, "tab-5", got)
}

func Test_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveSelection("demo", "tab-2"))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	got, found := store.LastSelection("demo")
	require.True(t, found)
	assert.Equal(t, "tab-2", got)
}

func Test_Forget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.SaveSelection("demo", "tab-1"))
	require.NoError(t, store.Forget("demo"))

	_, found := store.LastSelection("demo")
	assert.False(t, found)
}

func Test_DisabledStoreIsNoOp(t *testing.T) {
	store, err := Open("")
	require.NoError(t, err)
	defer store.Close()

	assert.NoError(t, store.SaveSelection("demo", "tab-1"))
	_, found := store.LastSelection("demo")
	assert.False(t, found)
}
