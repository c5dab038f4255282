package timercache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	store, err := Open(filepath.Join(t.TempDir(), "timer.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetEmpty(t *testing.T) {
	store := openTestStore(t)

	state, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSetGetRoundTrip(t *testing.T) {
	store := openTestStore(t)

	in := TimerState{
		ClientID:   "client-1",
		ClientName: "Acme Corp",
		EntryID:    "entry-1",
		StartedAt:  time.Date(2026, 2, 19, 9, 30, 0, 0, time.UTC).Format(time.RFC3339),
	}
	require.NoError(t, store.Set(in))

	out, err := store.Get()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, in, *out)
}

func TestSetReplacesExisting(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set(TimerState{ClientID: "client-1", EntryID: "entry-1"}))
	require.NoError(t, store.Set(TimerState{ClientID: "client-2", EntryID: "entry-2"}))

	out, err := store.Get()
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "entry-2", out.EntryID)
}

func TestClear(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set(TimerState{ClientID: "client-1", EntryID: "entry-1"}))
	require.NoError(t, store.Clear())

	state, err := store.Get()
	require.NoError(t, err)
	assert.Nil(t, state)

	// Clearing an already-empty cache is fine
	require.NoError(t, store.Clear())
}

func TestSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timer.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(TimerState{ClientID: "client-1", EntryID: "entry-1"}))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	state, err := reopened.Get()
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, "entry-1", state.EntryID)
}
