package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allenzhu312/Brain/internal/registry"
)

func openTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestBadgerStore_GetSet(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	_, err := store.Get(ctx, "absent")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "k", []byte("v1")))
	require.NoError(t, store.Set(ctx, "k", []byte("v2")))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
}

func TestBadgerStore_GatewayRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	gw := NewGateway(store, nil)

	regions := registry.DefaultRegions()
	regions[0].NameEn = "Persisted"
	require.NoError(t, gw.Save(ctx, regions))

	restored := gw.Load(ctx)
	assert.Equal(t, regions, restored)
}

func TestOpenBadger_RequiresPath(t *testing.T) {
	_, err := OpenBadger(BadgerConfig{})
	assert.Error(t, err)
}

func TestOpenBadger_OnDisk(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenBadger(DefaultBadgerConfig(dir + "/data"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("v")))
	require.NoError(t, store.Close())

	// Values survive a reopen.
	store, err = OpenBadger(DefaultBadgerConfig(dir + "/data"))
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}
