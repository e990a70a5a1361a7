package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetMissing(t *testing.T) {
	store := NewMemoryStore()

	val, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestMemoryStoreMultiSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	err := store.MultiSet(ctx, []KV{
		{Key: "a", Value: "1"},
		{Key: "b", Value: "2"},
	})
	require.NoError(t, err)

	a, _ := store.Get(ctx, "a")
	b, _ := store.Get(ctx, "b")
	assert.Equal(t, "1", a)
	assert.Equal(t, "2", b)
}

func TestMemoryStoreDel(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Del(ctx, "a"))

	val, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestMemoryStoreSets(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.SAdd(ctx, "s", "b", "a", "c"))
	require.NoError(t, store.SAdd(ctx, "s", "a")) // duplicate
	require.NoError(t, store.SRem(ctx, "s", "c"))

	members, err := store.SMembers(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, members)

	empty, err := store.SMembers(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemoryStoreZRangeByScore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.ZAdd(ctx, "z", 30, "c"))
	require.NoError(t, store.ZAdd(ctx, "z", 10, "a"))
	require.NoError(t, store.ZAdd(ctx, "z", 20, "b"))

	// Bounds are inclusive, ascending by score.
	members, err := store.ZRangeByScore(ctx, "z", 10, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, members)

	all, err := store.ZRangeByScore(ctx, "z", 0, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, all)

	none, err := store.ZRangeByScore(ctx, "z", 40, 50)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStoreZRevRangeN(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.ZAdd(ctx, "z", 1, "a"))
	require.NoError(t, store.ZAdd(ctx, "z", 2, "b"))
	require.NoError(t, store.ZAdd(ctx, "z", 3, "c"))

	top, err := store.ZRevRangeN(ctx, "z", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b"}, top)

	none, err := store.ZRevRangeN(ctx, "z", 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := store.ZRevRangeN(ctx, "z", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, all)
}

func TestMemoryStoreCounters(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	n, err := store.IncrBy(ctx, "n", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	n, err = store.IncrBy(ctx, "n", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)

	f, err := store.IncrByFloat(ctx, "f", 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, f, 1e-9)

	f, err = store.IncrByFloat(ctx, "f", 0.25)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, f, 1e-9)
}
