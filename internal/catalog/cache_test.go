package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	fakeStore
	familyCalls  int
	lastDenylist []string
}

func (c *countingStore) Families(ctx context.Context, denylist []string) ([]string, error) {
	c.familyCalls++
	c.lastDenylist = denylist
	return c.fakeStore.Families(ctx, denylist)
}

func TestFamilyCacheReadThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	store := &countingStore{fakeStore: fakeStore{families: []string{"RETENES", "RODAMIENTOS"}}}
	cache := NewFamilyCache(store, client, testConfig(), time.Minute, testLogger())

	ctx := context.Background()
	first, err := cache.Families(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"RETENES", "RODAMIENTOS"}, first)
	require.Equal(t, 1, store.familyCalls)

	second, err := cache.Families(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, store.familyCalls, "second read must hit the cache")
}

func TestFamilyCachePassesNormalizedDenylist(t *testing.T) {
	store := &countingStore{fakeStore: fakeStore{families: []string{"RETENES"}}}
	cache := NewFamilyCache(store, nil, testConfig(), time.Minute, testLogger())

	_, err := cache.Families(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"VARIOS", "SERVICIOS"}, store.lastDenylist)
}

func TestFamilyCacheDegradesWhenRedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	store := &countingStore{fakeStore: fakeStore{families: []string{"RETENES"}}}
	cache := NewFamilyCache(store, client, testConfig(), time.Minute, testLogger())

	families, err := cache.Families(context.Background())
	require.NoError(t, err, "cache failure must fall through to the store")
	require.Equal(t, []string{"RETENES"}, families)
}
