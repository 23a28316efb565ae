package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "taaza:session:", ttl), mr
}

func TestRedisStore_SaveLoadDelete(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", "asha"))
	assert.True(t, mr.Exists("taaza:session:abc"))

	username, err := store.Load(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "asha", username)

	require.NoError(t, store.Delete(ctx, "abc"))
	_, err = store.Load(ctx, "abc")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "abc", "asha"))
	assert.Equal(t, time.Minute, mr.TTL("taaza:session:abc"))

	mr.FastForward(2 * time.Minute)
	_, err := store.Load(ctx, "abc")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_BackendDown(t *testing.T) {
	store, mr := newRedisStore(t, 0)
	mr.Close()

	_, err := store.Load(context.Background(), "abc")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_MissingSession(t *testing.T) {
	store := NewMemoryStore(0)
	_, err := store.Load(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, store.Delete(context.Background(), "nope"))
}
