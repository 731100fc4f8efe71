package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisStoreTest creates a miniredis instance and a store bound to it
func setupRedisStoreTest(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStore_CreateGetDelete(t *testing.T) {
	store, mr := setupRedisStoreTest(t)
	ctx := context.Background()

	s := Session{
		SessionID: "sid-1",
		UserID:    "user-1",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}
	require.NoError(t, store.Create(ctx, s))

	assert.True(t, mr.Exists("session:sid-1"))
	ttl := mr.TTL("session:sid-1")
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
	assert.True(t, s.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, store.Delete(ctx, "sid-1"))
	got, err = store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting again is fine
	assert.NoError(t, store.Delete(ctx, "sid-1"))
}

func TestRedisStore_RejectsInvalidSessions(t *testing.T) {
	store, _ := setupRedisStoreTest(t)
	ctx := context.Background()

	assert.Error(t, store.Create(ctx, Session{UserID: "u", ExpiresAt: time.Now().Add(time.Hour)}))
	assert.Error(t, store.Create(ctx, Session{SessionID: "s", ExpiresAt: time.Now().Add(time.Hour)}))
	assert.Error(t, store.Create(ctx, Session{SessionID: "s", UserID: "u", ExpiresAt: time.Now().Add(-time.Second)}))
}

func TestRedisStore_KeyExpires(t *testing.T) {
	store, mr := setupRedisStoreTest(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, Session{SessionID: "sid", UserID: "u", ExpiresAt: time.Now().Add(time.Minute)}))
	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "sid")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	store, mr := setupRedisStoreTest(t)
	mr.Close()

	_, err := store.Get(context.Background(), "sid")
	assert.Error(t, err)
}

func TestManagerWithRedis_LogoutAndTTL(t *testing.T) {
	store, mr := setupRedisStoreTest(t)
	users := newMapUsers(ada)
	m := NewManager(store, users, []byte("test-secret-test-secret-test-sec"), DefaultTTL)
	ctx := context.Background()

	tok, err := m.Issue(ctx, ada)
	require.NoError(t, err)

	u, err := m.Resolve(ctx, tok.Value)
	require.NoError(t, err)
	assert.Equal(t, ada.ID, u.ID)

	require.NoError(t, m.Revoke(ctx, tok.Value))
	_, err = m.Resolve(ctx, tok.Value)
	assert.ErrorIs(t, err, ErrInvalidSession)

	tok, err = m.Issue(ctx, ada)
	require.NoError(t, err)
	mr.FastForward(DefaultTTL + time.Second)

	_, err = m.Resolve(ctx, tok.Value)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
