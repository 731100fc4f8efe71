package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(2, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, Session{SessionID: "a", UserID: "u1"}))
	require.NoError(t, store.Create(ctx, Session{SessionID: "b", UserID: "u2"}))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)

	// capacity 2: adding a third evicts the least recently used ("b")
	require.NoError(t, store.Create(ctx, Session{SessionID: "c", UserID: "u3"}))
	got, err = store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "a"))
	got, err = store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Error(t, store.Create(ctx, Session{SessionID: "", UserID: "u"}))
}
