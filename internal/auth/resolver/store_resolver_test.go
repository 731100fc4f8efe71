package resolver

import (
	"context"
	"sync"
	"testing"
	"time"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/db/dbtest"
	"auth-gateway/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func googleIdentity(email string) *auth.Identity {
	return &auth.Identity{
		Provider:       "google",
		ProviderUserID: "sub-" + email,
		Name:           "Google User",
		Email:          email,
	}
}

func countUsers(t *testing.T, store *user.BunStore, email string) int {
	t.Helper()
	_, err := store.FindByEmail(context.Background(), email)
	if err != nil {
		require.ErrorIs(t, err, user.ErrNotFound)
		return 0
	}
	return 1
}

func TestResolve_CreatesNewUserWithMarker(t *testing.T) {
	store := user.NewBunStore(dbtest.New(t), time.Second)
	r := NewStoreResolver(store)

	u, err := r.Resolve(context.Background(), googleIdentity("new@example.com"), "google-oauth")
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", u.Email)
	assert.Equal(t, "Google User", u.Name)
	assert.Equal(t, "google-oauth", u.Password)
}

func TestResolve_ReusesLocalUserUnchanged(t *testing.T) {
	store := user.NewBunStore(dbtest.New(t), time.Second)
	ctx := context.Background()

	local, err := store.Create(ctx, "Local Name", "ada@example.com", "$2a$10$localhash")
	require.NoError(t, err)

	u, err := NewStoreResolver(store).Resolve(ctx, googleIdentity("ada@example.com"), "google-oauth")
	require.NoError(t, err)

	assert.Equal(t, local.ID, u.ID)
	assert.Equal(t, "Local Name", u.Name)
	assert.Equal(t, "$2a$10$localhash", u.Password)
}

func TestResolve_SecondProviderReusesFirst(t *testing.T) {
	store := user.NewBunStore(dbtest.New(t), time.Second)
	r := NewStoreResolver(store)
	ctx := context.Background()

	first, err := r.Resolve(ctx, googleIdentity("ada@example.com"), "google-oauth")
	require.NoError(t, err)

	fb := &auth.Identity{Provider: "facebook", ProviderUserID: "42", Name: "FB Ada", Email: "ada@example.com"}
	second, err := r.Resolve(ctx, fb, "facebook-oauth")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "google-oauth", second.Password)
}

func TestResolve_ConcurrentFirstLogins(t *testing.T) {
	store := user.NewBunStore(dbtest.New(t), 5*time.Second)
	r := NewStoreResolver(store)

	const n = 6
	ids := make([]string, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := r.Resolve(context.Background(), googleIdentity("race@example.com"), "google-oauth")
			errs[i] = err
			if u != nil {
				ids[i] = u.ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, 1, countUsers(t, store, "race@example.com"))
}

func TestResolve_RejectsEmptyEmail(t *testing.T) {
	store := user.NewBunStore(dbtest.New(t), time.Second)

	_, err := NewStoreResolver(store).Resolve(context.Background(), &auth.Identity{Provider: "google"}, "google-oauth")
	assert.Error(t, err)

	_, err = NewStoreResolver(store).Resolve(context.Background(), nil, "google-oauth")
	assert.Error(t, err)
}
