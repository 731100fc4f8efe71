package strategy

import (
	"context"
	"errors"
	"testing"
	"time"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/auth/credentials"
	"auth-gateway/internal/auth/provider/providertest"
	"auth-gateway/internal/auth/resolver"
	"auth-gateway/internal/db/dbtest"
	"auth-gateway/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	store  *user.BunStore
	hasher *credentials.Hasher
	local  *Local
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := user.NewBunStore(dbtest.New(t), time.Second)
	hasher := credentials.NewHasher(bcrypt.MinCost, 2)
	return &fixture{store: store, hasher: hasher, local: NewLocal(store, hasher)}
}

func (f *fixture) createLocal(t *testing.T, email, password string) *user.User {
	t.Helper()
	hash, err := f.hasher.Hash(context.Background(), password)
	require.NoError(t, err)
	u, err := f.store.Create(context.Background(), "Ada", email, hash)
	require.NoError(t, err)
	return u
}

func TestLocal_Success(t *testing.T) {
	f := newFixture(t)
	u := f.createLocal(t, "ada@example.com", "analytical")

	out := f.local.Authenticate(context.Background(), LocalEvidence{Email: "ada@example.com", Password: "analytical"})
	require.Equal(t, StatusSuccess, out.Status)
	assert.Equal(t, u.ID, out.User.ID)
}

func TestLocal_UserNotFound(t *testing.T) {
	f := newFixture(t)

	out := f.local.Authenticate(context.Background(), LocalEvidence{Email: "ghost@example.com", Password: "whatever1"})
	assert.Equal(t, StatusRejected, out.Status)
	assert.Equal(t, "user not found", out.Reason)
	assert.Nil(t, out.User)
}

func TestLocal_IncorrectPassword(t *testing.T) {
	f := newFixture(t)
	f.createLocal(t, "ada@example.com", "analytical")

	out := f.local.Authenticate(context.Background(), LocalEvidence{Email: "ada@example.com", Password: "wrong-one"})
	assert.Equal(t, StatusRejected, out.Status)
	assert.Equal(t, "incorrect password", out.Reason)
}

func TestLocal_FederatedAccountCannotUsePassword(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Create(context.Background(), "Ada", "ada@example.com", "google-oauth")
	require.NoError(t, err)

	out := f.local.Authenticate(context.Background(), LocalEvidence{Email: "ada@example.com", Password: "google-oauth"})
	assert.Equal(t, StatusRejected, out.Status)
}

func TestLocal_WrongEvidence(t *testing.T) {
	f := newFixture(t)

	out := f.local.Authenticate(context.Background(), CallbackEvidence{Code: "x"})
	assert.Equal(t, StatusError, out.Status)
	assert.Error(t, out.Err)
}

func TestFederated_NewAndExisting(t *testing.T) {
	f := newFixture(t)
	existing := f.createLocal(t, "ada@example.com", "analytical")

	fake := providertest.New("google", "google-oauth")
	fake.Add("code-new", auth.Identity{Name: "New", Email: "new@example.com", EmailVerified: true})
	fake.Add("code-ada", auth.Identity{Name: "Ada G", Email: "ada@example.com", EmailVerified: true})

	fed := NewFederated(fake, resolver.NewStoreResolver(f.store))
	assert.Equal(t, "google", fed.Name())

	out := fed.Authenticate(context.Background(), CallbackEvidence{Code: "code-new", CodeVerifier: "v"})
	require.Equal(t, StatusSuccess, out.Status)
	assert.Equal(t, "google-oauth", out.User.Password)

	out = fed.Authenticate(context.Background(), CallbackEvidence{Code: "code-ada", CodeVerifier: "v"})
	require.Equal(t, StatusSuccess, out.Status)
	assert.Equal(t, existing.ID, out.User.ID)
	assert.Equal(t, existing.Password, out.User.Password)
}

func TestFederated_ProviderFailureIsRejection(t *testing.T) {
	f := newFixture(t)
	fed := NewFederated(providertest.New("facebook", "facebook-oauth"), resolver.NewStoreResolver(f.store))

	out := fed.Authenticate(context.Background(), CallbackEvidence{Code: "unknown", CodeVerifier: "v"})
	assert.Equal(t, StatusRejected, out.Status)
	assert.True(t, errors.Is(out.Err, auth.ErrProvider))

	out = fed.Authenticate(context.Background(), CallbackEvidence{})
	assert.Equal(t, StatusRejected, out.Status)
	assert.True(t, errors.Is(out.Err, auth.ErrProvider))

	out = fed.Authenticate(context.Background(), LocalEvidence{})
	assert.Equal(t, StatusError, out.Status)
}

func TestRegistry(t *testing.T) {
	f := newFixture(t)
	fed := NewFederated(providertest.New("google", "google-oauth"), resolver.NewStoreResolver(f.store))
	reg := NewRegistry(f.local, fed)

	s, err := reg.Get("local")
	require.NoError(t, err)
	assert.Same(t, f.local, s)

	_, err = reg.Get("myspace")
	assert.ErrorIs(t, err, auth.ErrNoSuchStrategy)

	rd, err := reg.Redirector("google")
	require.NoError(t, err)
	assert.Contains(t, rd.AuthCodeURL("st", "ch"), "state=st")

	_, err = reg.Redirector("local")
	assert.ErrorIs(t, err, auth.ErrNoSuchStrategy)

	assert.Equal(t, []string{"google", "local"}, reg.Names())
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", StatusSuccess.String())
	assert.Equal(t, "rejected", StatusRejected.String())
	assert.Equal(t, "error", StatusError.String())
}
