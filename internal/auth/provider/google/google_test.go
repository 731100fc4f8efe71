package google

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(context.Background(), "", "secret", "http://localhost/cb")
	assert.Error(t, err)
}

func TestIdentityFromClaims(t *testing.T) {
	id, err := identityFromClaims(claims{
		Subject:       "1234",
		Name:          "Ada Lovelace",
		Email:         "ada@example.com",
		EmailVerified: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "google", id.Provider)
	assert.Equal(t, "1234", id.ProviderUserID)
	assert.Equal(t, "Ada Lovelace", id.Name)
	assert.Equal(t, "ada@example.com", id.Email)
	assert.True(t, id.EmailVerified)
}

func TestIdentityFromClaims_NameFallsBackToEmail(t *testing.T) {
	id, err := identityFromClaims(claims{Subject: "1", Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", id.Name)
}

func TestIdentityFromClaims_MissingEmail(t *testing.T) {
	_, err := identityFromClaims(claims{Subject: "1"})
	assert.Error(t, err)
}

func TestAuthCodeURL_CarriesStateAndPKCE(t *testing.T) {
	p := &Provider{oauthConfig: &oauth2.Config{
		ClientID:    "client",
		RedirectURL: "http://localhost:3000/auth/google/callback",
		Endpoint:    oauth2.Endpoint{AuthURL: "https://accounts.example.com/auth"},
	}}

	u, err := url.Parse(p.AuthCodeURL("st4te", "ch4llenge"))
	require.NoError(t, err)

	q := u.Query()
	assert.Equal(t, "st4te", q.Get("state"))
	assert.Equal(t, "ch4llenge", q.Get("code_challenge"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
	assert.Equal(t, "client", q.Get("client_id"))
	assert.Equal(t, Marker, p.Marker())
}
