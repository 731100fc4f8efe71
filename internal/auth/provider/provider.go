package provider

import (
	"context"

	"auth-gateway/internal/auth"
)

// OAuthProvider is one external identity provider. It speaks the
// provider's protocol and reports who the user is; linking the identity
// to a local user and issuing sessions happen elsewhere.
type OAuthProvider interface {
	// Name is the path segment under /auth, e.g. "google".
	Name() string

	// Marker is the credential stored for users this provider created.
	// It is never a valid password hash.
	Marker() string

	// AuthCodeURL is where the browser is sent to consent. The caller
	// owns state and the S256 code challenge.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode redeems an authorization code with its PKCE verifier.
	ExchangeCode(ctx context.Context, code string, codeVerifier string) (*auth.Identity, error)
}
