// Package providertest provides an in-memory OAuthProvider for tests.
package providertest

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"auth-gateway/internal/auth"
)

// Fake answers ExchangeCode from a code → identity table. Unknown codes
// fail the way a provider rejecting the grant would.
type Fake struct {
	ProviderName string
	MarkerValue  string
	AuthURL      string

	mu         sync.Mutex
	identities map[string]*auth.Identity
	verifiers  []string
}

func New(name, marker string) *Fake {
	return &Fake{
		ProviderName: name,
		MarkerValue:  marker,
		AuthURL:      "https://idp.example.com/authorize",
		identities:   make(map[string]*auth.Identity),
	}
}

// Add makes code exchange to identity.
func (f *Fake) Add(code string, identity auth.Identity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	identity.Provider = f.ProviderName
	f.identities[code] = &identity
}

func (f *Fake) Name() string   { return f.ProviderName }
func (f *Fake) Marker() string { return f.MarkerValue }

func (f *Fake) AuthCodeURL(state string, codeChallenge string) string {
	q := url.Values{}
	q.Set("state", state)
	q.Set("code_challenge", codeChallenge)
	q.Set("code_challenge_method", "S256")
	return f.AuthURL + "?" + q.Encode()
}

func (f *Fake) ExchangeCode(_ context.Context, code string, codeVerifier string) (*auth.Identity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.verifiers = append(f.verifiers, codeVerifier)
	id, ok := f.identities[code]
	if !ok {
		return nil, errors.New("invalid_grant")
	}
	cp := *id
	return &cp, nil
}

// Verifiers returns the PKCE verifiers seen by ExchangeCode, in order.
func (f *Fake) Verifiers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.verifiers...)
}
