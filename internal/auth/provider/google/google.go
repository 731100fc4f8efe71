package google

import (
	"context"
	"errors"
	"fmt"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const (
	providerName = "google"
	issuerURL    = "https://accounts.google.com"

	// Marker is stored as the credential of users created via Google.
	Marker = "google-oauth"
)

type Provider struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
}

type claims struct {
	Subject       string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

func New(
	ctx context.Context,
	clientID string,
	clientSecret string,
	redirectURL string,
) (*Provider, error) {

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("google oauth config missing required fields")
	}

	oidcProvider, err := oidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to init google oidc provider: %w", err)
	}

	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     oidcProvider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		verifier: oidcProvider.Verifier(&oidc.Config{ClientID: clientID}),
	}, nil
}

func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) Marker() string {
	return Marker
}

func (p *Provider) AuthCodeURL(state string, codeChallenge string) string {
	return p.oauthConfig.AuthCodeURL(
		state,
		oauth2.AccessTypeOnline,
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

// ExchangeCode redeems the code, verifies the ID token and maps its
// claims. email_verified is logged but not enforced.
func (p *Provider) ExchangeCode(
	ctx context.Context,
	code string,
	codeVerifier string,
) (*auth.Identity, error) {

	token, err := p.oauthConfig.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("google did not return id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("google id_token verification failed: %w", err)
	}

	var c claims
	if err := idToken.Claims(&c); err != nil {
		return nil, fmt.Errorf("google id_token claims parse failed: %w", err)
	}

	identity, err := identityFromClaims(c)
	if err != nil {
		return nil, err
	}

	logger.Info("google oidc verified", map[string]any{
		"issuer":         idToken.Issuer,
		"email_verified": c.EmailVerified,
		"expiry_unix":    idToken.Expiry.Unix(),
	})

	return identity, nil
}

func identityFromClaims(c claims) (*auth.Identity, error) {
	if c.Subject == "" || c.Email == "" {
		return nil, errors.New("google id_token missing required claims")
	}

	name := c.Name
	if name == "" {
		name = c.Email
	}

	return &auth.Identity{
		Provider:       providerName,
		ProviderUserID: c.Subject,
		Name:           name,
		Email:          c.Email,
		EmailVerified:  c.EmailVerified,
	}, nil
}
