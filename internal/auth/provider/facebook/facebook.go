package facebook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/logger"

	"golang.org/x/oauth2"
	fbendpoint "golang.org/x/oauth2/facebook"
)

const (
	providerName = "facebook"

	// Marker is stored as the credential of users created via Facebook.
	Marker = "facebook-oauth"

	defaultProfileURL = "https://graph.facebook.com/v19.0/me?fields=id,name,email"
)

// Config configures the Facebook provider. Endpoint and ProfileURL
// default to the public Graph API.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	Endpoint   *oauth2.Endpoint
	ProfileURL string
}

// Provider implements Facebook Login over plain OAuth2; Facebook does
// not issue OIDC ID tokens for this flow, so the profile is fetched from
// the Graph API.
type Provider struct {
	oauthConfig *oauth2.Config
	profileURL  string
}

type profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func New(cfg Config) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("facebook oauth config missing required fields")
	}

	endpoint := fbendpoint.Endpoint
	if cfg.Endpoint != nil {
		endpoint = *cfg.Endpoint
	}
	profileURL := cfg.ProfileURL
	if profileURL == "" {
		profileURL = defaultProfileURL
	}

	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"public_profile", "email"},
		},
		profileURL: profileURL,
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
		oauth2.SetAuthURLParam("code_challenge", codeChallenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)
}

func (p *Provider) ExchangeCode(
	ctx context.Context,
	code string,
	codeVerifier string,
) (*auth.Identity, error) {

	token, err := p.oauthConfig.Exchange(ctx, code, oauth2.VerifierOption(codeVerifier))
	if err != nil {
		return nil, fmt.Errorf("facebook token exchange failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("facebook profile request: %w", err)
	}

	resp, err := p.oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("facebook profile fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("facebook profile request failed with status %d: %s", resp.StatusCode, body)
	}

	var pr profile
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("facebook profile decode failed: %w", err)
	}

	identity, err := identityFromProfile(pr)
	if err != nil {
		return nil, err
	}

	logger.Info("facebook profile fetched", map[string]any{
		"email_present": pr.Email != "",
	})

	return identity, nil
}

// identityFromProfile maps a Graph API profile. Users who withhold their
// email get the synthetic address fb_<id>@facebook.user, which is unique
// per Facebook account and never collides with a real mailbox.
func identityFromProfile(pr profile) (*auth.Identity, error) {
	if pr.ID == "" {
		return nil, errors.New("facebook profile missing id")
	}

	email := pr.Email
	verified := email != ""
	if email == "" {
		email = fmt.Sprintf("fb_%s@facebook.user", pr.ID)
	}

	name := pr.Name
	if name == "" {
		name = email
	}

	return &auth.Identity{
		Provider:       providerName,
		ProviderUserID: pr.ID,
		Name:           name,
		Email:          email,
		EmailVerified:  verified,
	}, nil
}
