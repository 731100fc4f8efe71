package auth

// Identity represents a normalized external authentication identity
// returned by an OAuth provider. It contains facts only, no decisions.
type Identity struct {
	Provider       string // e.g. "google", "facebook"
	ProviderUserID string // provider-scoped unique user identifier
	Name           string // display name asserted by the provider
	Email          string // asserted or synthetic fallback email
	EmailVerified  bool   // whether provider asserts email ownership
}
