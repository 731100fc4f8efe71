package strategy

import (
	"context"
	"fmt"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/auth/provider"
	"auth-gateway/internal/auth/resolver"
	"auth-gateway/internal/logger"
)

// Federated authenticates provider callbacks. The provider supplies
// identity facts; the resolver maps them to a user.
type Federated struct {
	provider provider.OAuthProvider
	resolver resolver.Resolver
}

func NewFederated(p provider.OAuthProvider, r resolver.Resolver) *Federated {
	return &Federated{provider: p, resolver: r}
}

func (f *Federated) Name() string {
	return f.provider.Name()
}

func (f *Federated) AuthCodeURL(state string, codeChallenge string) string {
	return f.provider.AuthCodeURL(state, codeChallenge)
}

func (f *Federated) Authenticate(ctx context.Context, evidence Evidence) Outcome {
	ev, ok := evidence.(CallbackEvidence)
	if !ok {
		return Failed(fmt.Errorf("%s strategy: unexpected evidence %T", f.Name(), evidence))
	}
	if ev.Code == "" {
		out := Rejected("provider error")
		out.Err = fmt.Errorf("%w: missing authorization code", auth.ErrProvider)
		return out
	}

	identity, err := f.provider.ExchangeCode(ctx, ev.Code, ev.CodeVerifier)
	if err != nil {
		out := Rejected("provider error")
		out.Err = fmt.Errorf("%w: %w", auth.ErrProvider, err)
		return out
	}

	if !identity.EmailVerified {
		// provider email is trusted as asserted; flagged for audit only
		logger.Warn("federated email not verified by provider", map[string]any{
			"provider": identity.Provider,
		})
	}

	u, err := f.resolver.Resolve(ctx, identity, f.provider.Marker())
	if err != nil {
		return Failed(err)
	}

	return Success(u)
}
