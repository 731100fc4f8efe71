package resolver

import (
	"context"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/user"
)

// Resolver maps a provider identity to a local user, creating one with
// marker as its credential on first sight. Users are matched by email
// only, so an account created by signup is reused as is.
type Resolver interface {
	Resolve(ctx context.Context, identity *auth.Identity, marker string) (*user.User, error)
}
