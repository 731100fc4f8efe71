package resolver

import (
	"context"
	"errors"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/logger"
	"auth-gateway/internal/user"
)

// StoreResolver links federated identities to users by email with
// find-or-create semantics. The first registration for an email wins:
// an existing record is returned unchanged, whatever strategy made it.
type StoreResolver struct {
	users user.Store
}

func NewStoreResolver(users user.Store) *StoreResolver {
	return &StoreResolver{users: users}
}

func (r *StoreResolver) Resolve(
	ctx context.Context,
	identity *auth.Identity,
	marker string,
) (*user.User, error) {

	if identity == nil || identity.Email == "" {
		return nil, errors.New("resolver: identity without email")
	}

	// 1. Existing user for this email
	u, err := r.users.FindByEmail(ctx, identity.Email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	// 2. First login for this email
	u, err = r.users.Create(ctx, identity.Name, identity.Email, marker)
	if err == nil {
		logger.Info("federated user created", map[string]any{
			"provider": identity.Provider,
			"user_id":  u.ID,
		})
		return u, nil
	}
	if !errors.Is(err, user.ErrDuplicateEmail) {
		return nil, err
	}

	// 3. Lost a race with a concurrent create; reuse the winner
	return r.users.FindByEmail(ctx, identity.Email)
}
