package credentials

import (
	"context"
	"errors"

	"auth-gateway/internal/user"
)

// Service registers local users.
type Service struct {
	users  user.Store
	hasher *Hasher
}

func NewService(users user.Store, hasher *Hasher) *Service {
	return &Service{users: users, hasher: hasher}
}

// Register validates the form, hashes the password and creates the user.
// It returns *auth.ValidationError, user.ErrDuplicateEmail or a wrapped
// user.ErrStoreUnavailable.
func (s *Service) Register(ctx context.Context, in Signup) (*user.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	// 1. Skip hashing when the email is obviously taken
	_, err := s.users.FindByEmail(ctx, in.Email)
	if err == nil {
		return nil, user.ErrDuplicateEmail
	}
	if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	// 2. Hash password
	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return nil, err
	}

	// 3. Insert; a concurrent signup for the same email loses here
	return s.users.Create(ctx, in.Name, in.Email, hash)
}
