package strategy

import (
	"context"
	"errors"
	"fmt"

	"auth-gateway/internal/auth/credentials"
	"auth-gateway/internal/user"
)

const LocalName = "local"

// Local authenticates email/password pairs against stored bcrypt hashes.
type Local struct {
	users  user.Store
	hasher *credentials.Hasher
}

func NewLocal(users user.Store, hasher *credentials.Hasher) *Local {
	return &Local{users: users, hasher: hasher}
}

func (l *Local) Name() string {
	return LocalName
}

func (l *Local) Authenticate(ctx context.Context, evidence Evidence) Outcome {
	ev, ok := evidence.(LocalEvidence)
	if !ok {
		return Failed(fmt.Errorf("local strategy: unexpected evidence %T", evidence))
	}

	u, err := l.users.FindByEmail(ctx, ev.Email)
	if errors.Is(err, user.ErrNotFound) {
		return Rejected("user not found")
	}
	if err != nil {
		return Failed(err)
	}

	match, err := l.hasher.Verify(ctx, u.Password, ev.Password)
	if err != nil {
		return Failed(err)
	}
	if !match {
		return Rejected("incorrect password")
	}

	return Success(u)
}
