package db

import (
	"context"
	"fmt"

	"auth-gateway/internal/user"

	"github.com/uptrace/bun"
)

// Migrate creates the users relation if it does not exist. The UNIQUE
// constraint on email is what makes concurrent signups safe.
func Migrate(ctx context.Context, bdb *bun.DB) error {
	_, err := bdb.NewCreateTable().
		Model((*user.User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}
	return nil
}
