package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrNotFound         = errors.New("user not found")
	ErrDuplicateEmail   = errors.New("user already exists")
	ErrStoreUnavailable = errors.New("user store unavailable")
)

// Store persists user identities. Email is unique across local and
// federated registrations and is matched exactly.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, name, email, credential string) (*User, error)
}

// BunStore implements Store on top of Bun. Uniqueness is enforced by the
// users.email constraint, never by a prior lookup.
type BunStore struct {
	db      *bun.DB
	timeout time.Duration
	now     func() time.Time
}

func NewBunStore(db *bun.DB, timeout time.Duration) *BunStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &BunStore{
		db:      db,
		timeout: timeout,
		now:     time.Now,
	}
}

func (s *BunStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, "u.email = ?", email)
}

func (s *BunStore) FindByID(ctx context.Context, id string) (*User, error) {
	return s.findOne(ctx, "u.id = ?", id)
}

func (s *BunStore) findOne(ctx context.Context, where string, arg any) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	u := new(User)
	err := s.db.NewSelect().
		Model(u).
		Where(where, arg).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w: %w", ErrStoreUnavailable, err)
	}
	return u, nil
}

// Create inserts a new user. Of several concurrent creates for the same
// email exactly one succeeds; the rest get ErrDuplicateEmail.
func (s *BunStore) Create(ctx context.Context, name, email, credential string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	u := &User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  credential,
		CreatedAt: s.now().UTC(),
	}

	res, err := s.db.NewInsert().
		Model(u).
		On("CONFLICT (email) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w: %w", ErrStoreUnavailable, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("create user: %w: %w", ErrStoreUnavailable, err)
	}
	if n == 0 {
		return nil, ErrDuplicateEmail
	}

	return u, nil
}
