package credentials

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"auth-gateway/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const DefaultCost = 10

// Hasher hashes and verifies local passwords with bcrypt. At most
// `concurrency` hashing operations run at once; callers beyond that wait
// for a slot or for their context to end.
type Hasher struct {
	cost  int
	slots *semaphore.Weighted
}

func NewHasher(cost, concurrency int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0)
	}
	return &Hasher{
		cost:  cost,
		slots: semaphore.NewWeighted(int64(concurrency)),
	}
}

// Hash returns the salted bcrypt hash of plaintext.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	defer h.slots.Release(1)

	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A malformed hash, such as
// a federated sentinel, is logged and reported as a mismatch. The error is
// non-nil only when ctx ends before a hashing slot frees up.
func (h *Hasher) Verify(ctx context.Context, hash, plaintext string) (bool, error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("verify password: %w", err)
	}
	defer h.slots.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		logger.Warn("password hash comparison failed", map[string]any{
			"error": err.Error(),
		})
		return false, nil
	}
}
