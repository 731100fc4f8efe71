package session

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const DefaultMemoryCapacity = 100_000

// MemoryStore keeps sessions in process, for single-instance deployments
// and tests. Entries are evicted after ttl or when capacity is exceeded;
// the manager still checks ExpiresAt on every read.
type MemoryStore struct {
	cache *expirable.LRU[string, Session]
}

func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	if capacity <= 0 {
		capacity = DefaultMemoryCapacity
	}
	return &MemoryStore{
		cache: expirable.NewLRU[string, Session](capacity, nil, ttl),
	}
}

func (m *MemoryStore) Create(_ context.Context, s Session) error {
	if s.SessionID == "" || s.UserID == "" {
		return fmt.Errorf("session: missing session_id or user_id")
	}
	m.cache.Add(s.SessionID, s)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, sessionID string) (*Session, error) {
	s, ok := m.cache.Get(sessionID)
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemoryStore) Delete(_ context.Context, sessionID string) error {
	m.cache.Remove(sessionID)
	return nil
}
