package session

import (
	"context"
	"time"
)

// Session binds a session id to a user id until ExpiresAt. It never
// carries the user record or any credential.
type Session struct {
	SessionID string    `json:"sid"`
	UserID    string    `json:"uid"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"` // absolute, not sliding
}

// Store defines how sessions are stored and retrieved. Get returns
// (nil, nil) for unknown sessions; Delete of an unknown id is not an error.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
