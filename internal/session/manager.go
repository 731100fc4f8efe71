package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"auth-gateway/internal/logger"
	"auth-gateway/internal/user"

	"github.com/gorilla/securecookie"
)

const DefaultTTL = 7 * 24 * time.Hour

// codecName binds signed values to their purpose; a value signed for
// another cookie name fails to decode.
const codecName = "session"

var ErrInvalidSession = errors.New("invalid session")

// Token is what the client holds: the signed session id and its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Manager issues, resolves and revokes sessions. Sessions are held
// server-side in Store; the client token is the session id signed with
// the session secret, so forged or tampered tokens never reach the store.
type Manager struct {
	store Store
	users user.Store
	codec *securecookie.SecureCookie
	ttl   time.Duration
	now   func() time.Time
}

func NewManager(store Store, users user.Store, secret []byte, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	codec := securecookie.New(secret, nil)
	codec.MaxAge(int(ttl.Seconds()))

	return &Manager{
		store: store,
		users: users,
		codec: codec,
		ttl:   ttl,
		now:   time.Now,
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a session bound to u.ID that expires ttl from now.
func (m *Manager) Issue(ctx context.Context, u *user.User) (Token, error) {
	if u == nil || u.ID == "" {
		return Token{}, errors.New("session: cannot issue for empty user")
	}

	sid, err := GenerateID()
	if err != nil {
		return Token{}, err
	}

	now := m.now()
	sess := Session{
		SessionID: sid,
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Create(ctx, sess); err != nil {
		return Token{}, fmt.Errorf("session: persist: %w", err)
	}

	value, err := m.codec.Encode(codecName, sid)
	if err != nil {
		return Token{}, fmt.Errorf("session: sign: %w", err)
	}

	return Token{Value: value, ExpiresAt: sess.ExpiresAt}, nil
}

// Resolve maps a token back to its user. Bad signatures, unknown,
// revoked or expired sessions and vanished users all yield
// ErrInvalidSession; other errors mean the stores failed.
func (m *Manager) Resolve(ctx context.Context, value string) (*user.User, error) {
	sid, ok := m.decode(value)
	if !ok {
		return nil, ErrInvalidSession
	}

	sess, err := m.store.Get(ctx, sid)
	if err != nil {
		return nil, fmt.Errorf("session: load: %w", err)
	}
	if sess == nil {
		return nil, ErrInvalidSession
	}

	if !m.now().Before(sess.ExpiresAt) {
		if err := m.store.Delete(ctx, sid); err != nil {
			logger.Warn("failed to delete expired session", map[string]any{
				"error": err.Error(),
			})
		}
		return nil, ErrInvalidSession
	}

	u, err := m.users.FindByID(ctx, sess.UserID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Revoke makes the token unusable immediately. Revoking an unknown,
// already revoked or undecodable token is not an error.
func (m *Manager) Revoke(ctx context.Context, value string) error {
	sid, ok := m.decode(value)
	if !ok {
		return nil
	}
	if err := m.store.Delete(ctx, sid); err != nil {
		return fmt.Errorf("session: revoke: %w", err)
	}
	return nil
}

func (m *Manager) decode(value string) (string, bool) {
	if value == "" {
		return "", false
	}
	var sid string
	if err := m.codec.Decode(codecName, value, &sid); err != nil || sid == "" {
		return "", false
	}
	return sid, true
}
