package gateway

import (
	"context"
	"errors"
	"fmt"

	"auth-gateway/internal/auth"
	"auth-gateway/internal/auth/credentials"
	"auth-gateway/internal/auth/strategy"
	"auth-gateway/internal/logger"
	"auth-gateway/internal/metrics"
	"auth-gateway/internal/session"
	"auth-gateway/internal/user"
)

// State is where an authentication attempt ended up.
type State int

const (
	Unauthenticated State = iota
	Pending
	Authenticated
	SessionActive
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Authenticated:
		return "authenticated"
	case SessionActive:
		return "session_active"
	default:
		return "unauthenticated"
	}
}

// Result is returned for every attempt that got past strategy lookup.
// Token is set only when State is SessionActive.
type Result struct {
	State State
	User  *user.User
	Token session.Token
}

// Gateway routes evidence to a strategy and turns successful outcomes
// into sessions. It holds no state of its own.
type Gateway struct {
	strategies *strategy.Registry
	sessions   *session.Manager
	signups    *credentials.Service
	metrics    *metrics.Metrics
}

func New(
	strategies *strategy.Registry,
	sessions *session.Manager,
	signups *credentials.Service,
	m *metrics.Metrics,
) *Gateway {
	if m == nil {
		m = metrics.NewNop()
	}
	return &Gateway{
		strategies: strategies,
		sessions:   sessions,
		signups:    signups,
		metrics:    m,
	}
}

// Authenticate runs the named strategy on evidence and issues a session on
// success. Rejections return auth.ErrRejected; strategy errors return the
// cause. In both cases the result is Unauthenticated and no session exists.
func (g *Gateway) Authenticate(ctx context.Context, name string, evidence strategy.Evidence) (*Result, error) {
	s, err := g.strategies.Get(name)
	if err != nil {
		return &Result{State: Unauthenticated}, err
	}

	res := &Result{State: Pending}
	out := s.Authenticate(ctx, evidence)

	switch out.Status {
	case strategy.StatusSuccess:
		res.State = Authenticated
		res.User = out.User

	case strategy.StatusRejected:
		g.metrics.AuthAttempt(name, metrics.OutcomeRejected)
		fields := map[string]any{"strategy": name, "reason": out.Reason}
		if out.Err != nil {
			fields["error"] = out.Err.Error()
		}
		logger.Info("authentication rejected", fields)
		return &Result{State: Unauthenticated}, fmt.Errorf("%w: %s", auth.ErrRejected, out.Reason)

	default:
		g.metrics.AuthAttempt(name, metrics.OutcomeError)
		cause := out.Err
		if cause == nil {
			cause = errors.New("strategy failed without a cause")
		}
		logger.Error("authentication failed", map[string]any{
			"strategy": name,
			"error":    cause.Error(),
		})
		return &Result{State: Unauthenticated}, cause
	}

	tok, err := g.sessions.Issue(ctx, res.User)
	if err != nil {
		g.metrics.AuthAttempt(name, metrics.OutcomeError)
		logger.Error("session issue failed", map[string]any{
			"strategy": name,
			"user_id":  res.User.ID,
			"error":    err.Error(),
		})
		return &Result{State: Unauthenticated}, err
	}

	g.metrics.AuthAttempt(name, metrics.OutcomeSuccess)
	g.metrics.SessionIssued()
	logger.Info("session issued", map[string]any{
		"strategy": name,
		"user_id":  res.User.ID,
	})

	res.State = SessionActive
	res.Token = tok
	return res, nil
}

// Signup registers a local user. It does not log the user in.
func (g *Gateway) Signup(ctx context.Context, in credentials.Signup) (*user.User, error) {
	u, err := g.signups.Register(ctx, in)

	var verr *auth.ValidationError
	switch {
	case err == nil:
		g.metrics.Signup(metrics.OutcomeSuccess)
		logger.Info("user registered", map[string]any{"user_id": u.ID})
	case errors.As(err, &verr):
		g.metrics.Signup(metrics.OutcomeInvalid)
	case errors.Is(err, user.ErrDuplicateEmail):
		g.metrics.Signup(metrics.OutcomeDuplicate)
	default:
		g.metrics.Signup(metrics.OutcomeError)
		logger.Error("signup failed", map[string]any{"error": err.Error()})
	}

	return u, err
}

// BeginFederated returns the provider authorization URL for the redirect
// leg. state and codeChallenge are generated and kept by the caller.
func (g *Gateway) BeginFederated(provider, state, codeChallenge string) (string, error) {
	rd, err := g.strategies.Redirector(provider)
	if err != nil {
		return "", err
	}
	return rd.AuthCodeURL(state, codeChallenge), nil
}

// Resume re-enters SessionActive for a presented token. Invalid tokens
// return session.ErrInvalidSession and mean Unauthenticated.
func (g *Gateway) Resume(ctx context.Context, token string) (*user.User, error) {
	u, err := g.sessions.Resolve(ctx, token)
	if err != nil && !errors.Is(err, session.ErrInvalidSession) {
		logger.Error("session resolve failed", map[string]any{"error": err.Error()})
	}
	return u, err
}

// Logout revokes the session behind token. Unknown tokens are fine.
func (g *Gateway) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := g.sessions.Revoke(ctx, token); err != nil {
		logger.Error("session revoke failed", map[string]any{"error": err.Error()})
		return err
	}
	g.metrics.SessionRevoked()
	return nil
}

// Providers lists the strategies that support a redirect leg.
func (g *Gateway) Providers() []string {
	var names []string
	for _, name := range g.strategies.Names() {
		if _, err := g.strategies.Redirector(name); err == nil {
			names = append(names, name)
		}
	}
	return names
}
