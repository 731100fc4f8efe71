package strategy

import (
	"context"

	"auth-gateway/internal/user"
)

// Strategy turns authentication evidence into an Outcome. Strategies
// never create sessions.
type Strategy interface {
	Name() string
	Authenticate(ctx context.Context, evidence Evidence) Outcome
}

// Evidence is what a request presents to a strategy: LocalEvidence or
// CallbackEvidence.
type Evidence interface {
	evidence()
}

type LocalEvidence struct {
	Email    string
	Password string
}

// CallbackEvidence is the provider callback payload after state checks.
type CallbackEvidence struct {
	Code         string
	CodeVerifier string
}

func (LocalEvidence) evidence()    {}
func (CallbackEvidence) evidence() {}

type Status int

const (
	StatusSuccess Status = iota
	StatusRejected
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusRejected:
		return "rejected"
	default:
		return "error"
	}
}

// Outcome is the result of one authentication attempt. User is set on
// success, Reason on rejection, Err on error (and optionally on rejection
// to carry the underlying cause for logs).
type Outcome struct {
	Status Status
	User   *user.User
	Reason string
	Err    error
}

func Success(u *user.User) Outcome {
	return Outcome{Status: StatusSuccess, User: u}
}

func Rejected(reason string) Outcome {
	return Outcome{Status: StatusRejected, Reason: reason}
}

func Failed(err error) Outcome {
	return Outcome{Status: StatusError, Err: err}
}
