package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected means the evidence did not authenticate anyone. Callers
	// must not tell the user which factor failed.
	ErrRejected = errors.New("authentication rejected")

	// ErrProvider marks a denied or malformed assertion from an identity
	// provider. It is reported to users as a rejection.
	ErrProvider = errors.New("identity provider error")

	ErrNoSuchStrategy = errors.New("no such strategy")
)

// ValidationError is a user-visible problem with a submitted form field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
