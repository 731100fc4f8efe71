package credentials

import (
	"strings"

	"auth-gateway/internal/auth"
)

const (
	MinPasswordLength = 8
	// bcrypt ignores or rejects input past 72 bytes
	MaxPasswordLength = 72
)

// Signup is the local registration form.
type Signup struct {
	Name     string
	Email    string
	Password string
}

// Validate checks required fields and password length. Email is kept
// exactly as submitted; only a missing "@" is rejected.
func (s Signup) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return &auth.ValidationError{Field: "name", Message: "Name is required"}
	}
	if strings.TrimSpace(s.Email) == "" {
		return &auth.ValidationError{Field: "email", Message: "Email is required"}
	}
	if !strings.Contains(s.Email, "@") {
		return &auth.ValidationError{Field: "email", Message: "Email is invalid"}
	}
	if s.Password == "" {
		return &auth.ValidationError{Field: "password", Message: "Password is required"}
	}
	if len(s.Password) < MinPasswordLength {
		return &auth.ValidationError{Field: "password", Message: "Password must be at least 8 characters"}
	}
	if len(s.Password) > MaxPasswordLength {
		return &auth.ValidationError{Field: "password", Message: "Password must be at most 72 bytes"}
	}
	return nil
}
