package session

import (
	"fmt"

	"auth-gateway/internal/utils"
)

// idBytes is the session id entropy: 32 bytes = 256 bits.
const idBytes = 32

// GenerateID generates a cryptographically secure session ID.
func GenerateID() (string, error) {
	id, err := utils.RandomString(idBytes)
	if err != nil {
		return "", fmt.Errorf("session: failed to generate id: %w", err)
	}
	return id, nil
}
