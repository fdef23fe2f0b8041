package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/smartsubstation/auth-server/internal/model"
)

var _ model.CredentialVerifier = (*BcryptVerifier)(nil)

// BcryptVerifier implements model.CredentialVerifier over bcrypt hashes.
type BcryptVerifier struct{}

// NewBcryptVerifier creates a bcrypt-backed credential verifier.
func NewBcryptVerifier() *BcryptVerifier {
	return &BcryptVerifier{}
}

// Verify compares a plaintext password with a stored bcrypt hash.
func (v *BcryptVerifier) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HashPassword generates a bcrypt hash of the password. Used by seeding and
// tests; the auth service itself only verifies.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}
