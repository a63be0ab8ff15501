package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const DefaultBcryptCost = 12

// HashToken produces the bcrypt hash stored in ADMIN_TOKEN_HASH.
func HashToken(token string) (string, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return "", fmt.Errorf("token is required")
	}
	if len(trimmed) < 16 {
		return "", fmt.Errorf("token must be at least 16 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(trimmed), DefaultBcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash token: %w", err)
	}
	return string(hash), nil
}

// Verifier checks admin bearer tokens against one configured hash. A
// Verifier with no hash rejects everything.
type Verifier struct {
	hash []byte
}

func NewVerifier(hash string) *Verifier {
	trimmed := strings.TrimSpace(hash)
	if trimmed == "" {
		return &Verifier{}
	}
	return &Verifier{hash: []byte(trimmed)}
}

func (v *Verifier) Enabled() bool {
	return v != nil && len(v.hash) > 0
}

func (v *Verifier) Verify(token string) bool {
	if !v.Enabled() {
		return false
	}
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(v.hash, []byte(trimmed)) == nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
