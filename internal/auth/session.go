package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// Session token format: vt_<48 hex chars> (24 random bytes).
const sessionTokenBytes = 24

var sessionTokenRegex = regexp.MustCompile(`^vt_[a-f0-9]{48}$`)

// NewSessionToken generates an opaque session token for a dashboard login.
// The token is the Redis key for the session; it carries no embedded claims.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return "vt_" + hex.EncodeToString(buf), nil
}

// ValidSessionToken reports whether a raw token matches the expected format.
// Cheap pre-check before hitting Redis.
func ValidSessionToken(token string) bool {
	return sessionTokenRegex.MatchString(token)
}
