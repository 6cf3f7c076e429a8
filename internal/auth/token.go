package auth

import (
	"crypto/rand"
	"encoding/base64"
)

// sessionTokenBytes is the entropy of a session token before encoding.
const sessionTokenBytes = 32

// NewSessionToken returns an opaque, unguessable token for the session
// cookie. The token itself is the lookup key; it is never signed or parsed.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
