package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes gives 256 bits of entropy per session token.
const tokenBytes = 32

// NewSessionToken returns an opaque bearer token. The token carries no
// structure; it is only meaningful as a lookup key into the session store.
func NewSessionToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
