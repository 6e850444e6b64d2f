package auth

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionToken(t *testing.T) {
	token, err := NewSessionToken()
	require.NoError(t, err)

	raw, err := hex.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, tokenBytes)
}

func TestNewSessionTokenUnique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := NewSessionToken()
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "token repeated")
		seen[token] = struct{}{}
	}
}
