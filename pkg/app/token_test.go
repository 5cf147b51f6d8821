package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerateAndParse(t *testing.T) {
	tm := NewTokenManager(TokenConfig{
		SecretKey: "test-secret",
		Expiry:    time.Hour,
	})

	token, err := tm.Generate(42, "alice", "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UID)
	assert.Equal(t, "alice", claims.Nickname)
	assert.Equal(t, "127.0.0.1", claims.IP)
	assert.Equal(t, DefaultTokenIssuer, claims.Issuer)
}

func TestTokenParseWrongSecret(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "secret-a"})

	token, err := tm.Generate(1, "bob", "10.0.0.1")
	require.NoError(t, err)

	_, err = ParseTokenWithKey(token, "secret-b")
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	tm := NewTokenManager(TokenConfig{
		SecretKey: "test-secret",
		Expiry:    -time.Minute,
	})

	token, err := tm.Generate(7, "carol", "192.168.1.2")
	require.NoError(t, err)

	err = tm.Validate(token)
	assert.Error(t, err)
}

func TestTokenGarbageInput(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "test-secret"})
	assert.Error(t, tm.Validate("not-a-jwt"))
	assert.Error(t, tm.Validate(""))
}
