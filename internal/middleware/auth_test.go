package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	raw, err := GenerateToken(42, "ada@example.com", "Leader", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Leader", claims.Role)
	assert.Equal(t, "amthub", claims.Issuer)
}

func TestParseTokenExpired(t *testing.T) {
	raw, err := GenerateToken(1, "a@b.com", "Member", -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenTampered(t *testing.T) {
	raw, err := GenerateToken(1, "a@b.com", "Member", time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(raw + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
