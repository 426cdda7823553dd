package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	a, err := GenerateToken()
	require.NoError(t, err)
	b, err := GenerateToken()
	require.NoError(t, err)

	assert.Len(t, a, 64, "32 random bytes hex-encoded")
	assert.NotEqual(t, a, b)
}

func TestHashToken(t *testing.T) {
	digest := HashToken("some-token")

	assert.Len(t, digest, 64, "sha256 hex digest")
	assert.Equal(t, digest, HashToken("some-token"), "digest must be deterministic")
	assert.NotEqual(t, digest, HashToken("other-token"))
	assert.NotEqual(t, "some-token", digest)
}
