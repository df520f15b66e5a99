package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefreshToken(t *testing.T) {
	m, err := NewRefreshToken()
	require.NoError(t, err)

	assert.NotEmpty(t, m.Raw)
	assert.Len(t, m.Digest, 64)
	assert.Equal(t, DigestRefreshToken(m.Raw), m.Digest)

	// 32 random bytes in raw URL base64
	assert.Len(t, m.Raw, 43)
}

func TestNewRefreshToken_Unique(t *testing.T) {
	a, err := NewRefreshToken()
	require.NoError(t, err)
	b, err := NewRefreshToken()
	require.NoError(t, err)

	assert.NotEqual(t, a.Raw, b.Raw)
	assert.NotEqual(t, a.Digest, b.Digest)
}

func TestDigestRefreshToken_Deterministic(t *testing.T) {
	assert.Equal(t, DigestRefreshToken("token"), DigestRefreshToken("token"))
	assert.NotEqual(t, DigestRefreshToken("token"), DigestRefreshToken("other"))
}
