package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", "worker", time.Hour)
	require.NoError(t, err)

	sub, role, err := ExtractIdentityFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
	assert.Equal(t, "worker", role)
}

func TestExtractRejectsGarbage(t *testing.T) {
	_, _, err := ExtractIdentityFromToken("not-a-token")
	assert.Error(t, err)

	_, _, err = ExtractIdentityFromToken("")
	assert.Error(t, err)
}

func TestExtractRejectsExpiredToken(t *testing.T) {
	token, err := GenerateToken("user-1", "client", -time.Minute)
	require.NoError(t, err)

	_, _, err = ExtractIdentityFromToken(token)
	assert.Error(t, err)
}

func TestExtractRejectsTamperedToken(t *testing.T) {
	token, err := GenerateToken("user-1", "client", time.Hour)
	require.NoError(t, err)

	_, _, err = ExtractIdentityFromToken(token + "x")
	assert.Error(t, err)
}
