package auth

import (
	"testing"
	"time"

	"github.com/avdeyev/bizdash/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(42, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := GetUserIDFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestExpiredToken(t *testing.T) {
	token, err := GenerateToken(42, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, testSecret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestWrongSecret(t *testing.T) {
	token, err := GenerateToken(42, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestGarbageToken(t *testing.T) {
	_, err := GetUserIDFromToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestUniqueTokenIDs(t *testing.T) {
	a, err := GenerateToken(1, testSecret, time.Hour)
	require.NoError(t, err)
	b, err := GenerateToken(1, testSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
