package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)
	return tok
}

func TestExtractClaims(t *testing.T) {
	tok := signed(t, jwt.MapClaims{
		"sub":   "u-1",
		"email": "vet@example.com",
		"role":  "admin",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := ExtractClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "vet@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestExtractClaims_AlternateIDKey(t *testing.T) {
	tok := signed(t, jwt.MapClaims{"id": "mongo-id", "role": "customer"})

	claims, err := ExtractClaims(tok)
	require.NoError(t, err)
	assert.Equal(t, "mongo-id", claims.UserID)
}

func TestExtractClaims_Malformed(t *testing.T) {
	_, err := ExtractClaims("")
	assert.Error(t, err)

	_, err = ExtractClaims("not.a.jwt")
	assert.Error(t, err)
}

func TestIsExpired(t *testing.T) {
	now := time.Now()

	fresh := signed(t, jwt.MapClaims{"sub": "u", "exp": now.Add(time.Minute).Unix()})
	stale := signed(t, jwt.MapClaims{"sub": "u", "exp": now.Add(-time.Minute).Unix()})
	forever := signed(t, jwt.MapClaims{"sub": "u"})

	assert.False(t, IsExpired(fresh, now))
	assert.True(t, IsExpired(stale, now))
	assert.False(t, IsExpired(forever, now))
	assert.True(t, IsExpired("garbage", now))

	exp, ok, err := TokenExpiry(fresh)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.WithinDuration(t, now.Add(time.Minute), exp, time.Second)
}
