package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestDecodeJWT(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
		"id":  "0b5f3c62-4d0a-4f7e-9b55-3f1c2a8e7d10",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	claims, err := DecodeJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "0b5f3c62-4d0a-4f7e-9b55-3f1c2a8e7d10", claims["id"])
}

func TestDecodeJWTWrongSecret(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"id": "x"})

	_, err := DecodeJWT(token, secret)
	assert.Error(t, err)
}

func TestDecodeJWTExpired(t *testing.T) {
	token := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
		"id":  "x",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	_, err := DecodeJWT(token, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestDecodeJWTRejectsNone(t *testing.T) {
	token := sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"id": "x"})

	_, err := DecodeJWT(token, secret)
	assert.Error(t, err)
}

func TestDecodeJWTGarbage(t *testing.T) {
	_, err := DecodeJWT("not-a-token", secret)
	assert.Error(t, err)
}
