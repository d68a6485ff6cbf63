package security

import (
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-signing-secret"

func parseClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()
	parsed, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestGenerateToken_RoundTripClaims(t *testing.T) {
	m := NewJWTManager([]byte(testSecret), 30*24*time.Hour)

	tokenString, err := m.GenerateToken("user-1", "Alice", "user")
	require.NoError(t, err)

	claims := parseClaims(t, tokenString, testSecret)
	require.Equal(t, "user-1", claims["user_id"])
	require.Equal(t, "Alice", claims["name"])
	require.Equal(t, "user", claims["role"])
	require.NotEmpty(t, claims["jti"])
}

func TestGenerateToken_UniqueJTI(t *testing.T) {
	m := NewJWTManager([]byte(testSecret), time.Hour)

	t1, err := m.GenerateToken("user-1", "Alice", "user")
	require.NoError(t, err)
	t2, err := m.GenerateToken("user-1", "Alice", "user")
	require.NoError(t, err)

	require.NotEqual(t, parseClaims(t, t1, testSecret)["jti"], parseClaims(t, t2, testSecret)["jti"])
}

func TestGenerateToken_ExpirySetFromTTL(t *testing.T) {
	ttl := 30 * 24 * time.Hour
	m := NewJWTManager([]byte(testSecret), ttl)

	tokenString, err := m.GenerateToken("user-1", "Alice", "user")
	require.NoError(t, err)

	claims := parseClaims(t, tokenString, testSecret)
	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	require.InDelta(t, time.Now().Add(ttl).Unix(), int64(exp), 5)
}

func TestVerify_ExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager([]byte(testSecret), -time.Minute)

	tokenString, err := m.GenerateToken("user-1", "Alice", "user")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(m.Auth(), tokenString)
	require.Error(t, err)
}

func TestVerify_WrongSecretRejected(t *testing.T) {
	m := NewJWTManager([]byte(testSecret), time.Hour)
	other := NewJWTManager([]byte("some-other-secret"), time.Hour)

	tokenString, err := m.GenerateToken("user-1", "Alice", "user")
	require.NoError(t, err)

	_, err = jwtauth.VerifyToken(other.Auth(), tokenString)
	require.Error(t, err)
}

func TestVerify_MalformedTokenRejected(t *testing.T) {
	m := NewJWTManager([]byte(testSecret), time.Hour)

	_, err := jwtauth.VerifyToken(m.Auth(), "not.a.token")
	require.Error(t, err)
}

func TestVerify_ValidTokenAccepted(t *testing.T) {
	m := NewJWTManager([]byte(testSecret), time.Hour)

	tokenString, err := m.GenerateToken("user-1", "Alice", "provider")
	require.NoError(t, err)

	token, err := jwtauth.VerifyToken(m.Auth(), tokenString)
	require.NoError(t, err)

	role, ok := token.Get("role")
	require.True(t, ok)
	require.Equal(t, "provider", role)
}
