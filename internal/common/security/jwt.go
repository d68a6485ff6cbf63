package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager issues and verifies HS256 bearer tokens. It is built once
// at startup from the configured signing secret and injected wherever
// tokens are needed; there is no package-level key state.
type JWTManager struct {
	auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewJWTManager(secret []byte, ttl time.Duration) *JWTManager {
	return &JWTManager{
		auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
	}
}

// Auth exposes the underlying verifier for the jwtauth middleware.
func (m *JWTManager) Auth() *jwtauth.JWTAuth {
	return m.auth
}

// GenerateToken signs a token carrying the user's identity claims.
// Each token gets a unique jti so it can be individually revoked.
func (m *JWTManager) GenerateToken(userID, name, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"name":    name,
		"role":    role,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(m.ttl).Unix(),
	}
	_, tokenString, err := m.auth.Encode(claims)
	return tokenString, err
}

// Helper functions to extract claims, used by middleware and handlers.
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUserNameFromClaims(claims jwt.MapClaims) (string, error) {
	name, ok := claims["name"].(string)
	if !ok {
		return "", errors.New("name claim is missing or not a string")
	}
	return name, nil
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}

func GetTokenIDFromClaims(claims jwt.MapClaims) (string, error) {
	jti, ok := claims["jti"].(string)
	if !ok {
		return "", errors.New("jti claim is missing or not a string")
	}
	return jti, nil
}

// GetExpiryFromClaims returns the token's expiry. jwtauth decodes the
// exp claim as a time.Time when the token comes through the verifier.
func GetExpiryFromClaims(claims jwt.MapClaims) (time.Time, error) {
	exp, ok := claims["exp"].(time.Time)
	if !ok {
		return time.Time{}, errors.New("exp claim is missing or not a timestamp")
	}
	return exp, nil
}
