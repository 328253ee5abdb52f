package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/virtuwear/wardrobe-backend/errs"
)

// Claims carries the authenticated user's id alongside the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// GenerateToken issues a signed HS256 bearer token for the user.
func GenerateToken(userID string, secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("JWT secret is not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})
	return token.SignedString(secret)
}

// ParseToken validates a token's signature and expiry and returns the user id
// it carries. Any failure is reported as errs.ErrAuth.
func ParseToken(tokenString string, secret []byte) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid or expired token: %w", errs.ErrAuth)
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("token carries no user id: %w", errs.ErrAuth)
	}
	return claims.UserID, nil
}
