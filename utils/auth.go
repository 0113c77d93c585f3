package utils

import (
	"errors"
	"fl350-gear-hub/models"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var ErrInvalidIdentityToken = errors.New("invalid identity token")

// IdentityClaims are the claims carried by identity provider session tokens
type IdentityClaims struct {
	Email string `json:"email,omitempty"`
	jwt.StandardClaims
}

// GenerateIdentityToken issues a session token for a user, mainly for local development
func GenerateIdentityToken(secret []byte, identity models.Identity, ttl time.Duration) (string, error) {
	claims := &IdentityClaims{
		Email: identity.Email,
		StandardClaims: jwt.StandardClaims{
			Subject:   identity.ID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign identity token: %w", err)
	}
	return tokenString, nil
}

// ParseIdentityToken validates an HS256 session token and returns its identity
func ParseIdentityToken(secret []byte, tokenStr string) (models.Identity, error) {
	if len(secret) == 0 {
		return models.Identity{}, fmt.Errorf("%w: no secret configured", ErrInvalidIdentityToken)
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return models.Identity{}, fmt.Errorf("%w: %v", ErrInvalidIdentityToken, err)
	}
	if claims.Subject == "" {
		return models.Identity{}, fmt.Errorf("%w: missing subject", ErrInvalidIdentityToken)
	}

	return models.Identity{ID: claims.Subject, Email: claims.Email}, nil
}
