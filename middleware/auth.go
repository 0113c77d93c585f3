package middleware

import (
	"context"
	"fl350-gear-hub/models"
	"fl350-gear-hub/utils"
	"net/http"
	"strings"
)

// Key type for context
type contextKey string

const (
	IdentityContextKey  = contextKey("identity")
	RequestIDContextKey = contextKey("request_id")
)

// IdentityMiddleware attaches the identity from a valid bearer session token.
// It never rejects a request: a missing or invalid token means signed out.
func IdentityMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := utils.ParseIdentityToken(secret, tokenStr)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the signed-in identity, if any
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(models.Identity)
	return identity, ok
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
