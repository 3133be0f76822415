package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/auth"
)

type userKey string

const usernameKey userKey = "username"

// AuthJWT guards protected routes. It requires an "Authorization: Bearer"
// header, verifies the token through the auth service, and stores the token
// subject (the account username) on the request context.
func AuthJWT(svc *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization", http.StatusUnauthorized)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "invalid authorization", http.StatusUnauthorized)
				return
			}
			username, err := svc.Subject(parts[1])
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UsernameFromContext returns the authenticated username or "".
func UsernameFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(usernameKey).(string); ok {
		return v
	}
	return ""
}

// ContextWithUsername injects a username, primarily for handler tests.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	if strings.TrimSpace(username) == "" {
		return ctx
	}
	return context.WithValue(ctx, usernameKey, username)
}
