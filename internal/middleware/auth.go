package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/auth"
	"github.com/sarenityrhain6-cmyk/Mindspace-app/internal/domain"
)

// UserLookup resolves a token subject (email) to a stored user.
type UserLookup func(ctx context.Context, email string) (*domain.User, error)

type userContextKey struct{}

// RequireUser gates a route group on a valid bearer token. The token
// subject is resolved through lookup and the full user is injected into
// the request context; every failure mode is the same 401 so callers
// cannot probe which check rejected them.
func RequireUser(secret []byte, lookup UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "not authenticated")
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				unauthorized(w, "not authenticated")
				return
			}
			subject, err := auth.DecodeToken(secret, parts[1])
			if err != nil {
				unauthorized(w, "invalid token")
				return
			}
			user, err := lookup(r.Context(), subject)
			if err != nil {
				unauthorized(w, "user not found")
				return
			}
			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user injected by RequireUser.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userContextKey{}).(*domain.User)
	return u, ok
}

// ContextWithUser injects a user for handler tests.
func ContextWithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": message,
	})
}
