package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"fleetreserve/internal/db"
)

type contextKey string

const callerKey contextKey = "caller"

// UserStore is the lookup the middleware needs to resolve a token
// subject into a full user record.
type UserStore interface {
	GetByID(id int) (*db.AppUser, error)
}

type Middleware struct {
	secret string
	users  UserStore
}

func NewMiddleware(secret string, users UserStore) *Middleware {
	return &Middleware{secret: secret, users: users}
}

// Authenticate parses the Bearer token, loads the caller and stores it in
// the request context. Inactive users are rejected.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w, "missing bearer token")
			return
		}

		userID, err := ParseToken(m.secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			unauthorized(w, "invalid token")
			return
		}

		user, err := m.users.GetByID(userID)
		if err != nil || !user.IsActive {
			unauthorized(w, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), user)))
	})
}

// WithCaller returns a context carrying the authenticated user.
func WithCaller(ctx context.Context, user *db.AppUser) context.Context {
	return context.WithValue(ctx, callerKey, user)
}

// CallerFrom returns the authenticated user, or nil outside the middleware.
func CallerFrom(ctx context.Context) *db.AppUser {
	user, _ := ctx.Value(callerKey).(*db.AppUser)
	return user
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
