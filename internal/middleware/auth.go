package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"calendar-service/internal/auth"
	"calendar-service/internal/model"
	"calendar-service/internal/store"
)

type ctxKey string

const userKey ctxKey = "user"

// UserLoader resolves a token subject to a user record.
type UserLoader interface {
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// Auth verifies the bearer token, loads the user, and rejects inactive
// accounts. The authenticated user rides on the request context.
func Auth(secret string, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ""
			if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
			if raw == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}
			uid, err := claims.UserID()
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			u, err := users.UserByID(r.Context(), uid)
			if err != nil {
				if errors.Is(err, store.ErrUserNotFound) {
					unauthorized(w, "unknown user")
					return
				}
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			if !u.Active() {
				forbidden(w, "inactive user")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CurrentUser returns the authenticated user, or nil outside Auth.
func CurrentUser(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey).(*model.User)
	return u
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeJSONError(w, http.StatusUnauthorized, msg)
}

func forbidden(w http.ResponseWriter, msg string) {
	writeJSONError(w, http.StatusForbidden, msg)
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
