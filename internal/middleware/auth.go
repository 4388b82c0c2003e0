package middleware

import (
	"context"
	"net/http"
	"strings"

	"postboard/internal/models"
	"postboard/internal/utils"
)

type ctxKey string

const ctxUserKey ctxKey = "current_user"

// TokenVerifier checks a bearer token and returns the user id it
// carries.
type TokenVerifier interface {
	Verify(token string) (int64, error)
}

// UserLookup resolves a verified token subject to a live user record.
// A token for a user deleted since issuance must not authenticate.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (models.User, error)
}

// Auth guards a route group with bearer authentication. On success the
// resolved user is attached to the request context; every failure mode
// answers 401 with the same generic body.
func Auth(tokens TokenVerifier, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				reject(w)
				return
			}

			parts := strings.SplitN(auth, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				reject(w)
				return
			}

			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				reject(w)
				return
			}

			userID, err := tokens.Verify(raw)
			if err != nil {
				reject(w)
				return
			}

			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				reject(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func reject(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	utils.JSONError(w, http.StatusUnauthorized, "could not validate credentials")
}

// WithUser returns ctx carrying user as the authenticated identity.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, ctxUserKey, user)
}

// CurrentUser returns the authenticated user attached by Auth.
func CurrentUser(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(ctxUserKey).(models.User)
	return user, ok
}
