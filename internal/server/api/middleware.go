package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/avdeyev/bizdash/internal/common"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// UserID extracts the authenticated user's ID from a request context
// populated by requireAuth.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// requireAuth parses the Authorization header, verifies the bearer token and
// stores the user ID in the request context. Missing, malformed, invalid and
// expired tokens all answer 401; the client reacts to all of them the same
// way, by dropping its session.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get(common.AuthHeaderName)
		if header == "" || !strings.HasPrefix(header, common.BearerPrefix) {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
			return
		}

		token := strings.TrimPrefix(header, common.BearerPrefix)

		userID, err := h.users.VerifyToken(token)
		if err != nil {
			code := "invalid_token"
			if errors.Is(err, common.ErrTokenExpired) {
				code = "token_expired"
			}
			writeError(w, http.StatusUnauthorized, code, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next(w, r.WithContext(ctx))
	}
}
