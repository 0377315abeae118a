package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/nutrigood/nutrigood-backend/internal/api/response"
	"github.com/nutrigood/nutrigood-backend/internal/auth"
)

const identityKey contextKey = "identity"

// Auth is middleware guarding every handler that touches user-owned data.
// It requires an "Authorization: Bearer <token>" header, verifies the token
// and attaches the resulting Identity to the request context. On any
// failure the pipeline is short-circuited with 401 and the downstream
// handler never executes.
func Auth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")
			if !found || scheme != "Bearer" || token == "" {
				response.Fail(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				response.Fail(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, &auth.Identity{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated Identity from the request context.
func GetIdentity(ctx context.Context) *auth.Identity {
	if id, ok := ctx.Value(identityKey).(*auth.Identity); ok {
		return id
	}
	return nil
}
