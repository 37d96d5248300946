package httpapi

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/webedt/webedt/internal/common"
	"github.com/webedt/webedt/internal/server/auth"
	"github.com/webedt/webedt/internal/server/models"
)

type identityContextKey struct{}

// Identity is the verified caller attached to the request context.
type Identity struct {
	UserID string
	Email  string
	Role   models.Role
}

func withIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey{}, id)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey{}).(Identity)
	return id, ok
}

// Authenticate verifies the bearer token and attaches the caller's
// Identity. A missing token is 401, a bad one 403.
func Authenticate(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get(common.AuthorizationHeader))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			claims, ok := auth.VerifyToken(token, secretKey)
			if !ok {
				writeError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}
			ctx := withIdentity(r.Context(), Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles admits only callers whose role is in roles. It must run
// after Authenticate.
func RequireRoles(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !id.Role.Valid() || !slices.Contains(roles, id.Role) {
				writeError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken returns the second space-separated part of an Authorization
// header.
func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
