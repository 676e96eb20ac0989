package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/didacticiel/Gpresence/internal/domain/user"
	"github.com/didacticiel/Gpresence/internal/handler/http/response"
)

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return RequireAnyPermission(permission)
}

// RequireAnyPermission lets the request through when the caller's role
// carries at least one of the permissions.
func RequireAnyPermission(permissions ...user.Permission) func(http.Handler) http.Handler {
	required := make([]string, len(permissions))
	for i, p := range permissions {
		required[i] = string(p)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", strings.Join(required, "' or '")))
				return
			}

			for _, p := range permissions {
				if identity.Can(p) {
					next.ServeHTTP(w, r)
					return
				}
			}

			response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", strings.Join(required, "' or '"), identity.Role))
		})
	}
}
