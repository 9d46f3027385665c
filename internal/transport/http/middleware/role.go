package middleware

import (
	"net/http"

	"github.com/estate-api/internal/domain"
)

// RequireKind returns middleware that allows access only to identities whose
// JWT userType matches one of the provided kinds.
func RequireKind(allowed ...domain.IdentityKind) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, kind := range allowed {
				if claims.UserType == string(kind) {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeJSONError(w, http.StatusForbidden, "forbidden")
		})
	}
}
