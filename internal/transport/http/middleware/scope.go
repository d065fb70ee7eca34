package middleware

import (
	"net/http"
)

// RequireScope returns middleware that allows access only to bearers whose
// JWT scope matches one of the provided scope names (e.g. "push").
func RequireScope(allowedScopes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, scope := range allowedScopes {
				if claims.Scope == scope {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeJSONError(w, http.StatusForbidden, "forbidden")
		})
	}
}
