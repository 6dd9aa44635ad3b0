package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/staff-portal/internal/domain"
	jwtinfra "github.com/staff-portal/internal/infrastructure/jwt"
)

// RequireRole returns middleware that allows access only to users whose JWT
// role matches one of the provided role names (e.g. domain.RoleAdmin).
func RequireRole(allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			for _, role := range allowedRoles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeJSONError(w, http.StatusForbidden, "forbidden")
		})
	}
}

// ByUserID and ByFileNumber pick the claim that identifies a resource owner.
func ByUserID(c *jwtinfra.Claims) string     { return c.UserID }
func ByFileNumber(c *jwtinfra.Claims) string { return c.FileNumber }

// RequireOwner allows the request when the URL param equals the caller's own
// identifier as picked by owner. Admins pass too when allowAdmin is set.
func RequireOwner(param string, owner func(*jwtinfra.Claims) string, allowAdmin bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if owner(claims) == chi.URLParam(r, param) || (allowAdmin && claims.Role == domain.RoleAdmin) {
				next.ServeHTTP(w, r)
				return
			}
			writeJSONError(w, http.StatusForbidden, "forbidden")
		})
	}
}
