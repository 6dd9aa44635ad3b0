package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/staff-portal/internal/domain"
	jwtinfra "github.com/staff-portal/internal/infrastructure/jwt"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(tokenStr string) (*jwtinfra.Claims, error)
}

// SessionLookup finds the backend session an access token was issued for.
type SessionLookup interface {
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
}

// Auth validates the bearer JWT and injects its claims into the request
// context. When sessions is non-nil, tokens whose session was logged out are
// rejected even before they expire.
func Auth(verifier TokenVerifier, sessions SessionLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "missing or invalid authorization header")
				return
			}
			claims, err := verifier.Verify(raw)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}
			if sessions != nil {
				s, err := sessions.Get(r.Context(), claims.SessionID)
				if err != nil || !s.Enable {
					if err != nil {
						slog.Debug("session lookup failed", "session_id", claims.SessionID, "err", err)
					}
					writeJSONError(w, http.StatusUnauthorized, "session ended")
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	tok, ok := strings.CutPrefix(h, "Bearer ")
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}

// WithClaims stores claims in ctx.
func WithClaims(ctx context.Context, claims *jwtinfra.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext extracts JWT claims from the request context.
func ClaimsFromContext(ctx context.Context) (*jwtinfra.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*jwtinfra.Claims)
	return c, ok
}
