package middleware

import (
	"net/http"
	"strings"

	"contacts-api/internal/auth"
	"contacts-api/internal/handler"
	"contacts-api/internal/token"
)

// RequireAuth verifies the Authorization bearer token and injects the
// verified claims into the request context. Downstream handlers read the
// subject from there; the request itself is never mutated.
func RequireAuth(issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				handler.WriteError(w, r, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := issuer.ParseAccess(raw)
			if err != nil {
				handler.WriteError(w, r, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := auth.WithClaims(r.Context(), auth.Claims{
				Subject: claims.Subject,
				Email:   claims.Email,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner rejects requests whose {id} path value names a different
// user than the verified claim subject. Routes without an {id} pass through;
// contact routes don't need this since they are scoped by subject anyway.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.FromContext(r.Context())
		if !ok {
			handler.WriteError(w, r, http.StatusUnauthorized, "authentication required")
			return
		}

		if id := r.PathValue("id"); id != "" && id != claims.Subject {
			handler.WriteError(w, r, http.StatusForbidden, "you can only access your own record")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
