package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/Mohamed-Khairy-SWE/PAD/internal/auth"
	"github.com/Mohamed-Khairy-SWE/PAD/internal/httputil"
)

// Auth validates the Bearer token on every request and puts the user ID
// in the request context. When disabled (local development without an
// identity provider) requests pass through with a fixed dev user.
func Auth(verifier auth.TokenVerifier, disabled bool, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if disabled {
				next.ServeHTTP(w, httputil.WithUserID(r, "dev-user"))
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}
