package http

import (
	"net/http"
	"strings"

	"studiofin-backend/internal/logger"
	"studiofin-backend/internal/remote"
	"studiofin-backend/internal/security"
)

// Authenticate validates the Bearer session token and, when valid, attaches
// the identity and the caller's cookies to the request context. Requests
// without a valid token pass through unauthenticated; the action pipeline and
// the read handlers fail closed on the missing identity.
func Authenticate(verifier security.SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if cookies := r.Header.Get("Cookie"); cookies != "" {
				ctx = remote.WithForwardedCookies(ctx, cookies)
			}

			token := bearerToken(r)
			if token != "" {
				identity, err := verifier.Verify(token)
				if err != nil {
					logger.Debug("Session token rejected", "error", err)
				} else {
					ctx = security.WithIdentity(ctx, *identity)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}
