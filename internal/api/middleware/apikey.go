package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/ade-gb/investlite-demo-platform/internal/api/response"
)

// APIKeyMiddleware protects administrative routes with a shared secret.
// The caller must send the X-API-Key header matching the INTERNAL_API_KEY
// environment variable. Returns 401 Unauthorized if the key is missing or
// does not match, and 500 if the server has no key configured.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := os.Getenv("INTERNAL_API_KEY")
		if expected == "" {
			response.RespondError(w, http.StatusInternalServerError, "server misconfigured", "API key not configured")
			return
		}

		provided := r.Header.Get("X-API-Key")
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}
