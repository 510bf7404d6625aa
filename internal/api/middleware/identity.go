package middleware

import (
	"context"
	"net/http"

	"github.com/ade-gb/investlite-demo-platform/internal/api/response"
	"github.com/ade-gb/investlite-demo-platform/internal/validation"
)

// ownerKey is the context key under which the authenticated owner ID is stored.
type ownerKey struct{}

// RequireOwner extracts the owner ID supplied by the identity provider
// (X-User-Id header) and stores it in the request context. The core only
// needs a stable owner UUID; session lifecycle lives outside this service.
// Returns 401 Unauthorized if the header is missing or not a UUID.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.Header.Get("X-User-Id")

		if ownerID == "" {
			response.RespondError(w, http.StatusUnauthorized, "authentication required", "Missing X-User-Id header")
			return
		}

		if err := validation.ValidateUUID(ownerID); err != nil {
			response.RespondError(w, http.StatusUnauthorized, "authentication required", "X-User-Id must be a valid UUID")
			return
		}

		ctx := context.WithValue(r.Context(), ownerKey{}, ownerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnerID returns the owner ID stored by RequireOwner, or "" if the
// middleware did not run.
func OwnerID(ctx context.Context) string {
	id, _ := ctx.Value(ownerKey{}).(string)
	return id
}
