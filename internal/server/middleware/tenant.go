package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ResolveTenant parses the {tenantID} path parameter and stores it in the
// request context. Handlers downstream read it with TenantIDFromContext.
func ResolveTenant() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := chi.URLParam(r, "tenantID")
			tid, err := uuid.Parse(raw)
			if err != nil || tid == uuid.Nil {
				http.Error(w, `{"title":"Bad Request","status":400,"detail":"invalid tenant id"}`, http.StatusBadRequest)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyTenantID, tid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
