package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

// ContextKeyTenantID carries the tenant resolved from the request path.
const ContextKeyTenantID contextKey = "tenant_id"

func TenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeyTenantID).(uuid.UUID)
	return v, ok
}
