package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/domain"
)

// PromotionLedger accounts promotion redemptions against their usage
// limits. The applicability check and the increment are one atomic store
// operation: two concurrent redemptions of the last slot never both
// succeed.
type PromotionLedger struct{}

// ApplyUsage debits one redemption from the promotion, failing with
// ErrPromotionNotApplicable when the promotion is inactive, outside its
// [start, end] window at now, or already at its usage limit. Returns the
// new used count.
func (PromotionLedger) ApplyUsage(ctx context.Context, tx domain.Store, tenantID, promotionID uuid.UUID, now time.Time) (int, error) {
	used, err := tx.Promotions().ApplyUsage(ctx, tenantID, promotionID, now)
	if err != nil {
		return 0, fmt.Errorf("booking.ApplyUsage: promotion %s: %w", promotionID, err)
	}

	return used, nil
}
