package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/dineflow/dineflow/internal/domain"
)

// AdmissionController gates new orders against a tenant's monthly quota.
// The limit check and the increment are one conditional store operation, so
// concurrent callers can never push the counter past capacity.
type AdmissionController struct{}

// ReserveCapacity claims one slot of the tenant's monthly capacity for the
// period containing now. Returns the remaining capacity after the claim, or
// ErrCapacityExceeded with the counter untouched.
func (AdmissionController) ReserveCapacity(ctx context.Context, tx domain.Store, tenant *domain.Tenant, now time.Time) (int, error) {
	if tenant.MonthlyCapacity < 1 {
		return 0, fmt.Errorf("booking.ReserveCapacity: tenant %s: %w", tenant.ID, domain.ErrCapacityExceeded)
	}

	count, err := tx.Counters().ReserveMonthlySlot(ctx, tenant.ID, now, tenant.MonthlyCapacity)
	if err != nil {
		return 0, fmt.Errorf("booking.ReserveCapacity: tenant %s: %w", tenant.ID, err)
	}

	return tenant.MonthlyCapacity - count, nil
}
