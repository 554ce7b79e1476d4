package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Period kinds stored in order_counters.
const (
	PeriodKindMonth = "month"
	PeriodKindDay   = "day"
)

// MonthKey formats the monthly counter key, e.g. "2024-01".
func MonthKey(t time.Time) string { return t.UTC().Format("2006-01") }

// DayKey formats the daily counter key, e.g. "2024-01-15".
func DayKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

// CounterRepository is the durable home of per-tenant order counters.
// Rows are keyed by (tenant_id, period_kind, period_value), created lazily
// on first use and never deleted. Both operations are single conditional
// writes: every successful increment observes a value no other committed
// writer has already claimed.
type CounterRepository interface {
	// ReserveMonthlySlot increments the tenant's counter for the month of
	// now, succeeding only if the post-increment count stays within
	// capacity. On ErrCapacityExceeded the counter is left unchanged.
	// Returns the post-increment count.
	ReserveMonthlySlot(ctx context.Context, tenantID uuid.UUID, now time.Time, capacity int) (int, error)

	// NextDailySequence increments and returns the tenant's sequence for
	// the day of now, starting at 1 for a fresh key.
	NextDailySequence(ctx context.Context, tenantID uuid.UUID, now time.Time) (int, error)

	// Get reads a counter value without modifying it. Missing rows read
	// as zero.
	Get(ctx context.Context, tenantID uuid.UUID, periodKind, periodValue string) (int, error)
}
