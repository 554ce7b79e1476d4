package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/domain"
)

// OrderSequencer mints human-readable order numbers, one strictly
// increasing sequence per tenant per day.
type OrderSequencer struct{}

// NextOrderNumber returns the next order number for the tenant on the day
// of now, formatted YYYYMMDD-NNN. Concurrent calls for the same day yield
// pairwise-distinct, increasing numbers starting at 1. Running inside the
// order transaction means a later failure rolls the sequence claim back
// with everything else, so committed numbers have no gaps.
func (OrderSequencer) NextOrderNumber(ctx context.Context, tx domain.Store, tenantID uuid.UUID, now time.Time) (string, error) {
	seq, err := tx.Counters().NextDailySequence(ctx, tenantID, now)
	if err != nil {
		return "", fmt.Errorf("booking.NextOrderNumber: tenant %s: %w", tenantID, err)
	}

	return FormatOrderNumber(now, seq), nil
}

// FormatOrderNumber renders "YYYYMMDD-NNN". The sequence is zero-padded to
// three digits and widens automatically past 999 rather than wrapping.
func FormatOrderNumber(day time.Time, seq int) string {
	return fmt.Sprintf("%s-%03d", day.UTC().Format("20060102"), seq)
}
