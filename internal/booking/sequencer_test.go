package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dineflow/dineflow/internal/booking"
	"github.com/dineflow/dineflow/internal/domain"
	"github.com/dineflow/dineflow/internal/store/memory"
)

func TestFormatOrderNumber(t *testing.T) {
	t.Parallel()

	day := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		day  time.Time
		seq  int
		want string
	}{
		{"first of the day", day, 1, "20240115-001"},
		{"padded", day, 42, "20240115-042"},
		{"last three-digit", day, 999, "20240115-999"},
		{"widens past 999", day, 1000, "20240115-1000"},
		{"normalizes to UTC", time.Date(2024, 1, 15, 23, 30, 0, 0, time.FixedZone("EST", -5*3600)), 1, "20240116-001"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, booking.FormatOrderNumber(tc.day, tc.seq))
		})
	}
}

func TestNextOrderNumber_PerDaySequences(t *testing.T) {
	t.Parallel()

	store := memory.New()
	tenant := seedTenant(t, store, 100, domain.TenantStatusActive)
	var seq booking.OrderSequencer

	jan15 := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	jan16 := jan15.AddDate(0, 0, 1)

	n1, err := seq.NextOrderNumber(context.Background(), store, tenant.ID, jan15)
	require.NoError(t, err)
	n2, err := seq.NextOrderNumber(context.Background(), store, tenant.ID, jan15)
	require.NoError(t, err)
	assert.Equal(t, "20240115-001", n1)
	assert.Equal(t, "20240115-002", n2)

	// A new day restarts the sequence at 1.
	n3, err := seq.NextOrderNumber(context.Background(), store, tenant.ID, jan16)
	require.NoError(t, err)
	assert.Equal(t, "20240116-001", n3)
}

func TestNextOrderNumber_PerTenantIsolation(t *testing.T) {
	t.Parallel()

	store := memory.New()
	first := seedTenant(t, store, 100, domain.TenantStatusActive)
	second := seedTenant(t, store, 100, domain.TenantStatusActive)
	var seq booking.OrderSequencer

	day := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	n1, err := seq.NextOrderNumber(context.Background(), store, first.ID, day)
	require.NoError(t, err)
	n2, err := seq.NextOrderNumber(context.Background(), store, second.ID, day)
	require.NoError(t, err)

	assert.Equal(t, "20240115-001", n1)
	assert.Equal(t, "20240115-001", n2)
}
