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

var slotDate = time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)

func slotStrings(slots []domain.TimeOfDay) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestListAvailableSlots_FullGridWhenEmpty(t *testing.T) {
	t.Parallel()

	store := memory.New()
	tenant := seedTenant(t, store, 100, domain.TenantStatusActive)
	seedTable(t, store, tenant.ID, 1, 4)
	svc := newTestService(store, nil)

	slots, err := svc.ListAvailableSlots(context.Background(), tenant.ID, slotDate, 2)
	require.NoError(t, err)

	// 11:00 through 21:30 on a 30-minute grid.
	require.Len(t, slots, 22)
	assert.Equal(t, "11:00", slots[0].String())
	assert.Equal(t, "21:30", slots[len(slots)-1].String())
}

// One reservation at 19:00 on the only qualifying table removes every
// slot strictly within the two-hour buffer; 17:00 and 21:00 survive.
func TestListAvailableSlots_BufferAroundBooking(t *testing.T) {
	t.Parallel()

	store := memory.New()
	tenant := seedTenant(t, store, 100, domain.TenantStatusActive)
	seedTable(t, store, tenant.ID, 1, 4)
	svc := newTestService(store, nil)

	_, err := svc.CreateReservation(context.Background(), reservationInput(tenant.ID, 2, "19:00"))
	require.NoError(t, err)

	slots, err := svc.ListAvailableSlots(context.Background(), tenant.ID, slotDate, 2)
	require.NoError(t, err)

	got := slotStrings(slots)
	for _, blocked := range []string{"17:30", "18:00", "18:30", "19:00", "19:30", "20:00", "20:30"} {
		assert.NotContains(t, got, blocked)
	}
	for _, open := range []string{"11:00", "17:00", "21:00", "21:30"} {
		assert.Contains(t, got, open)
	}
	assert.Len(t, got, 15)
}

func TestListAvailableSlots_SecondTableKeepsSlots(t *testing.T) {
	t.Parallel()

	store := memory.New()
	tenant := seedTenant(t, store, 100, domain.TenantStatusActive)
	seedTable(t, store, tenant.ID, 1, 4)
	seedTable(t, store, tenant.ID, 2, 4)
	svc := newTestService(store, nil)

	_, err := svc.CreateReservation(context.Background(), reservationInput(tenant.ID, 2, "19:00"))
	require.NoError(t, err)

	slots, err := svc.ListAvailableSlots(context.Background(), tenant.ID, slotDate, 2)
	require.NoError(t, err)
	assert.Len(t, slots, 22)
}

func TestListAvailableSlots_CancelledIgnored(t *testing.T) {
	t.Parallel()

	store := memory.New()
	tenant := seedTenant(t, store, 100, domain.TenantStatusActive)
	seedTable(t, store, tenant.ID, 1, 4)
	svc := newTestService(store, nil)

	confirmation, err := svc.CreateReservation(context.Background(), reservationInput(tenant.ID, 2, "19:00"))
	require.NoError(t, err)
	require.NoError(t, svc.UpdateReservationStatus(context.Background(),
		tenant.ID, confirmation.ReservationID, domain.ReservationStatusCancelled))

	slots, err := svc.ListAvailableSlots(context.Background(), tenant.ID, slotDate, 2)
	require.NoError(t, err)
	assert.Len(t, slots, 22)
}

func TestListAvailableSlots_NoQualifyingTables(t *testing.T) {
	t.Parallel()

	store := memory.New()
	tenant := seedTenant(t, store, 100, domain.TenantStatusActive)
	seedTable(t, store, tenant.ID, 1, 4)
	svc := newTestService(store, nil)

	slots, err := svc.ListAvailableSlots(context.Background(), tenant.ID, slotDate, 6)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestListAvailableSlots_Validation(t *testing.T) {
	t.Parallel()

	store := memory.New()
	tenant := seedTenant(t, store, 100, domain.TenantStatusActive)
	svc := newTestService(store, nil)

	_, err := svc.ListAvailableSlots(context.Background(), tenant.ID, slotDate, 0)
	require.ErrorIs(t, err, booking.ErrInvalidInput)
}

func TestListAvailableSlots_TenantInactive(t *testing.T) {
	t.Parallel()

	store := memory.New()
	tenant := seedTenant(t, store, 100, domain.TenantStatusInactive)
	seedTable(t, store, tenant.ID, 1, 4)
	svc := newTestService(store, nil)

	_, err := svc.ListAvailableSlots(context.Background(), tenant.ID, slotDate, 2)
	require.ErrorIs(t, err, domain.ErrTenantInactive)
}

// Every slot the grid offers must actually be bookable right now: book it
// and the booking succeeds. The approximation may only ever under-offer.
func TestListAvailableSlots_OfferedSlotIsBookable(t *testing.T) {
	t.Parallel()

	store := memory.New()
	tenant := seedTenant(t, store, 100, domain.TenantStatusActive)
	seedTable(t, store, tenant.ID, 1, 4)
	svc := newTestService(store, nil)

	_, err := svc.CreateReservation(context.Background(), reservationInput(tenant.ID, 2, "13:00"))
	require.NoError(t, err)

	slots, err := svc.ListAvailableSlots(context.Background(), tenant.ID, slotDate, 2)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	in := reservationInput(tenant.ID, 2, "11:00")
	in.Time = slots[0]
	_, err = svc.CreateReservation(context.Background(), in)
	require.NoError(t, err)
}
