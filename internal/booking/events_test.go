package booking_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/dineflow/dineflow/internal/booking"
)

func TestOrdersChannel(t *testing.T) {
	t.Parallel()

	tenantID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		got := booking.OrdersChannel(tenantID)
		assert.Equal(t, "orders:aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", got)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()

		got := booking.OrdersChannel(tenantID)
		assert.True(t, strings.HasPrefix(got, "orders:"), "expected prefix 'orders:', got %q", got)
	})

	t.Run("different tenants produce different channels", func(t *testing.T) {
		t.Parallel()

		other := uuid.MustParse("11111111-2222-3333-4444-555555555555")
		assert.NotEqual(t, booking.OrdersChannel(tenantID), booking.OrdersChannel(other))
	})
}

func TestReservationsChannel(t *testing.T) {
	t.Parallel()

	tenantID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	t.Run("happy path", func(t *testing.T) {
		t.Parallel()

		got := booking.ReservationsChannel(tenantID)
		assert.Equal(t, "reservations:aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee", got)
	})

	t.Run("no collision with orders channel", func(t *testing.T) {
		t.Parallel()

		assert.NotEqual(t, booking.OrdersChannel(tenantID), booking.ReservationsChannel(tenantID))
	})
}
