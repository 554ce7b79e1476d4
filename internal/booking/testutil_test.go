package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/dineflow/dineflow/internal/booking"
	"github.com/dineflow/dineflow/internal/config"
	"github.com/dineflow/dineflow/internal/domain"
	"github.com/dineflow/dineflow/internal/store/memory"
)

// fixedNow pins every workflow clock in this package to 2024-01-15 12:00 UTC.
var fixedNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func testBookingConfig() config.BookingConfig {
	return config.BookingConfig{
		SlotStep:    30 * time.Minute,
		OpenFrom:    mustTOD("11:00"),
		OpenUntil:   mustTOD("21:30"),
		Buffer:      2 * time.Hour,
		DeliveryETA: 45 * time.Minute,
		DefaultETA:  20 * time.Minute,
		TxAttempts:  3,
		TxBackoff:   time.Millisecond,
	}
}

func mustTOD(s string) domain.TimeOfDay {
	t, err := domain.ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func newTestService(store domain.Store, events booking.EventPublisher) *booking.Service {
	return booking.NewService(store, testBookingConfig(), events,
		booking.WithClock(func() time.Time { return fixedNow }))
}

func seedTenant(t *testing.T, store *memory.Store, capacity int, status domain.TenantStatus) *domain.Tenant {
	t.Helper()
	tenant := &domain.Tenant{
		ID:              uuid.New(),
		Name:            "Trattoria Test",
		Subdomain:       "trattoria-" + uuid.NewString()[:8],
		MonthlyCapacity: capacity,
		Status:          status,
		CreatedAt:       fixedNow,
		UpdatedAt:       fixedNow,
	}
	require.NoError(t, store.Tenants().Create(context.Background(), tenant))
	return tenant
}

func seedTable(t *testing.T, store *memory.Store, tenantID uuid.UUID, number, capacity int) *domain.Table {
	t.Helper()
	table := &domain.Table{
		ID:          uuid.New(),
		TenantID:    tenantID,
		TableNumber: number,
		Capacity:    capacity,
		Status:      domain.TableStatusAvailable,
		CreatedAt:   fixedNow,
		UpdatedAt:   fixedNow,
	}
	require.NoError(t, store.Tables().Create(context.Background(), table))
	return table
}

func seedPromotion(t *testing.T, store *memory.Store, tenantID uuid.UUID, usageLimit *int, active bool) *domain.Promotion {
	t.Helper()
	p := &domain.Promotion{
		ID:            uuid.New(),
		TenantID:      tenantID,
		Name:          "Winter Special",
		Type:          "percentage",
		DiscountValue: 10,
		UsageLimit:    usageLimit,
		Active:        active,
		StartDate:     fixedNow.AddDate(0, 0, -7),
		EndDate:       fixedNow.AddDate(0, 0, 7),
		CreatedAt:     fixedNow,
		UpdatedAt:     fixedNow,
	}
	require.NoError(t, store.Promotions().Create(context.Background(), p))
	return p
}

func orderInput(tenantID uuid.UUID) booking.CreateOrderInput {
	return booking.CreateOrderInput{
		TenantID:     tenantID,
		Type:         domain.OrderTypePickup,
		Items:        []domain.OrderItem{{Name: "Margherita", Quantity: 1, PriceCents: 1250}},
		TotalCents:   1250,
		CustomerName: "Ada",
	}
}

func reservationInput(tenantID uuid.UUID, partySize int, at string) booking.CreateReservationInput {
	return booking.CreateReservationInput{
		TenantID:     tenantID,
		CustomerName: "Ada",
		PartySize:    partySize,
		Date:         time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC),
		Time:         mustTOD(at),
	}
}

func intPtr(n int) *int { return &n }

// captureEvents records published payloads for assertion.
type captureEvents struct {
	mu       sync.Mutex
	channels []string
	payloads [][]byte
}

func (c *captureEvents) Publish(_ context.Context, channel string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.channels = append(c.channels, channel)
	c.payloads = append(c.payloads, payload)
	return nil
}

func (c *captureEvents) published() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.channels...)
}
