package v1

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/booking"
	"github.com/dineflow/dineflow/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store and *memory.Store satisfy this interface.
type DataStore interface {
	Tenants() domain.TenantRepository
	Orders() domain.OrderRepository
	Promotions() domain.PromotionRepository
	Tables() domain.TableRepository
	Reservations() domain.ReservationRepository
}

// BookingService abstracts the order and reservation workflows for handler
// testing. *booking.Service satisfies this interface.
type BookingService interface {
	CreateOrder(ctx context.Context, in booking.CreateOrderInput) (*booking.OrderReceipt, error)
	GetOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, tenantID uuid.UUID) ([]*domain.Order, error)
	TransitionOrderStatus(ctx context.Context, tenantID, orderID uuid.UUID, target domain.OrderStatus) (*domain.Order, error)

	CreateReservation(ctx context.Context, in booking.CreateReservationInput) (*booking.ReservationConfirmation, error)
	GetReservation(ctx context.Context, tenantID, reservationID uuid.UUID) (*domain.Reservation, error)
	ListAvailableSlots(ctx context.Context, tenantID uuid.UUID, date time.Time, partySize int) ([]domain.TimeOfDay, error)
	ListReservations(ctx context.Context, tenantID uuid.UUID, date *time.Time, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	UpdateReservationStatus(ctx context.Context, tenantID, reservationID uuid.UUID, target domain.ReservationStatus) error
}
