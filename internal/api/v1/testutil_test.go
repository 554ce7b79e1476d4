package v1_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/booking"
	"github.com/dineflow/dineflow/internal/domain"
	"github.com/dineflow/dineflow/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject the tenant into context for DoCtx
// ---------------------------------------------------------------------------

func tenantCtx(tenantID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.ContextKeyTenantID, tenantID)
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	tenants      domain.TenantRepository
	orders       domain.OrderRepository
	promotions   domain.PromotionRepository
	tables       domain.TableRepository
	reservations domain.ReservationRepository
}

func (m *mockDataStore) Tenants() domain.TenantRepository           { return m.tenants }
func (m *mockDataStore) Orders() domain.OrderRepository             { return m.orders }
func (m *mockDataStore) Promotions() domain.PromotionRepository     { return m.promotions }
func (m *mockDataStore) Tables() domain.TableRepository             { return m.tables }
func (m *mockDataStore) Reservations() domain.ReservationRepository { return m.reservations }

// ---------------------------------------------------------------------------
// Mock TenantRepository
// ---------------------------------------------------------------------------

type mockTenantRepo struct {
	createFunc       func(ctx context.Context, t *domain.Tenant) error
	getByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	updateStatusFunc func(ctx context.Context, id uuid.UUID, status domain.TenantStatus) error
	listFunc         func(ctx context.Context) ([]*domain.Tenant, error)
}

func (m *mockTenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	return m.createFunc(ctx, t)
}

func (m *mockTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockTenantRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TenantStatus) error {
	return m.updateStatusFunc(ctx, id, status)
}

func (m *mockTenantRepo) List(ctx context.Context) ([]*domain.Tenant, error) {
	return m.listFunc(ctx)
}

// ---------------------------------------------------------------------------
// Mock OrderRepository
// ---------------------------------------------------------------------------

type mockOrderRepo struct {
	createFunc       func(ctx context.Context, o *domain.Order) error
	getByIDFunc      func(ctx context.Context, tenantID, id uuid.UUID) (*domain.Order, error)
	listFunc         func(ctx context.Context, tenantID uuid.UUID) ([]*domain.Order, error)
	updateStatusFunc func(ctx context.Context, tenantID, id uuid.UUID, status domain.OrderStatus) error
}

func (m *mockOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return m.createFunc(ctx, o)
}

func (m *mockOrderRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Order, error) {
	return m.getByIDFunc(ctx, tenantID, id)
}

func (m *mockOrderRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Order, error) {
	return m.listFunc(ctx, tenantID)
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status domain.OrderStatus) error {
	return m.updateStatusFunc(ctx, tenantID, id, status)
}

// ---------------------------------------------------------------------------
// Mock PromotionRepository
// ---------------------------------------------------------------------------

type mockPromotionRepo struct {
	createFunc     func(ctx context.Context, p *domain.Promotion) error
	getByIDFunc    func(ctx context.Context, tenantID, id uuid.UUID) (*domain.Promotion, error)
	listFunc       func(ctx context.Context, tenantID uuid.UUID) ([]*domain.Promotion, error)
	listActiveFunc func(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]*domain.Promotion, error)
	updateFunc     func(ctx context.Context, p *domain.Promotion) error
	deleteFunc     func(ctx context.Context, tenantID, id uuid.UUID) error
	applyUsageFunc func(ctx context.Context, tenantID, id uuid.UUID, now time.Time) (int, error)
}

func (m *mockPromotionRepo) Create(ctx context.Context, p *domain.Promotion) error {
	return m.createFunc(ctx, p)
}

func (m *mockPromotionRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Promotion, error) {
	return m.getByIDFunc(ctx, tenantID, id)
}

func (m *mockPromotionRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Promotion, error) {
	return m.listFunc(ctx, tenantID)
}

func (m *mockPromotionRepo) ListActive(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]*domain.Promotion, error) {
	return m.listActiveFunc(ctx, tenantID, now)
}

func (m *mockPromotionRepo) Update(ctx context.Context, p *domain.Promotion) error {
	return m.updateFunc(ctx, p)
}

func (m *mockPromotionRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return m.deleteFunc(ctx, tenantID, id)
}

func (m *mockPromotionRepo) ApplyUsage(ctx context.Context, tenantID, id uuid.UUID, now time.Time) (int, error) {
	return m.applyUsageFunc(ctx, tenantID, id, now)
}

// ---------------------------------------------------------------------------
// Mock TableRepository
// ---------------------------------------------------------------------------

type mockTableRepo struct {
	createFunc         func(ctx context.Context, t *domain.Table) error
	getByIDFunc        func(ctx context.Context, tenantID, id uuid.UUID) (*domain.Table, error)
	listFunc           func(ctx context.Context, tenantID uuid.UUID) ([]*domain.Table, error)
	updateStatusFunc   func(ctx context.Context, tenantID, id uuid.UUID, status domain.TableStatus) error
	findBestFitFunc    func(ctx context.Context, tenantID uuid.UUID, partySize int) (*domain.Table, error)
	countAvailableFunc func(ctx context.Context, tenantID uuid.UUID, partySize int) (int, error)
	lockForBookingFunc func(ctx context.Context, tenantID, id uuid.UUID) (*domain.Table, error)
}

func (m *mockTableRepo) Create(ctx context.Context, t *domain.Table) error {
	return m.createFunc(ctx, t)
}

func (m *mockTableRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Table, error) {
	return m.getByIDFunc(ctx, tenantID, id)
}

func (m *mockTableRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Table, error) {
	return m.listFunc(ctx, tenantID)
}

func (m *mockTableRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status domain.TableStatus) error {
	return m.updateStatusFunc(ctx, tenantID, id, status)
}

func (m *mockTableRepo) FindBestFit(ctx context.Context, tenantID uuid.UUID, partySize int) (*domain.Table, error) {
	return m.findBestFitFunc(ctx, tenantID, partySize)
}

func (m *mockTableRepo) CountAvailableWithCapacity(ctx context.Context, tenantID uuid.UUID, partySize int) (int, error) {
	return m.countAvailableFunc(ctx, tenantID, partySize)
}

func (m *mockTableRepo) LockForBooking(ctx context.Context, tenantID, id uuid.UUID) (*domain.Table, error) {
	return m.lockForBookingFunc(ctx, tenantID, id)
}

// ---------------------------------------------------------------------------
// Mock ReservationRepository
// ---------------------------------------------------------------------------

type mockReservationRepo struct {
	createFunc            func(ctx context.Context, r *domain.Reservation) error
	getByIDFunc           func(ctx context.Context, tenantID, id uuid.UUID) (*domain.Reservation, error)
	listFunc              func(ctx context.Context, tenantID uuid.UUID, date *time.Time, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	updateStatusFunc      func(ctx context.Context, tenantID, id uuid.UUID, status domain.ReservationStatus) error
	listActiveByDateFunc  func(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]*domain.Reservation, error)
	listActiveByTableFunc func(ctx context.Context, tenantID, tableID uuid.UUID, date time.Time) ([]*domain.Reservation, error)
}

func (m *mockReservationRepo) Create(ctx context.Context, r *domain.Reservation) error {
	return m.createFunc(ctx, r)
}

func (m *mockReservationRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Reservation, error) {
	return m.getByIDFunc(ctx, tenantID, id)
}

func (m *mockReservationRepo) List(ctx context.Context, tenantID uuid.UUID, date *time.Time, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return m.listFunc(ctx, tenantID, date, status)
}

func (m *mockReservationRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status domain.ReservationStatus) error {
	return m.updateStatusFunc(ctx, tenantID, id, status)
}

func (m *mockReservationRepo) ListActiveByDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]*domain.Reservation, error) {
	return m.listActiveByDateFunc(ctx, tenantID, date)
}

func (m *mockReservationRepo) ListActiveByTable(ctx context.Context, tenantID, tableID uuid.UUID, date time.Time) ([]*domain.Reservation, error) {
	return m.listActiveByTableFunc(ctx, tenantID, tableID, date)
}

// ---------------------------------------------------------------------------
// Mock BookingService
// ---------------------------------------------------------------------------

type mockBookingService struct {
	createOrderFunc             func(ctx context.Context, in booking.CreateOrderInput) (*booking.OrderReceipt, error)
	getOrderFunc                func(ctx context.Context, tenantID, orderID uuid.UUID) (*domain.Order, error)
	listOrdersFunc              func(ctx context.Context, tenantID uuid.UUID) ([]*domain.Order, error)
	transitionOrderStatusFunc   func(ctx context.Context, tenantID, orderID uuid.UUID, target domain.OrderStatus) (*domain.Order, error)
	createReservationFunc       func(ctx context.Context, in booking.CreateReservationInput) (*booking.ReservationConfirmation, error)
	getReservationFunc          func(ctx context.Context, tenantID, reservationID uuid.UUID) (*domain.Reservation, error)
	listAvailableSlotsFunc      func(ctx context.Context, tenantID uuid.UUID, date time.Time, partySize int) ([]domain.TimeOfDay, error)
	listReservationsFunc        func(ctx context.Context, tenantID uuid.UUID, date *time.Time, status *domain.ReservationStatus) ([]*domain.Reservation, error)
	updateReservationStatusFunc func(ctx context.Context, tenantID, reservationID uuid.UUID, target domain.ReservationStatus) error
}

func (m *mockBookingService) CreateOrder(ctx context.Context, in booking.CreateOrderInput) (*booking.OrderReceipt, error) {
	return m.createOrderFunc(ctx, in)
}

func (m *mockBookingService) GetOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*domain.Order, error) {
	return m.getOrderFunc(ctx, tenantID, orderID)
}

func (m *mockBookingService) ListOrders(ctx context.Context, tenantID uuid.UUID) ([]*domain.Order, error) {
	return m.listOrdersFunc(ctx, tenantID)
}

func (m *mockBookingService) TransitionOrderStatus(ctx context.Context, tenantID, orderID uuid.UUID, target domain.OrderStatus) (*domain.Order, error) {
	return m.transitionOrderStatusFunc(ctx, tenantID, orderID, target)
}

func (m *mockBookingService) CreateReservation(ctx context.Context, in booking.CreateReservationInput) (*booking.ReservationConfirmation, error) {
	return m.createReservationFunc(ctx, in)
}

func (m *mockBookingService) GetReservation(ctx context.Context, tenantID, reservationID uuid.UUID) (*domain.Reservation, error) {
	return m.getReservationFunc(ctx, tenantID, reservationID)
}

func (m *mockBookingService) ListAvailableSlots(ctx context.Context, tenantID uuid.UUID, date time.Time, partySize int) ([]domain.TimeOfDay, error) {
	return m.listAvailableSlotsFunc(ctx, tenantID, date, partySize)
}

func (m *mockBookingService) ListReservations(ctx context.Context, tenantID uuid.UUID, date *time.Time, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	return m.listReservationsFunc(ctx, tenantID, date, status)
}

func (m *mockBookingService) UpdateReservationStatus(ctx context.Context, tenantID, reservationID uuid.UUID, target domain.ReservationStatus) error {
	return m.updateReservationStatusFunc(ctx, tenantID, reservationID, target)
}
