package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TableStatus string

const (
	TableStatusAvailable    TableStatus = "available"
	TableStatusOccupied     TableStatus = "occupied"
	TableStatusReserved     TableStatus = "reserved"
	TableStatusOutOfService TableStatus = "out_of_service"
)

// Table is a physical table. Capacity is always positive.
type Table struct {
	ID          uuid.UUID   `json:"id"`
	TenantID    uuid.UUID   `json:"tenant_id"`
	TableNumber int         `json:"table_number"`
	Capacity    int         `json:"capacity"`
	Status      TableStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type TableRepository interface {
	Create(ctx context.Context, t *Table) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Table, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]*Table, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status TableStatus) error

	// FindBestFit returns the available table with the smallest capacity
	// still seating partySize, ties broken by ascending table number.
	// Returns ErrNoTableAvailable when no table qualifies.
	FindBestFit(ctx context.Context, tenantID uuid.UUID, partySize int) (*Table, error)

	// CountAvailableWithCapacity counts available tables seating at least
	// partySize. Feeds the slot-availability approximation.
	CountAvailableWithCapacity(ctx context.Context, tenantID uuid.UUID, partySize int) (int, error)

	// LockForBooking loads a table and serializes concurrent bookings
	// against it for the remainder of the enclosing transaction.
	LockForBooking(ctx context.Context, tenantID, id uuid.UUID) (*Table, error)
}
