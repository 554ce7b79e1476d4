package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusNoShow    ReservationStatus = "no_show"
)

// Reservation holds one table for one party at one time. Invariants:
// PartySize never exceeds the assigned table's capacity, and no two
// non-cancelled reservations on the same table sit closer together than
// the configured buffer.
type Reservation struct {
	ID              uuid.UUID         `json:"id"`
	TenantID        uuid.UUID         `json:"tenant_id"`
	TableID         uuid.UUID         `json:"table_id"`
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email,omitempty"`
	CustomerPhone   string            `json:"customer_phone,omitempty"`
	PartySize       int               `json:"party_size"`
	Date            time.Time         `json:"date"`
	Time            TimeOfDay         `json:"time"`
	SpecialRequests string            `json:"special_requests,omitempty"`
	Status          ReservationStatus `json:"status"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

type ReservationRepository interface {
	Create(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Reservation, error)
	List(ctx context.Context, tenantID uuid.UUID, date *time.Time, status *ReservationStatus) ([]*Reservation, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status ReservationStatus) error

	// ListActiveByDate returns all non-cancelled reservations for a date.
	ListActiveByDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]*Reservation, error)

	// ListActiveByTable returns all non-cancelled reservations for one
	// table on a date, for the in-transaction conflict re-check.
	ListActiveByTable(ctx context.Context, tenantID, tableID uuid.UUID, date time.Time) ([]*Reservation, error)
}
