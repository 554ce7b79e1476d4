package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dineflow/dineflow/internal/domain"
)

// CreateReservationInput is the validated payload for the reservation
// workflow. TableID, when set, is a table pre-selected by the caller
// (e.g. from ListAvailableSlots); otherwise the allocator best-fits one.
type CreateReservationInput struct {
	TenantID        uuid.UUID
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	PartySize       int
	Date            time.Time
	Time            domain.TimeOfDay
	SpecialRequests string
	TableID         *uuid.UUID
}

func (in *CreateReservationInput) Validate() error {
	if in.CustomerName == "" {
		return fmt.Errorf("%w: customer name required", ErrInvalidInput)
	}
	if in.PartySize < 1 {
		return fmt.Errorf("%w: party size must be positive", ErrInvalidInput)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: reservation date required", ErrInvalidInput)
	}

	return nil
}

// ReservationConfirmation is what the workflow hands back to the caller.
type ReservationConfirmation struct {
	ReservationID uuid.UUID `json:"reservation_id"`
	TableNumber   int       `json:"table_number"`
}

// CreateReservation allocates a table and books it in one atomic unit.
// The per-table conflict re-check runs inside the same transaction as the
// insert, so a booking that raced us past the slot query fails with
// ErrTableUnavailable instead of double-booking.
func (s *Service) CreateReservation(ctx context.Context, in CreateReservationInput) (*ReservationConfirmation, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("booking.CreateReservation: %w", err)
	}

	now := s.now()

	var confirmation *ReservationConfirmation
	err := s.withRetry(ctx, func() error {
		return s.store.InTx(ctx, func(tx domain.Store) error {
			tenant, err := tx.Tenants().GetByID(ctx, in.TenantID)
			if err != nil {
				return err
			}
			if tenant.Status != domain.TenantStatusActive {
				return fmt.Errorf("tenant %s: %w", tenant.ID, domain.ErrTenantInactive)
			}

			var table *domain.Table
			if in.TableID != nil {
				table, err = tx.Tables().GetByID(ctx, in.TenantID, *in.TableID)
			} else {
				table, err = s.allocator.FindTable(ctx, tx, in.TenantID, in.PartySize)
			}
			if err != nil {
				return err
			}

			r := &domain.Reservation{
				ID:              uuid.New(),
				TenantID:        in.TenantID,
				TableID:         table.ID,
				CustomerName:    in.CustomerName,
				CustomerEmail:   in.CustomerEmail,
				CustomerPhone:   in.CustomerPhone,
				PartySize:       in.PartySize,
				Date:            in.Date,
				Time:            in.Time,
				SpecialRequests: in.SpecialRequests,
				Status:          domain.ReservationStatusConfirmed,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := s.allocator.BookTable(ctx, tx, r); err != nil {
				return err
			}

			confirmation = &ReservationConfirmation{
				ReservationID: r.ID,
				TableNumber:   table.TableNumber,
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("booking.CreateReservation: %w", err)
	}

	log.Info().
		Str("tenant_id", in.TenantID.String()).
		Int("table_number", confirmation.TableNumber).
		Str("time", in.Time.String()).
		Msg("reservation created")

	s.publish(ctx, ReservationsChannel(in.TenantID), ReservationCreatedEvent{
		Kind:          "reservation.created",
		ReservationID: confirmation.ReservationID,
		TenantID:      in.TenantID,
		TableNumber:   confirmation.TableNumber,
		Date:          in.Date.Format("2006-01-02"),
		Time:          in.Time.String(),
	})

	return confirmation, nil
}

// ListAvailableSlots returns the open "HH:MM" grid slots for a date and
// party size. Finite, restartable, a pure function of reservation state.
func (s *Service) ListAvailableSlots(ctx context.Context, tenantID uuid.UUID, date time.Time, partySize int) ([]domain.TimeOfDay, error) {
	if partySize < 1 {
		return nil, fmt.Errorf("booking.ListAvailableSlots: %w: party size must be positive", ErrInvalidInput)
	}

	tenant, err := s.store.Tenants().GetByID(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("booking.ListAvailableSlots: %w", err)
	}
	if tenant.Status != domain.TenantStatusActive {
		return nil, fmt.Errorf("booking.ListAvailableSlots: tenant %s: %w", tenant.ID, domain.ErrTenantInactive)
	}

	slots, err := s.allocator.ComputeAvailableSlots(ctx, s.store, tenantID, date, partySize)
	if err != nil {
		return nil, fmt.Errorf("booking.ListAvailableSlots: %w", err)
	}

	return slots, nil
}

// GetReservation returns one reservation.
func (s *Service) GetReservation(ctx context.Context, tenantID, reservationID uuid.UUID) (*domain.Reservation, error) {
	r, err := s.store.Reservations().GetByID(ctx, tenantID, reservationID)
	if err != nil {
		return nil, fmt.Errorf("booking.GetReservation: %w", err)
	}

	return r, nil
}

// ListReservations returns a tenant's reservations with optional date and
// status filters.
func (s *Service) ListReservations(ctx context.Context, tenantID uuid.UUID, date *time.Time, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	reservations, err := s.store.Reservations().List(ctx, tenantID, date, status)
	if err != nil {
		return nil, fmt.Errorf("booking.ListReservations: %w", err)
	}

	return reservations, nil
}

// UpdateReservationStatus moves a reservation to a new lifecycle state.
// Cancelled reservations stay cancelled; their table capacity is already
// released to the slot computation.
func (s *Service) UpdateReservationStatus(ctx context.Context, tenantID, reservationID uuid.UUID, target domain.ReservationStatus) error {
	switch target {
	case domain.ReservationStatusConfirmed, domain.ReservationStatusCancelled,
		domain.ReservationStatusCompleted, domain.ReservationStatusNoShow:
	default:
		return fmt.Errorf("booking.UpdateReservationStatus: %w: unknown status %q", ErrInvalidInput, target)
	}

	err := s.store.InTx(ctx, func(tx domain.Store) error {
		r, err := tx.Reservations().GetByID(ctx, tenantID, reservationID)
		if err != nil {
			return err
		}
		if r.Status == domain.ReservationStatusCancelled && target != domain.ReservationStatusCancelled {
			return fmt.Errorf("cancelled reservation %s: %w", r.ID, domain.ErrConflict)
		}

		return tx.Reservations().UpdateStatus(ctx, tenantID, reservationID, target)
	})
	if err != nil {
		return fmt.Errorf("booking.UpdateReservationStatus: %w", err)
	}

	return nil
}
