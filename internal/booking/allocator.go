package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/config"
	"github.com/dineflow/dineflow/internal/domain"
)

// TableAllocator assigns physical tables to reservation requests and
// computes open time slots. Slot availability is a capacity-counting
// approximation: it compares the number of buffered conflicts on a date
// against the number of qualifying tables without binding specific tables
// to specific reservations. The authoritative per-table conflict check
// happens in BookTable, inside the booking transaction.
type TableAllocator struct {
	cfg config.BookingConfig
}

func NewTableAllocator(cfg config.BookingConfig) *TableAllocator {
	return &TableAllocator{cfg: cfg}
}

// FindTable picks the best-fit table for the party: the smallest available
// table that still seats everyone, ties broken by ascending table number.
func (a *TableAllocator) FindTable(ctx context.Context, st domain.Store, tenantID uuid.UUID, partySize int) (*domain.Table, error) {
	t, err := st.Tables().FindBestFit(ctx, tenantID, partySize)
	if err != nil {
		return nil, fmt.Errorf("booking.FindTable: %w", err)
	}

	return t, nil
}

// ComputeAvailableSlots enumerates the operating-window grid and keeps a
// slot iff the count of non-cancelled reservations on that date within the
// buffer of the slot is strictly less than the number of available tables
// seating the party. A pure function of current reservation state.
func (a *TableAllocator) ComputeAvailableSlots(ctx context.Context, st domain.Store, tenantID uuid.UUID, date time.Time, partySize int) ([]domain.TimeOfDay, error) {
	tables, err := st.Tables().CountAvailableWithCapacity(ctx, tenantID, partySize)
	if err != nil {
		return nil, fmt.Errorf("booking.ComputeAvailableSlots: %w", err)
	}
	if tables == 0 {
		return nil, nil
	}

	existing, err := st.Reservations().ListActiveByDate(ctx, tenantID, date)
	if err != nil {
		return nil, fmt.Errorf("booking.ComputeAvailableSlots: %w", err)
	}

	step := domain.TimeOfDay(a.cfg.SlotStep / time.Minute)
	var slots []domain.TimeOfDay
	for slot := a.cfg.OpenFrom; slot <= a.cfg.OpenUntil; slot += step {
		conflicts := 0
		for _, r := range existing {
			if slot.Within(r.Time, a.cfg.Buffer) {
				conflicts++
			}
		}
		if conflicts < tables {
			slots = append(slots, slot)
		}
	}

	return slots, nil
}

// BookTable assigns the reservation to its table, re-validating inside the
// enclosing transaction that no other non-cancelled reservation on the
// same table falls within the buffer window. A booking that landed between
// the slot query and this call surfaces as ErrTableUnavailable instead of
// a silent double-book.
func (a *TableAllocator) BookTable(ctx context.Context, tx domain.Store, r *domain.Reservation) error {
	table, err := tx.Tables().LockForBooking(ctx, r.TenantID, r.TableID)
	if err != nil {
		return fmt.Errorf("booking.BookTable: %w", err)
	}

	if table.Status != domain.TableStatusAvailable || table.Capacity < r.PartySize {
		return fmt.Errorf("booking.BookTable: table %d: %w", table.TableNumber, domain.ErrNoTableAvailable)
	}

	existing, err := tx.Reservations().ListActiveByTable(ctx, r.TenantID, r.TableID, r.Date)
	if err != nil {
		return fmt.Errorf("booking.BookTable: %w", err)
	}
	for _, other := range existing {
		if r.Time.Within(other.Time, a.cfg.Buffer) {
			return fmt.Errorf("booking.BookTable: table %d at %s: %w",
				table.TableNumber, r.Time, domain.ErrTableUnavailable)
		}
	}

	if err := tx.Reservations().Create(ctx, r); err != nil {
		return fmt.Errorf("booking.BookTable: %w", err)
	}

	return nil
}
