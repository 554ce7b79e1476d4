package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/domain"
)

// ---------------------------------------------------------------------------
// Tenants
// ---------------------------------------------------------------------------

type tenantRepo struct{ r runner }

func (repo *tenantRepo) Create(_ context.Context, t *domain.Tenant) error {
	return repo.r.run(func(st *state) error {
		if _, ok := st.tenants[t.ID]; ok {
			return fmt.Errorf("memory.tenantRepo.Create: %w", domain.ErrConflict)
		}
		cp := *t
		st.tenants[t.ID] = &cp
		return nil
	})
}

func (repo *tenantRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Tenant, error) {
	var out *domain.Tenant
	err := repo.r.run(func(st *state) error {
		t, ok := st.tenants[id]
		if !ok {
			return fmt.Errorf("memory.tenantRepo.GetByID: %w", domain.ErrNotFound)
		}
		cp := *t
		out = &cp
		return nil
	})
	return out, err
}

func (repo *tenantRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.TenantStatus) error {
	return repo.r.run(func(st *state) error {
		t, ok := st.tenants[id]
		if !ok {
			return fmt.Errorf("memory.tenantRepo.UpdateStatus: %w", domain.ErrNotFound)
		}
		cp := *t
		cp.Status = status
		cp.UpdatedAt = time.Now()
		st.tenants[id] = &cp
		return nil
	})
}

func (repo *tenantRepo) List(_ context.Context) ([]*domain.Tenant, error) {
	var out []*domain.Tenant
	err := repo.r.run(func(st *state) error {
		for _, t := range st.tenants {
			cp := *t
			out = append(out, &cp)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

// ---------------------------------------------------------------------------
// Orders
// ---------------------------------------------------------------------------

type orderRepo struct{ r runner }

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	return &cp
}

func (repo *orderRepo) Create(_ context.Context, o *domain.Order) error {
	return repo.r.run(func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return fmt.Errorf("memory.orderRepo.Create: %w", domain.ErrConflict)
		}
		// order_number is unique within a tenant.
		for _, other := range st.orders {
			if other.TenantID == o.TenantID && other.OrderNumber == o.OrderNumber {
				return fmt.Errorf("memory.orderRepo.Create: number %s: %w", o.OrderNumber, domain.ErrConflict)
			}
		}
		st.orders[o.ID] = copyOrder(o)
		return nil
	})
}

func (repo *orderRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.Order, error) {
	var out *domain.Order
	err := repo.r.run(func(st *state) error {
		o, ok := st.orders[id]
		if !ok || o.TenantID != tenantID {
			return fmt.Errorf("memory.orderRepo.GetByID: %w", domain.ErrNotFound)
		}
		out = copyOrder(o)
		return nil
	})
	return out, err
}

func (repo *orderRepo) List(_ context.Context, tenantID uuid.UUID) ([]*domain.Order, error) {
	var out []*domain.Order
	err := repo.r.run(func(st *state) error {
		for _, o := range st.orders {
			if o.TenantID == tenantID {
				out = append(out, copyOrder(o))
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (repo *orderRepo) UpdateStatus(_ context.Context, tenantID, id uuid.UUID, status domain.OrderStatus) error {
	return repo.r.run(func(st *state) error {
		o, ok := st.orders[id]
		if !ok || o.TenantID != tenantID {
			return fmt.Errorf("memory.orderRepo.UpdateStatus: %w", domain.ErrNotFound)
		}
		cp := copyOrder(o)
		cp.Status = status
		cp.UpdatedAt = time.Now()
		st.orders[id] = cp
		return nil
	})
}

// ---------------------------------------------------------------------------
// Promotions
// ---------------------------------------------------------------------------

type promotionRepo struct{ r runner }

func copyPromotion(p *domain.Promotion) *domain.Promotion {
	cp := *p
	if p.UsageLimit != nil {
		limit := *p.UsageLimit
		cp.UsageLimit = &limit
	}
	return &cp
}

func (repo *promotionRepo) Create(_ context.Context, p *domain.Promotion) error {
	return repo.r.run(func(st *state) error {
		if _, ok := st.promotions[p.ID]; ok {
			return fmt.Errorf("memory.promotionRepo.Create: %w", domain.ErrConflict)
		}
		st.promotions[p.ID] = copyPromotion(p)
		return nil
	})
}

func (repo *promotionRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.Promotion, error) {
	var out *domain.Promotion
	err := repo.r.run(func(st *state) error {
		p, ok := st.promotions[id]
		if !ok || p.TenantID != tenantID {
			return fmt.Errorf("memory.promotionRepo.GetByID: %w", domain.ErrNotFound)
		}
		out = copyPromotion(p)
		return nil
	})
	return out, err
}

func (repo *promotionRepo) List(_ context.Context, tenantID uuid.UUID) ([]*domain.Promotion, error) {
	var out []*domain.Promotion
	err := repo.r.run(func(st *state) error {
		for _, p := range st.promotions {
			if p.TenantID == tenantID {
				out = append(out, copyPromotion(p))
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (repo *promotionRepo) ListActive(_ context.Context, tenantID uuid.UUID, now time.Time) ([]*domain.Promotion, error) {
	var out []*domain.Promotion
	err := repo.r.run(func(st *state) error {
		for _, p := range st.promotions {
			if p.TenantID == tenantID && p.Applicable(now) {
				out = append(out, copyPromotion(p))
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
		return nil
	})
	return out, err
}

func (repo *promotionRepo) Update(_ context.Context, p *domain.Promotion) error {
	return repo.r.run(func(st *state) error {
		existing, ok := st.promotions[p.ID]
		if !ok || existing.TenantID != p.TenantID {
			return fmt.Errorf("memory.promotionRepo.Update: %w", domain.ErrNotFound)
		}
		// used_count is owned by ApplyUsage; a stale snapshot on the
		// caller's side must not overwrite redemptions.
		cp := copyPromotion(p)
		cp.UsedCount = existing.UsedCount
		st.promotions[p.ID] = cp
		return nil
	})
}

func (repo *promotionRepo) Delete(_ context.Context, tenantID, id uuid.UUID) error {
	return repo.r.run(func(st *state) error {
		p, ok := st.promotions[id]
		if !ok || p.TenantID != tenantID {
			return fmt.Errorf("memory.promotionRepo.Delete: %w", domain.ErrNotFound)
		}
		delete(st.promotions, id)
		return nil
	})
}

func (repo *promotionRepo) ApplyUsage(_ context.Context, tenantID, id uuid.UUID, now time.Time) (int, error) {
	var used int
	err := repo.r.run(func(st *state) error {
		p, ok := st.promotions[id]
		if !ok || p.TenantID != tenantID {
			return fmt.Errorf("memory.promotionRepo.ApplyUsage: %w", domain.ErrNotFound)
		}
		if !p.Applicable(now) {
			return fmt.Errorf("memory.promotionRepo.ApplyUsage: %w", domain.ErrPromotionNotApplicable)
		}
		cp := copyPromotion(p)
		cp.UsedCount++
		cp.UpdatedAt = now
		st.promotions[id] = cp
		used = cp.UsedCount
		return nil
	})
	return used, err
}

// ---------------------------------------------------------------------------
// Tables
// ---------------------------------------------------------------------------

type tableRepo struct{ r runner }

func (repo *tableRepo) Create(_ context.Context, t *domain.Table) error {
	return repo.r.run(func(st *state) error {
		if _, ok := st.tables[t.ID]; ok {
			return fmt.Errorf("memory.tableRepo.Create: %w", domain.ErrConflict)
		}
		for _, other := range st.tables {
			if other.TenantID == t.TenantID && other.TableNumber == t.TableNumber {
				return fmt.Errorf("memory.tableRepo.Create: number %d: %w", t.TableNumber, domain.ErrConflict)
			}
		}
		cp := *t
		st.tables[t.ID] = &cp
		return nil
	})
}

func (repo *tableRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.Table, error) {
	var out *domain.Table
	err := repo.r.run(func(st *state) error {
		t, ok := st.tables[id]
		if !ok || t.TenantID != tenantID {
			return fmt.Errorf("memory.tableRepo.GetByID: %w", domain.ErrNotFound)
		}
		cp := *t
		out = &cp
		return nil
	})
	return out, err
}

func (repo *tableRepo) List(_ context.Context, tenantID uuid.UUID) ([]*domain.Table, error) {
	var out []*domain.Table
	err := repo.r.run(func(st *state) error {
		for _, t := range st.tables {
			if t.TenantID == tenantID {
				cp := *t
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].TableNumber < out[j].TableNumber })
		return nil
	})
	return out, err
}

func (repo *tableRepo) UpdateStatus(_ context.Context, tenantID, id uuid.UUID, status domain.TableStatus) error {
	return repo.r.run(func(st *state) error {
		t, ok := st.tables[id]
		if !ok || t.TenantID != tenantID {
			return fmt.Errorf("memory.tableRepo.UpdateStatus: %w", domain.ErrNotFound)
		}
		cp := *t
		cp.Status = status
		cp.UpdatedAt = time.Now()
		st.tables[id] = &cp
		return nil
	})
}

func (repo *tableRepo) FindBestFit(_ context.Context, tenantID uuid.UUID, partySize int) (*domain.Table, error) {
	var out *domain.Table
	err := repo.r.run(func(st *state) error {
		var best *domain.Table
		for _, t := range st.tables {
			if t.TenantID != tenantID || t.Status != domain.TableStatusAvailable || t.Capacity < partySize {
				continue
			}
			if best == nil ||
				t.Capacity < best.Capacity ||
				(t.Capacity == best.Capacity && t.TableNumber < best.TableNumber) {
				best = t
			}
		}
		if best == nil {
			return fmt.Errorf("memory.tableRepo.FindBestFit: party of %d: %w", partySize, domain.ErrNoTableAvailable)
		}
		cp := *best
		out = &cp
		return nil
	})
	return out, err
}

func (repo *tableRepo) CountAvailableWithCapacity(_ context.Context, tenantID uuid.UUID, partySize int) (int, error) {
	var n int
	err := repo.r.run(func(st *state) error {
		for _, t := range st.tables {
			if t.TenantID == tenantID && t.Status == domain.TableStatusAvailable && t.Capacity >= partySize {
				n++
			}
		}
		return nil
	})
	return n, err
}

// LockForBooking is a plain read here: the store mutex already serializes
// whole transactions, which is stronger than the row lock the postgres
// implementation takes.
func (repo *tableRepo) LockForBooking(ctx context.Context, tenantID, id uuid.UUID) (*domain.Table, error) {
	return repo.GetByID(ctx, tenantID, id)
}

// ---------------------------------------------------------------------------
// Reservations
// ---------------------------------------------------------------------------

type reservationRepo struct{ r runner }

func sameDay(a, b time.Time) bool {
	return a.UTC().Format("2006-01-02") == b.UTC().Format("2006-01-02")
}

func (repo *reservationRepo) Create(_ context.Context, res *domain.Reservation) error {
	return repo.r.run(func(st *state) error {
		if _, ok := st.reservations[res.ID]; ok {
			return fmt.Errorf("memory.reservationRepo.Create: %w", domain.ErrConflict)
		}
		cp := *res
		st.reservations[res.ID] = &cp
		return nil
	})
}

func (repo *reservationRepo) GetByID(_ context.Context, tenantID, id uuid.UUID) (*domain.Reservation, error) {
	var out *domain.Reservation
	err := repo.r.run(func(st *state) error {
		res, ok := st.reservations[id]
		if !ok || res.TenantID != tenantID {
			return fmt.Errorf("memory.reservationRepo.GetByID: %w", domain.ErrNotFound)
		}
		cp := *res
		out = &cp
		return nil
	})
	return out, err
}

func (repo *reservationRepo) List(_ context.Context, tenantID uuid.UUID, date *time.Time, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	err := repo.r.run(func(st *state) error {
		for _, res := range st.reservations {
			if res.TenantID != tenantID {
				continue
			}
			if date != nil && !sameDay(res.Date, *date) {
				continue
			}
			if status != nil && res.Status != *status {
				continue
			}
			cp := *res
			out = append(out, &cp)
		}
		sort.Slice(out, func(i, j int) bool {
			if !out[i].Date.Equal(out[j].Date) {
				return out[i].Date.After(out[j].Date)
			}
			return out[i].Time < out[j].Time
		})
		return nil
	})
	return out, err
}

func (repo *reservationRepo) UpdateStatus(_ context.Context, tenantID, id uuid.UUID, status domain.ReservationStatus) error {
	return repo.r.run(func(st *state) error {
		res, ok := st.reservations[id]
		if !ok || res.TenantID != tenantID {
			return fmt.Errorf("memory.reservationRepo.UpdateStatus: %w", domain.ErrNotFound)
		}
		cp := *res
		cp.Status = status
		cp.UpdatedAt = time.Now()
		st.reservations[id] = &cp
		return nil
	})
}

func (repo *reservationRepo) ListActiveByDate(_ context.Context, tenantID uuid.UUID, date time.Time) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	err := repo.r.run(func(st *state) error {
		for _, res := range st.reservations {
			if res.TenantID == tenantID && res.Status != domain.ReservationStatusCancelled && sameDay(res.Date, date) {
				cp := *res
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
		return nil
	})
	return out, err
}

func (repo *reservationRepo) ListActiveByTable(_ context.Context, tenantID, tableID uuid.UUID, date time.Time) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	err := repo.r.run(func(st *state) error {
		for _, res := range st.reservations {
			if res.TenantID == tenantID && res.TableID == tableID &&
				res.Status != domain.ReservationStatusCancelled && sameDay(res.Date, date) {
				cp := *res
				out = append(out, &cp)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
		return nil
	})
	return out, err
}

// ---------------------------------------------------------------------------
// Counters
// ---------------------------------------------------------------------------

type counterRepo struct{ r runner }

func (repo *counterRepo) ReserveMonthlySlot(_ context.Context, tenantID uuid.UUID, now time.Time, capacity int) (int, error) {
	var count int
	err := repo.r.run(func(st *state) error {
		key := counterKey{tenantID, domain.PeriodKindMonth, domain.MonthKey(now)}
		if st.counters[key] >= capacity {
			return fmt.Errorf("memory.counterRepo.ReserveMonthlySlot: %w", domain.ErrCapacityExceeded)
		}
		st.counters[key]++
		count = st.counters[key]
		return nil
	})
	return count, err
}

func (repo *counterRepo) NextDailySequence(_ context.Context, tenantID uuid.UUID, now time.Time) (int, error) {
	var seq int
	err := repo.r.run(func(st *state) error {
		key := counterKey{tenantID, domain.PeriodKindDay, domain.DayKey(now)}
		st.counters[key]++
		seq = st.counters[key]
		return nil
	})
	return seq, err
}

func (repo *counterRepo) Get(_ context.Context, tenantID uuid.UUID, periodKind, periodValue string) (int, error) {
	var count int
	err := repo.r.run(func(st *state) error {
		count = st.counters[counterKey{tenantID, periodKind, periodValue}]
		return nil
	})
	return count, err
}
