package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dineflow/dineflow/internal/domain"
)

// CounterRepo keeps the per-tenant order counters. Both increments are
// single upserts whose guard and update execute atomically, which is what
// lets N concurrent admissions against capacity C commit exactly C rows.
type CounterRepo struct {
	db querier
}

func NewCounterRepo(db querier) *CounterRepo {
	return &CounterRepo{db: db}
}

func (r *CounterRepo) ReserveMonthlySlot(ctx context.Context, tenantID uuid.UUID, now time.Time, capacity int) (int, error) {
	var count int

	// The WHERE clause on the upsert leaves a full counter untouched and
	// returns no row, which reads back as capacity exceeded.
	err := r.db.QueryRow(ctx,
		`INSERT INTO order_counters (tenant_id, period_kind, period_value, count)
		 SELECT $1, $2, $3, 1 WHERE $4 >= 1
		 ON CONFLICT (tenant_id, period_kind, period_value)
		 DO UPDATE SET count = order_counters.count + 1
		 WHERE order_counters.count < $4
		 RETURNING count`,
		tenantID, domain.PeriodKindMonth, domain.MonthKey(now), capacity,
	).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("counterRepo.ReserveMonthlySlot: %w", domain.ErrCapacityExceeded)
	}
	if err != nil {
		return 0, fmt.Errorf("counterRepo.ReserveMonthlySlot: %w", err)
	}

	return count, nil
}

func (r *CounterRepo) NextDailySequence(ctx context.Context, tenantID uuid.UUID, now time.Time) (int, error) {
	var seq int

	err := r.db.QueryRow(ctx,
		`INSERT INTO order_counters (tenant_id, period_kind, period_value, count)
		 VALUES ($1, $2, $3, 1)
		 ON CONFLICT (tenant_id, period_kind, period_value)
		 DO UPDATE SET count = order_counters.count + 1
		 RETURNING count`,
		tenantID, domain.PeriodKindDay, domain.DayKey(now),
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("counterRepo.NextDailySequence: %w", err)
	}

	return seq, nil
}

func (r *CounterRepo) Get(ctx context.Context, tenantID uuid.UUID, periodKind, periodValue string) (int, error) {
	var count int

	err := r.db.QueryRow(ctx,
		`SELECT count FROM order_counters
		 WHERE tenant_id = $1 AND period_kind = $2 AND period_value = $3`,
		tenantID, periodKind, periodValue,
	).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("counterRepo.Get: %w", err)
	}

	return count, nil
}
