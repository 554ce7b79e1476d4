package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dineflow/dineflow/internal/domain"
)

type TableRepo struct {
	db querier
}

func NewTableRepo(db querier) *TableRepo {
	return &TableRepo{db: db}
}

func (r *TableRepo) Create(ctx context.Context, t *domain.Table) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO tables (id, tenant_id, table_number, capacity, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.TenantID, t.TableNumber, t.Capacity, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("tableRepo.Create: number %d: %w", t.TableNumber, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("tableRepo.Create: %w", err)
	}

	return nil
}

func (r *TableRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Table, error) {
	return r.get(ctx, tenantID, id, "")
}

// LockForBooking takes a row lock on the table so concurrent bookings
// against it serialize for the rest of the transaction.
func (r *TableRepo) LockForBooking(ctx context.Context, tenantID, id uuid.UUID) (*domain.Table, error) {
	return r.get(ctx, tenantID, id, " FOR UPDATE")
}

func (r *TableRepo) get(ctx context.Context, tenantID, id uuid.UUID, suffix string) (*domain.Table, error) {
	var t domain.Table

	err := r.db.QueryRow(ctx,
		`SELECT id, tenant_id, table_number, capacity, status, created_at, updated_at
		 FROM tables WHERE tenant_id = $1 AND id = $2`+suffix,
		tenantID, id,
	).Scan(&t.ID, &t.TenantID, &t.TableNumber, &t.Capacity, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tableRepo.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("tableRepo.Get: %w", err)
	}

	return &t, nil
}

func (r *TableRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Table, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tenant_id, table_number, capacity, status, created_at, updated_at
		 FROM tables WHERE tenant_id = $1
		 ORDER BY table_number
		 LIMIT 1000`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("tableRepo.List: %w", err)
	}
	defer rows.Close()

	var out []*domain.Table
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.TenantID, &t.TableNumber, &t.Capacity, &t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("tableRepo.List: %w", err)
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tableRepo.List: %w", err)
	}

	return out, nil
}

func (r *TableRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status domain.TableStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tables SET status = $1, updated_at = now() WHERE tenant_id = $2 AND id = $3`,
		status, tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("tableRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tableRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TableRepo) FindBestFit(ctx context.Context, tenantID uuid.UUID, partySize int) (*domain.Table, error) {
	var t domain.Table

	err := r.db.QueryRow(ctx,
		`SELECT id, tenant_id, table_number, capacity, status, created_at, updated_at
		 FROM tables
		 WHERE tenant_id = $1 AND status = 'available' AND capacity >= $2
		 ORDER BY capacity, table_number
		 LIMIT 1`,
		tenantID, partySize,
	).Scan(&t.ID, &t.TenantID, &t.TableNumber, &t.Capacity, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tableRepo.FindBestFit: party of %d: %w", partySize, domain.ErrNoTableAvailable)
	}
	if err != nil {
		return nil, fmt.Errorf("tableRepo.FindBestFit: %w", err)
	}

	return &t, nil
}

func (r *TableRepo) CountAvailableWithCapacity(ctx context.Context, tenantID uuid.UUID, partySize int) (int, error) {
	var n int

	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM tables
		 WHERE tenant_id = $1 AND status = 'available' AND capacity >= $2`,
		tenantID, partySize,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("tableRepo.CountAvailableWithCapacity: %w", err)
	}

	return n, nil
}
