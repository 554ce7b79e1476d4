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

type PromotionRepo struct {
	db querier
}

func NewPromotionRepo(db querier) *PromotionRepo {
	return &PromotionRepo{db: db}
}

func (r *PromotionRepo) Create(ctx context.Context, p *domain.Promotion) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO promotions (id, tenant_id, name, description, type, discount_value,
		        usage_limit, used_count, active, start_date, end_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.TenantID, p.Name, p.Description, p.Type, p.DiscountValue,
		p.UsageLimit, p.UsedCount, p.Active, p.StartDate, p.EndDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("promotionRepo.Create: %w", err)
	}

	return nil
}

func (r *PromotionRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Promotion, error) {
	var p domain.Promotion

	err := r.db.QueryRow(ctx,
		`SELECT id, tenant_id, name, description, type, discount_value,
		        usage_limit, used_count, active, start_date, end_date, created_at, updated_at
		 FROM promotions WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.Description, &p.Type, &p.DiscountValue,
		&p.UsageLimit, &p.UsedCount, &p.Active, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("promotionRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("promotionRepo.GetByID: %w", err)
	}

	return &p, nil
}

func (r *PromotionRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Promotion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tenant_id, name, description, type, discount_value,
		        usage_limit, used_count, active, start_date, end_date, created_at, updated_at
		 FROM promotions WHERE tenant_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1000`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("promotionRepo.List: %w", err)
	}
	defer rows.Close()

	return scanPromotions(rows, "promotionRepo.List")
}

func (r *PromotionRepo) ListActive(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]*domain.Promotion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tenant_id, name, description, type, discount_value,
		        usage_limit, used_count, active, start_date, end_date, created_at, updated_at
		 FROM promotions
		 WHERE tenant_id = $1 AND active
		   AND start_date <= $2 AND end_date >= $2
		   AND (usage_limit IS NULL OR used_count < usage_limit)
		 ORDER BY created_at DESC
		 LIMIT 1000`,
		tenantID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("promotionRepo.ListActive: %w", err)
	}
	defer rows.Close()

	return scanPromotions(rows, "promotionRepo.ListActive")
}

func (r *PromotionRepo) Update(ctx context.Context, p *domain.Promotion) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE promotions SET name = $1, description = $2, type = $3, discount_value = $4,
		        usage_limit = $5, active = $6, start_date = $7, end_date = $8, updated_at = now()
		 WHERE tenant_id = $9 AND id = $10`,
		p.Name, p.Description, p.Type, p.DiscountValue,
		p.UsageLimit, p.Active, p.StartDate, p.EndDate,
		p.TenantID, p.ID,
	)
	if err != nil {
		return fmt.Errorf("promotionRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("promotionRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *PromotionRepo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM promotions WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("promotionRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("promotionRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

// ApplyUsage is the conditional increment the promotion ledger relies on.
// The guard and the update run in one statement; a concurrent redemption
// of the last slot leaves exactly one winner.
func (r *PromotionRepo) ApplyUsage(ctx context.Context, tenantID, id uuid.UUID, now time.Time) (int, error) {
	var used int

	err := r.db.QueryRow(ctx,
		`UPDATE promotions
		 SET used_count = used_count + 1, updated_at = now()
		 WHERE tenant_id = $1 AND id = $2 AND active
		   AND start_date <= $3 AND end_date >= $3
		   AND (usage_limit IS NULL OR used_count < usage_limit)
		 RETURNING used_count`,
		tenantID, id, now,
	).Scan(&used)
	if errors.Is(err, pgx.ErrNoRows) {
		// Guard failed or no such promotion; tell the two apart.
		var exists bool
		if err := r.db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM promotions WHERE tenant_id = $1 AND id = $2)`,
			tenantID, id,
		).Scan(&exists); err != nil {
			return 0, fmt.Errorf("promotionRepo.ApplyUsage: %w", err)
		}
		if !exists {
			return 0, fmt.Errorf("promotionRepo.ApplyUsage: %w", domain.ErrNotFound)
		}
		return 0, fmt.Errorf("promotionRepo.ApplyUsage: %w", domain.ErrPromotionNotApplicable)
	}
	if err != nil {
		return 0, fmt.Errorf("promotionRepo.ApplyUsage: %w", err)
	}

	return used, nil
}

func scanPromotions(rows pgx.Rows, op string) ([]*domain.Promotion, error) {
	var out []*domain.Promotion
	for rows.Next() {
		var p domain.Promotion
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.Name, &p.Description, &p.Type, &p.DiscountValue,
			&p.UsageLimit, &p.UsedCount, &p.Active, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
