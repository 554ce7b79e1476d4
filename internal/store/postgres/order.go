package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dineflow/dineflow/internal/domain"
)

type OrderRepo struct {
	db querier
}

func NewOrderRepo(db querier) *OrderRepo {
	return &OrderRepo{db: db}
}

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO orders (id, tenant_id, order_number, type, status, items, total_cents,
		        customer_name, customer_phone, delivery_address, promotion_id, table_id,
		        estimated_ready_at, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.TenantID, o.OrderNumber, o.Type, o.Status, o.Items, o.TotalCents,
		o.CustomerName, o.CustomerPhone, o.DeliveryAddress, o.PromotionID, o.TableID,
		o.EstimatedReadyAt, o.CreatedAt, o.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("orderRepo.Create: number %s: %w", o.OrderNumber, domain.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("orderRepo.Create: %w", err)
	}

	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*domain.Order, error) {
	var o domain.Order

	err := r.db.QueryRow(ctx,
		`SELECT id, tenant_id, order_number, type, status, items, total_cents,
		        customer_name, customer_phone, delivery_address, promotion_id, table_id,
		        estimated_ready_at, created_at, updated_at
		 FROM orders WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	).Scan(
		&o.ID, &o.TenantID, &o.OrderNumber, &o.Type, &o.Status, &o.Items, &o.TotalCents,
		&o.CustomerName, &o.CustomerPhone, &o.DeliveryAddress, &o.PromotionID, &o.TableID,
		&o.EstimatedReadyAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("orderRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("orderRepo.GetByID: %w", err)
	}

	return &o, nil
}

func (r *OrderRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Order, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tenant_id, order_number, type, status, items, total_cents,
		        customer_name, customer_phone, delivery_address, promotion_id, table_id,
		        estimated_ready_at, created_at, updated_at
		 FROM orders WHERE tenant_id = $1
		 ORDER BY created_at DESC
		 LIMIT 1000`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("orderRepo.List: %w", err)
	}
	defer rows.Close()

	var out []*domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.ID, &o.TenantID, &o.OrderNumber, &o.Type, &o.Status, &o.Items, &o.TotalCents,
			&o.CustomerName, &o.CustomerPhone, &o.DeliveryAddress, &o.PromotionID, &o.TableID,
			&o.EstimatedReadyAt, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("orderRepo.List: %w", err)
		}
		out = append(out, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orderRepo.List: %w", err)
	}

	return out, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status domain.OrderStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE orders SET status = $1, updated_at = now() WHERE tenant_id = $2 AND id = $3`,
		status, tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("orderRepo.UpdateStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("orderRepo.UpdateStatus: %w", domain.ErrNotFound)
	}

	return nil
}
