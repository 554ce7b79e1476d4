package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
)

// Tenant is one restaurant account. Capacity, promotions, tables and orders
// are fully isolated per tenant.
type Tenant struct {
	ID              uuid.UUID    `json:"id"`
	Name            string       `json:"name"`
	Subdomain       string       `json:"subdomain,omitempty"`
	MonthlyCapacity int          `json:"monthly_capacity"`
	Status          TenantStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

type TenantRepository interface {
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status TenantStatus) error
	List(ctx context.Context) ([]*Tenant, error)
}
