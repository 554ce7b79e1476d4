package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Promotion is a tenant-scoped discount with an optional usage budget.
// Invariant: UsageLimit != nil implies UsedCount <= *UsageLimit at every
// committed state.
type Promotion struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Type          string    `json:"type"`
	DiscountValue int       `json:"discount_value"`
	UsageLimit    *int      `json:"usage_limit,omitempty"`
	UsedCount     int       `json:"used_count"`
	Active        bool      `json:"active"`
	StartDate     time.Time `json:"start_date"`
	EndDate       time.Time `json:"end_date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Applicable reports whether the promotion can be redeemed at the given
// instant, ignoring concurrent redemptions. The authoritative check-and-
// increment lives in PromotionRepository.ApplyUsage.
func (p *Promotion) Applicable(now time.Time) bool {
	if !p.Active {
		return false
	}
	if now.Before(p.StartDate) || now.After(p.EndDate) {
		return false
	}
	if p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit {
		return false
	}
	return true
}

type PromotionRepository interface {
	Create(ctx context.Context, p *Promotion) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Promotion, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]*Promotion, error)
	ListActive(ctx context.Context, tenantID uuid.UUID, now time.Time) ([]*Promotion, error)
	Update(ctx context.Context, p *Promotion) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// ApplyUsage atomically increments used_count by one, succeeding only
	// while the promotion is active, inside its date window, and under its
	// usage limit. The check and the increment are indivisible: two
	// concurrent redemptions of the last slot never both succeed.
	// Returns the new used_count, ErrPromotionNotApplicable when the guard
	// fails, or ErrNotFound when no such promotion exists.
	ApplyUsage(ctx context.Context, tenantID, id uuid.UUID, now time.Time) (int, error)
}
