package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidTransition is returned for a disallowed order status change.
var ErrInvalidTransition = errors.New("order: invalid status transition")

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Terminal reports whether the status admits no further transitions.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ValidTransition checks if an order state transition is allowed.
// The machine is forward-only, one step at a time:
// new->confirmed->preparing->ready->delivered. Cancellation is allowed
// from any non-terminal state.
func (s OrderStatus) ValidTransition(to OrderStatus) bool {
	if to == OrderStatusCancelled {
		return !s.Terminal()
	}
	switch s {
	case OrderStatusNew:
		return to == OrderStatusConfirmed
	case OrderStatusConfirmed:
		return to == OrderStatusPreparing
	case OrderStatusPreparing:
		return to == OrderStatusReady
	case OrderStatusReady:
		return to == OrderStatusDelivered
	default:
		return false
	}
}

type OrderType string

const (
	OrderTypePickup   OrderType = "pickup"
	OrderTypeDelivery OrderType = "delivery"
	OrderTypeDineIn   OrderType = "dine_in"
)

type OrderItem struct {
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int    `json:"price_cents"`
}

type Order struct {
	ID               uuid.UUID   `json:"id"`
	TenantID         uuid.UUID   `json:"tenant_id"`
	OrderNumber      string      `json:"order_number"`
	Type             OrderType   `json:"type"`
	Status           OrderStatus `json:"status"`
	Items            []OrderItem `json:"items"`
	TotalCents       int         `json:"total_cents"`
	CustomerName     string      `json:"customer_name"`
	CustomerPhone    string      `json:"customer_phone,omitempty"`
	DeliveryAddress  string      `json:"delivery_address,omitempty"`
	PromotionID      *uuid.UUID  `json:"promotion_id,omitempty"`
	TableID          *uuid.UUID  `json:"table_id,omitempty"`
	EstimatedReadyAt time.Time   `json:"estimated_ready_at"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

type OrderRepository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]*Order, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status OrderStatus) error
}
