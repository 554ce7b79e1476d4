package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/dineflow/dineflow/internal/domain"
)

// CreateOrderInput is the validated payload for the order creation
// workflow. Totals are caller-supplied; see DESIGN.md on recomputation.
type CreateOrderInput struct {
	TenantID        uuid.UUID
	Type            domain.OrderType
	Items           []domain.OrderItem
	TotalCents      int
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	PromotionID     *uuid.UUID
	TableID         *uuid.UUID
}

func (in *CreateOrderInput) Validate() error {
	switch in.Type {
	case domain.OrderTypePickup, domain.OrderTypeDelivery, domain.OrderTypeDineIn:
	default:
		return fmt.Errorf("%w: unknown order type %q", ErrInvalidInput, in.Type)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: order needs at least one item", ErrInvalidInput)
	}
	for _, item := range in.Items {
		if item.Name == "" || item.Quantity < 1 || item.PriceCents < 0 {
			return fmt.Errorf("%w: malformed item %q", ErrInvalidInput, item.Name)
		}
	}
	if in.TotalCents < 0 {
		return fmt.Errorf("%w: negative total", ErrInvalidInput)
	}
	if in.CustomerName == "" {
		return fmt.Errorf("%w: customer name required", ErrInvalidInput)
	}
	if in.Type == domain.OrderTypeDelivery && in.DeliveryAddress == "" {
		return fmt.Errorf("%w: delivery orders need an address", ErrInvalidInput)
	}

	return nil
}

// OrderReceipt is what the workflow hands back to the caller.
type OrderReceipt struct {
	OrderID          uuid.UUID `json:"order_id"`
	OrderNumber      string    `json:"order_number"`
	EstimatedReadyAt time.Time `json:"estimated_ready_at"`
}

// CreateOrder runs the full admission workflow inside one atomic unit:
// tenant check, capacity reservation, order-number minting, optional
// promotion debit, order persist. Any failure rolls back every prior
// write in the call; an order is never created with an unapplied
// discount.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (*OrderReceipt, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("booking.CreateOrder: %w", err)
	}

	start := s.now()
	eta := start.Add(s.cfg.DefaultETA)
	if in.Type == domain.OrderTypeDelivery {
		eta = start.Add(s.cfg.DeliveryETA)
	}

	var receipt *OrderReceipt
	err := s.withRetry(ctx, func() error {
		return s.store.InTx(ctx, func(tx domain.Store) error {
			tenant, err := tx.Tenants().GetByID(ctx, in.TenantID)
			if err != nil {
				return err
			}
			if tenant.Status != domain.TenantStatusActive {
				return fmt.Errorf("tenant %s: %w", tenant.ID, domain.ErrTenantInactive)
			}

			if _, err := s.admission.ReserveCapacity(ctx, tx, tenant, start); err != nil {
				return err
			}

			number, err := s.sequencer.NextOrderNumber(ctx, tx, tenant.ID, start)
			if err != nil {
				return err
			}

			if in.TableID != nil {
				// The table reference must resolve within the tenant
				// before it is written onto the order.
				if _, err := tx.Tables().GetByID(ctx, tenant.ID, *in.TableID); err != nil {
					return err
				}
			}

			if in.PromotionID != nil {
				// Fail-closed: an inapplicable promotion aborts the
				// whole order rather than creating it undiscounted.
				if _, err := s.ledger.ApplyUsage(ctx, tx, tenant.ID, *in.PromotionID, start); err != nil {
					return err
				}
			}

			order := &domain.Order{
				ID:               uuid.New(),
				TenantID:         tenant.ID,
				OrderNumber:      number,
				Type:             in.Type,
				Status:           domain.OrderStatusNew,
				Items:            in.Items,
				TotalCents:       in.TotalCents,
				CustomerName:     in.CustomerName,
				CustomerPhone:    in.CustomerPhone,
				DeliveryAddress:  in.DeliveryAddress,
				PromotionID:      in.PromotionID,
				TableID:          in.TableID,
				EstimatedReadyAt: eta,
				CreatedAt:        start,
				UpdatedAt:        start,
			}
			if err := tx.Orders().Create(ctx, order); err != nil {
				return err
			}

			receipt = &OrderReceipt{
				OrderID:          order.ID,
				OrderNumber:      order.OrderNumber,
				EstimatedReadyAt: order.EstimatedReadyAt,
			}
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("booking.CreateOrder: %w", err)
	}

	log.Info().
		Str("tenant_id", in.TenantID.String()).
		Str("order_number", receipt.OrderNumber).
		Str("order_type", string(in.Type)).
		Msg("order created")

	s.publish(ctx, OrdersChannel(in.TenantID), OrderCreatedEvent{
		Kind:             "order.created",
		OrderID:          receipt.OrderID,
		TenantID:         in.TenantID,
		OrderNumber:      receipt.OrderNumber,
		EstimatedReadyAt: receipt.EstimatedReadyAt,
	})

	return receipt, nil
}

// GetOrder returns one order with its status and ETA.
func (s *Service) GetOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*domain.Order, error) {
	o, err := s.store.Orders().GetByID(ctx, tenantID, orderID)
	if err != nil {
		return nil, fmt.Errorf("booking.GetOrder: %w", err)
	}

	return o, nil
}

// ListOrders returns a tenant's orders, newest first.
func (s *Service) ListOrders(ctx context.Context, tenantID uuid.UUID) ([]*domain.Order, error) {
	orders, err := s.store.Orders().List(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("booking.ListOrders: %w", err)
	}

	return orders, nil
}

// TransitionOrderStatus advances an order along its forward-only state
// machine. Terminal orders are immutable.
func (s *Service) TransitionOrderStatus(ctx context.Context, tenantID, orderID uuid.UUID, target domain.OrderStatus) (*domain.Order, error) {
	var updated *domain.Order
	err := s.store.InTx(ctx, func(tx domain.Store) error {
		order, err := tx.Orders().GetByID(ctx, tenantID, orderID)
		if err != nil {
			return err
		}
		if !order.Status.ValidTransition(target) {
			return fmt.Errorf("%s -> %s: %w", order.Status, target, domain.ErrInvalidTransition)
		}
		if err := tx.Orders().UpdateStatus(ctx, tenantID, orderID, target); err != nil {
			return err
		}

		order.Status = target
		order.UpdatedAt = s.now()
		updated = order
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("booking.TransitionOrderStatus: %w", err)
	}

	return updated, nil
}
