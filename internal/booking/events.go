package booking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EventPublisher fans committed state changes out to subscribers
// (dashboards, notifiers). *redis.PubSub satisfies this. Publishing is
// best-effort and happens strictly after commit; a failed publish is
// logged, never rolled into the workflow result.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// OrdersChannel returns the event channel for a tenant's orders.
func OrdersChannel(tenantID uuid.UUID) string {
	return "orders:" + tenantID.String()
}

// ReservationsChannel returns the event channel for a tenant's reservations.
func ReservationsChannel(tenantID uuid.UUID) string {
	return "reservations:" + tenantID.String()
}

type OrderCreatedEvent struct {
	Kind             string    `json:"kind"` // "order.created"
	OrderID          uuid.UUID `json:"order_id"`
	TenantID         uuid.UUID `json:"tenant_id"`
	OrderNumber      string    `json:"order_number"`
	EstimatedReadyAt time.Time `json:"estimated_ready_at"`
}

type ReservationCreatedEvent struct {
	Kind          string    `json:"kind"` // "reservation.created"
	ReservationID uuid.UUID `json:"reservation_id"`
	TenantID      uuid.UUID `json:"tenant_id"`
	TableNumber   int       `json:"table_number"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
}

func (s *Service) publish(ctx context.Context, channel string, event any) {
	if s.events == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("channel", channel).Msg("marshal event")
		return
	}
	if err := s.events.Publish(ctx, channel, payload); err != nil {
		log.Warn().Err(err).Str("channel", channel).Msg("publish event")
	}
}
