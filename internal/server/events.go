package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dineflow/dineflow/internal/booking"
	"github.com/dineflow/dineflow/internal/server/middleware"
)

// EventStreamer feeds the live event stream. *redis.PubSub satisfies this.
type EventStreamer interface {
	Subscribe(ctx context.Context, channel string) (<-chan []byte, func(), error)
}

// streamTenantEvents serves the tenant's committed order and reservation
// events as server-sent events, for dashboards and kitchen displays. The
// stream ends when the client disconnects.
func streamTenantEvents(events EventStreamer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tenantID, ok := middleware.TenantIDFromContext(r.Context())
		if !ok {
			http.Error(w, `{"title":"Forbidden","status":403,"detail":"missing tenant context"}`, http.StatusForbidden)
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, `{"title":"Internal Server Error","status":500,"detail":"streaming unsupported"}`, http.StatusInternalServerError)
			return
		}

		ctx := r.Context()

		orders, closeOrders, err := events.Subscribe(ctx, booking.OrdersChannel(tenantID))
		if err != nil {
			http.Error(w, `{"title":"Service Unavailable","status":503,"detail":"event stream unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		defer closeOrders()

		reservations, closeReservations, err := events.Subscribe(ctx, booking.ReservationsChannel(tenantID))
		if err != nil {
			http.Error(w, `{"title":"Service Unavailable","status":503,"detail":"event stream unavailable"}`, http.StatusServiceUnavailable)
			return
		}
		defer closeReservations()

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for orders != nil || reservations != nil {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-orders:
				if !ok {
					orders = nil
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", payload)
				flusher.Flush()
			case payload, ok := <-reservations:
				if !ok {
					reservations = nil
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", payload)
				flusher.Flush()
			}
		}
	}
}
