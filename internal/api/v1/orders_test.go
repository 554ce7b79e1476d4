package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/dineflow/dineflow/internal/api/v1"
	"github.com/dineflow/dineflow/internal/booking"
	"github.com/dineflow/dineflow/internal/domain"
)

// ---------------------------------------------------------------------------
// TestCreateOrder
// ---------------------------------------------------------------------------

func TestCreateOrder(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()

	orderBody := map[string]any{
		"type":          "pickup",
		"items":         []map[string]any{{"name": "Margherita", "quantity": 1, "price_cents": 1250}},
		"total_cents":   1250,
		"customer_name": "Ada",
	}

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		orderID := uuid.New()
		readyAt := time.Date(2024, 1, 15, 12, 20, 0, 0, time.UTC)

		_, api := humatest.New(t)
		svc := &mockBookingService{
			createOrderFunc: func(_ context.Context, in booking.CreateOrderInput) (*booking.OrderReceipt, error) {
				assert.Equal(t, tenantID, in.TenantID)
				assert.Equal(t, domain.OrderTypePickup, in.Type)
				assert.Equal(t, 1250, in.TotalCents)
				assert.Equal(t, "Ada", in.CustomerName)
				require.Len(t, in.Items, 1)
				assert.Equal(t, "Margherita", in.Items[0].Name)
				return &booking.OrderReceipt{
					OrderID:          orderID,
					OrderNumber:      "20240115-001",
					EstimatedReadyAt: readyAt,
				}, nil
			},
		}
		v1.RegisterOrderRoutes(api, svc)

		resp := api.PostCtx(tenantCtx(tenantID), "/orders", orderBody)

		require.Equal(t, http.StatusOK, resp.Code)

		var receipt booking.OrderReceipt
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&receipt))
		assert.Equal(t, orderID, receipt.OrderID)
		assert.Equal(t, "20240115-001", receipt.OrderNumber)
		assert.True(t, readyAt.Equal(receipt.EstimatedReadyAt))
	})

	t.Run("capacity_exceeded_maps_to_429", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBookingService{
			createOrderFunc: func(_ context.Context, _ booking.CreateOrderInput) (*booking.OrderReceipt, error) {
				return nil, domain.ErrCapacityExceeded
			},
		}
		v1.RegisterOrderRoutes(api, svc)

		resp := api.PostCtx(tenantCtx(tenantID), "/orders", orderBody)
		assert.Equal(t, http.StatusTooManyRequests, resp.Code)
	})

	t.Run("inactive_tenant_maps_to_403", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBookingService{
			createOrderFunc: func(_ context.Context, _ booking.CreateOrderInput) (*booking.OrderReceipt, error) {
				return nil, domain.ErrTenantInactive
			},
		}
		v1.RegisterOrderRoutes(api, svc)

		resp := api.PostCtx(tenantCtx(tenantID), "/orders", orderBody)
		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("promotion_not_applicable_maps_to_422", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBookingService{
			createOrderFunc: func(_ context.Context, _ booking.CreateOrderInput) (*booking.OrderReceipt, error) {
				return nil, domain.ErrPromotionNotApplicable
			},
		}
		v1.RegisterOrderRoutes(api, svc)

		resp := api.PostCtx(tenantCtx(tenantID), "/orders", orderBody)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})

	t.Run("concurrency_conflict_maps_to_503", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBookingService{
			createOrderFunc: func(_ context.Context, _ booking.CreateOrderInput) (*booking.OrderReceipt, error) {
				return nil, domain.ErrConcurrencyConflict
			},
		}
		v1.RegisterOrderRoutes(api, svc)

		resp := api.PostCtx(tenantCtx(tenantID), "/orders", orderBody)
		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	})

	t.Run("missing_tenant_context_is_403", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBookingService{}
		v1.RegisterOrderRoutes(api, svc)

		resp := api.Post("/orders", orderBody)
		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("empty_items_rejected_by_schema", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBookingService{}
		v1.RegisterOrderRoutes(api, svc)

		resp := api.PostCtx(tenantCtx(tenantID), "/orders", map[string]any{
			"type":          "pickup",
			"items":         []map[string]any{},
			"total_cents":   0,
			"customer_name": "Ada",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

// ---------------------------------------------------------------------------
// TestGetOrder / TestListOrders
// ---------------------------------------------------------------------------

func TestGetOrder(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	orderID := uuid.New()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBookingService{
			getOrderFunc: func(_ context.Context, tid, oid uuid.UUID) (*domain.Order, error) {
				assert.Equal(t, tenantID, tid)
				assert.Equal(t, orderID, oid)
				return &domain.Order{
					ID:          orderID,
					TenantID:    tenantID,
					OrderNumber: "20240115-007",
					Status:      domain.OrderStatusNew,
				}, nil
			},
		}
		v1.RegisterOrderRoutes(api, svc)

		resp := api.GetCtx(tenantCtx(tenantID), "/orders/"+orderID.String())

		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Order
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "20240115-007", body.OrderNumber)
	})

	t.Run("not_found_maps_to_404", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBookingService{
			getOrderFunc: func(_ context.Context, _, _ uuid.UUID) (*domain.Order, error) {
				return nil, domain.ErrNotFound
			},
		}
		v1.RegisterOrderRoutes(api, svc)

		resp := api.GetCtx(tenantCtx(tenantID), "/orders/"+orderID.String())
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestListOrders(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()

	_, api := humatest.New(t)
	svc := &mockBookingService{
		listOrdersFunc: func(_ context.Context, tid uuid.UUID) ([]*domain.Order, error) {
			assert.Equal(t, tenantID, tid)
			return []*domain.Order{
				{ID: uuid.New(), OrderNumber: "20240115-002"},
				{ID: uuid.New(), OrderNumber: "20240115-001"},
			}, nil
		},
	}
	v1.RegisterOrderRoutes(api, svc)

	resp := api.GetCtx(tenantCtx(tenantID), "/orders")

	require.Equal(t, http.StatusOK, resp.Code)

	var body []*domain.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 2)
	assert.Equal(t, "20240115-002", body[0].OrderNumber)
}

// ---------------------------------------------------------------------------
// TestTransitionOrderStatus
// ---------------------------------------------------------------------------

func TestTransitionOrderStatus(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	orderID := uuid.New()

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBookingService{
			transitionOrderStatusFunc: func(_ context.Context, tid, oid uuid.UUID, target domain.OrderStatus) (*domain.Order, error) {
				assert.Equal(t, tenantID, tid)
				assert.Equal(t, orderID, oid)
				assert.Equal(t, domain.OrderStatusConfirmed, target)
				return &domain.Order{ID: orderID, Status: domain.OrderStatusConfirmed}, nil
			},
		}
		v1.RegisterOrderRoutes(api, svc)

		resp := api.PatchCtx(tenantCtx(tenantID), "/orders/"+orderID.String()+"/status", map[string]any{
			"status": "confirmed",
		})

		require.Equal(t, http.StatusOK, resp.Code)

		var body domain.Order
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, domain.OrderStatusConfirmed, body.Status)
	})

	t.Run("skipping_a_stage_maps_to_400", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBookingService{
			transitionOrderStatusFunc: func(_ context.Context, _, _ uuid.UUID, _ domain.OrderStatus) (*domain.Order, error) {
				return nil, domain.ErrInvalidTransition
			},
		}
		v1.RegisterOrderRoutes(api, svc)

		resp := api.PatchCtx(tenantCtx(tenantID), "/orders/"+orderID.String()+"/status", map[string]any{
			"status": "ready",
		})
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("unknown_status_rejected_by_schema", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		svc := &mockBookingService{}
		v1.RegisterOrderRoutes(api, svc)

		resp := api.PatchCtx(tenantCtx(tenantID), "/orders/"+orderID.String()+"/status", map[string]any{
			"status": "teleported",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}
