package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/booking"
	"github.com/dineflow/dineflow/internal/domain"
	"github.com/dineflow/dineflow/internal/server/middleware"
)

type CreateOrderInput struct {
	Body struct {
		Type            string             `json:"type" enum:"pickup,delivery,dine_in" doc:"Order type"`
		Items           []domain.OrderItem `json:"items" minItems:"1" doc:"Order line items"`
		TotalCents      int                `json:"total_cents" minimum:"0" doc:"Order total in cents"`
		CustomerName    string             `json:"customer_name" minLength:"1" maxLength:"200" doc:"Customer name"`
		CustomerPhone   string             `json:"customer_phone,omitempty" doc:"Customer phone"`
		DeliveryAddress string             `json:"delivery_address,omitempty" doc:"Delivery address (required for delivery orders)"`
		PromotionID     *uuid.UUID         `json:"promotion_id,omitempty" doc:"Promotion to redeem"`
		TableID         *uuid.UUID         `json:"table_id,omitempty" doc:"Table for dine-in orders"`
	}
}

type CreateOrderOutput struct {
	Body *booking.OrderReceipt
}

type ListOrdersOutput struct {
	Body []*domain.Order
}

type GetOrderInput struct {
	ID uuid.UUID `path:"id" doc:"Order ID"`
}

type GetOrderOutput struct {
	Body *domain.Order
}

type TransitionOrderStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Order ID"`
	Body struct {
		Status string `json:"status" enum:"confirmed,preparing,ready,delivered,cancelled" doc:"Target status"`
	}
}

type TransitionOrderStatusOutput struct {
	Body *domain.Order
}

func RegisterOrderRoutes(api huma.API, svc BookingService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-order",
		Method:      http.MethodPost,
		Path:        "/orders",
		Summary:     "Place a new order",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, input *CreateOrderInput) (*CreateOrderOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		receipt, err := svc.CreateOrder(ctx, booking.CreateOrderInput{
			TenantID:        tenantID,
			Type:            domain.OrderType(input.Body.Type),
			Items:           input.Body.Items,
			TotalCents:      input.Body.TotalCents,
			CustomerName:    input.Body.CustomerName,
			CustomerPhone:   input.Body.CustomerPhone,
			DeliveryAddress: input.Body.DeliveryAddress,
			PromotionID:     input.Body.PromotionID,
			TableID:         input.Body.TableID,
		})
		if err != nil {
			return nil, mapWorkflowError(err, "failed to create order")
		}

		return &CreateOrderOutput{Body: receipt}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-orders",
		Method:      http.MethodGet,
		Path:        "/orders",
		Summary:     "List orders, newest first",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, _ *struct{}) (*ListOrdersOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		orders, err := svc.ListOrders(ctx, tenantID)
		if err != nil {
			return nil, mapWorkflowError(err, "failed to list orders")
		}

		return &ListOrdersOutput{Body: orders}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-order",
		Method:      http.MethodGet,
		Path:        "/orders/{id}",
		Summary:     "Get an order by ID",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, input *GetOrderInput) (*GetOrderOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		o, err := svc.GetOrder(ctx, tenantID, input.ID)
		if err != nil {
			return nil, mapWorkflowError(err, "failed to get order")
		}

		return &GetOrderOutput{Body: o}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "transition-order-status",
		Method:      http.MethodPatch,
		Path:        "/orders/{id}/status",
		Summary:     "Advance an order along its lifecycle",
		Tags:        []string{"Orders"},
	}, func(ctx context.Context, input *TransitionOrderStatusInput) (*TransitionOrderStatusOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		updated, err := svc.TransitionOrderStatus(ctx, tenantID, input.ID, domain.OrderStatus(input.Body.Status))
		if err != nil {
			return nil, mapWorkflowError(err, "failed to update order status")
		}

		return &TransitionOrderStatusOutput{Body: updated}, nil
	})
}
