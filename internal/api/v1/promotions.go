package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/domain"
	"github.com/dineflow/dineflow/internal/server/middleware"
)

type CreatePromotionInput struct {
	Body struct {
		Name          string    `json:"name" minLength:"1" maxLength:"200" doc:"Promotion name"`
		Description   string    `json:"description,omitempty" doc:"Promotion description"`
		Type          string    `json:"type" enum:"percentage,fixed_amount" doc:"Discount type"`
		DiscountValue int       `json:"discount_value" minimum:"0" doc:"Discount value (percent or cents)"`
		UsageLimit    *int      `json:"usage_limit,omitempty" minimum:"1" doc:"Total redemptions allowed; unlimited when omitted"`
		StartDate     time.Time `json:"start_date" doc:"First instant the promotion applies"`
		EndDate       time.Time `json:"end_date" doc:"Last instant the promotion applies"`
	}
}

type CreatePromotionOutput struct {
	Body *domain.Promotion
}

type ListPromotionsInput struct {
	Active bool `query:"active" doc:"Only promotions redeemable right now"`
}

type ListPromotionsOutput struct {
	Body []*domain.Promotion
}

type GetPromotionInput struct {
	ID uuid.UUID `path:"id" doc:"Promotion ID"`
}

type GetPromotionOutput struct {
	Body *domain.Promotion
}

type UpdatePromotionInput struct {
	ID   uuid.UUID `path:"id" doc:"Promotion ID"`
	Body struct {
		Name          string     `json:"name,omitempty" maxLength:"200" doc:"Promotion name"`
		Description   *string    `json:"description,omitempty" doc:"Promotion description"`
		DiscountValue *int       `json:"discount_value,omitempty" minimum:"0" doc:"Discount value"`
		UsageLimit    *int       `json:"usage_limit,omitempty" minimum:"1" doc:"Total redemptions allowed"`
		Active        *bool      `json:"active,omitempty" doc:"Whether the promotion is live"`
		StartDate     *time.Time `json:"start_date,omitempty" doc:"First instant the promotion applies"`
		EndDate       *time.Time `json:"end_date,omitempty" doc:"Last instant the promotion applies"`
	}
}

type UpdatePromotionOutput struct {
	Body *domain.Promotion
}

type DeletePromotionInput struct {
	ID uuid.UUID `path:"id" doc:"Promotion ID"`
}

func RegisterPromotionRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-promotion",
		Method:      http.MethodPost,
		Path:        "/promotions",
		Summary:     "Create a promotion",
		Tags:        []string{"Promotions"},
	}, func(ctx context.Context, input *CreatePromotionInput) (*CreatePromotionOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		if input.Body.EndDate.Before(input.Body.StartDate) {
			return nil, huma.Error422UnprocessableEntity("end_date precedes start_date")
		}

		now := time.Now().UTC()
		p := &domain.Promotion{
			ID:            uuid.New(),
			TenantID:      tenantID,
			Name:          input.Body.Name,
			Description:   input.Body.Description,
			Type:          input.Body.Type,
			DiscountValue: input.Body.DiscountValue,
			UsageLimit:    input.Body.UsageLimit,
			Active:        true,
			StartDate:     input.Body.StartDate,
			EndDate:       input.Body.EndDate,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := store.Promotions().Create(ctx, p); err != nil {
			return nil, huma.Error500InternalServerError("failed to create promotion", err)
		}

		return &CreatePromotionOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-promotions",
		Method:      http.MethodGet,
		Path:        "/promotions",
		Summary:     "List promotions",
		Tags:        []string{"Promotions"},
	}, func(ctx context.Context, input *ListPromotionsInput) (*ListPromotionsOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		var (
			promotions []*domain.Promotion
			err        error
		)
		if input.Active {
			promotions, err = store.Promotions().ListActive(ctx, tenantID, time.Now().UTC())
		} else {
			promotions, err = store.Promotions().List(ctx, tenantID)
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list promotions", err)
		}

		return &ListPromotionsOutput{Body: promotions}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-promotion",
		Method:      http.MethodGet,
		Path:        "/promotions/{id}",
		Summary:     "Get a promotion by ID",
		Tags:        []string{"Promotions"},
	}, func(ctx context.Context, input *GetPromotionInput) (*GetPromotionOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		p, err := store.Promotions().GetByID(ctx, tenantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("promotion not found")
			}
			return nil, huma.Error500InternalServerError("failed to get promotion", err)
		}

		return &GetPromotionOutput{Body: p}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-promotion",
		Method:      http.MethodPut,
		Path:        "/promotions/{id}",
		Summary:     "Update a promotion",
		Tags:        []string{"Promotions"},
	}, func(ctx context.Context, input *UpdatePromotionInput) (*UpdatePromotionOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		existing, err := store.Promotions().GetByID(ctx, tenantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("promotion not found")
			}
			return nil, huma.Error500InternalServerError("failed to get promotion", err)
		}

		if input.Body.Name != "" {
			existing.Name = input.Body.Name
		}
		if input.Body.Description != nil {
			existing.Description = *input.Body.Description
		}
		if input.Body.DiscountValue != nil {
			existing.DiscountValue = *input.Body.DiscountValue
		}
		if input.Body.UsageLimit != nil {
			if *input.Body.UsageLimit < existing.UsedCount {
				return nil, huma.Error422UnprocessableEntity("usage_limit cannot be below used_count")
			}
			existing.UsageLimit = input.Body.UsageLimit
		}
		if input.Body.Active != nil {
			existing.Active = *input.Body.Active
		}
		if input.Body.StartDate != nil {
			existing.StartDate = *input.Body.StartDate
		}
		if input.Body.EndDate != nil {
			existing.EndDate = *input.Body.EndDate
		}
		if existing.EndDate.Before(existing.StartDate) {
			return nil, huma.Error422UnprocessableEntity("end_date precedes start_date")
		}
		existing.UpdatedAt = time.Now().UTC()

		if err := store.Promotions().Update(ctx, existing); err != nil {
			return nil, huma.Error500InternalServerError("failed to update promotion", err)
		}

		return &UpdatePromotionOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-promotion",
		Method:      http.MethodDelete,
		Path:        "/promotions/{id}",
		Summary:     "Delete a promotion",
		Tags:        []string{"Promotions"},
	}, func(ctx context.Context, input *DeletePromotionInput) (*struct{}, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		if err := store.Promotions().Delete(ctx, tenantID, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("promotion not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete promotion", err)
		}

		return nil, nil
	})
}
