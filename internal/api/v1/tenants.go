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

type CreateTenantInput struct {
	Body struct {
		Name            string `json:"name" minLength:"1" maxLength:"200" doc:"Restaurant name"`
		Subdomain       string `json:"subdomain" minLength:"1" maxLength:"63" pattern:"^[a-z0-9-]+$" doc:"Subdomain"`
		MonthlyCapacity int    `json:"monthly_capacity" minimum:"0" doc:"Orders allowed per calendar month"`
	}
}

type CreateTenantOutput struct {
	Body *domain.Tenant
}

type ListTenantsOutput struct {
	Body []*domain.Tenant
}

type GetTenantOutput struct {
	Body *domain.Tenant
}

type UpdateTenantStatusInput struct {
	Body struct {
		Status string `json:"status" enum:"active,inactive" doc:"Target status"`
	}
}

type UpdateTenantStatusOutput struct {
	Body *domain.Tenant
}

// RegisterTenantRoutes wires the account surface: registering restaurants
// and listing them. These routes are not tenant-scoped.
func RegisterTenantRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-tenant",
		Method:      http.MethodPost,
		Path:        "/tenants",
		Summary:     "Register a new restaurant",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *CreateTenantInput) (*CreateTenantOutput, error) {
		now := time.Now().UTC()
		t := &domain.Tenant{
			ID:              uuid.New(),
			Name:            input.Body.Name,
			Subdomain:       input.Body.Subdomain,
			MonthlyCapacity: input.Body.MonthlyCapacity,
			Status:          domain.TenantStatusActive,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := store.Tenants().Create(ctx, t); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("subdomain already taken")
			}
			return nil, huma.Error500InternalServerError("failed to create tenant", err)
		}

		return &CreateTenantOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tenants",
		Method:      http.MethodGet,
		Path:        "/tenants",
		Summary:     "List restaurants",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, _ *struct{}) (*ListTenantsOutput, error) {
		tenants, err := store.Tenants().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list tenants", err)
		}

		return &ListTenantsOutput{Body: tenants}, nil
	})
}

// RegisterTenantProfileRoutes wires the tenant-scoped view of the account:
// reading the profile and flipping its status.
func RegisterTenantProfileRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-tenant",
		Method:      http.MethodGet,
		Path:        "/profile",
		Summary:     "Get the restaurant profile",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, _ *struct{}) (*GetTenantOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		t, err := store.Tenants().GetByID(ctx, tenantID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("tenant not found")
			}
			return nil, huma.Error500InternalServerError("failed to get tenant", err)
		}

		return &GetTenantOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-tenant-status",
		Method:      http.MethodPatch,
		Path:        "/profile/status",
		Summary:     "Activate or deactivate the restaurant",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *UpdateTenantStatusInput) (*UpdateTenantStatusOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		status := domain.TenantStatus(input.Body.Status)
		if err := store.Tenants().UpdateStatus(ctx, tenantID, status); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("tenant not found")
			}
			return nil, huma.Error500InternalServerError("failed to update tenant status", err)
		}

		t, err := store.Tenants().GetByID(ctx, tenantID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load tenant", err)
		}

		return &UpdateTenantStatusOutput{Body: t}, nil
	})
}
