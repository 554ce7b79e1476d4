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

type CreateTableInput struct {
	Body struct {
		TableNumber int `json:"table_number" minimum:"1" doc:"Table number, unique per restaurant"`
		Capacity    int `json:"capacity" minimum:"1" doc:"Seats at the table"`
	}
}

type CreateTableOutput struct {
	Body *domain.Table
}

type ListTablesOutput struct {
	Body []*domain.Table
}

type UpdateTableStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Table ID"`
	Body struct {
		Status string `json:"status" enum:"available,occupied,reserved,out_of_service" doc:"Target status"`
	}
}

type UpdateTableStatusOutput struct {
	Body *domain.Table
}

func RegisterTableRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-table",
		Method:      http.MethodPost,
		Path:        "/tables",
		Summary:     "Add a table",
		Tags:        []string{"Tables"},
	}, func(ctx context.Context, input *CreateTableInput) (*CreateTableOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		now := time.Now().UTC()
		t := &domain.Table{
			ID:          uuid.New(),
			TenantID:    tenantID,
			TableNumber: input.Body.TableNumber,
			Capacity:    input.Body.Capacity,
			Status:      domain.TableStatusAvailable,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := store.Tables().Create(ctx, t); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("table number already in use")
			}
			return nil, huma.Error500InternalServerError("failed to create table", err)
		}

		return &CreateTableOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tables",
		Method:      http.MethodGet,
		Path:        "/tables",
		Summary:     "List tables",
		Tags:        []string{"Tables"},
	}, func(ctx context.Context, _ *struct{}) (*ListTablesOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		tables, err := store.Tables().List(ctx, tenantID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list tables", err)
		}

		return &ListTablesOutput{Body: tables}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-table-status",
		Method:      http.MethodPatch,
		Path:        "/tables/{id}/status",
		Summary:     "Update a table's status",
		Tags:        []string{"Tables"},
	}, func(ctx context.Context, input *UpdateTableStatusInput) (*UpdateTableStatusOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		status := domain.TableStatus(input.Body.Status)
		if err := store.Tables().UpdateStatus(ctx, tenantID, input.ID, status); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("table not found")
			}
			return nil, huma.Error500InternalServerError("failed to update table status", err)
		}

		t, err := store.Tables().GetByID(ctx, tenantID, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load table", err)
		}

		return &UpdateTableStatusOutput{Body: t}, nil
	})
}
