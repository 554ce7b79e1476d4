package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/dineflow/dineflow/internal/booking"
	"github.com/dineflow/dineflow/internal/domain"
	"github.com/dineflow/dineflow/internal/server/middleware"
)

const dateLayout = "2006-01-02"

type CreateReservationInput struct {
	Body struct {
		CustomerName    string     `json:"customer_name" minLength:"1" maxLength:"200" doc:"Customer name"`
		CustomerEmail   string     `json:"customer_email,omitempty" doc:"Customer email"`
		CustomerPhone   string     `json:"customer_phone,omitempty" doc:"Customer phone"`
		PartySize       int        `json:"party_size" minimum:"1" doc:"Number of guests"`
		Date            string     `json:"date" pattern:"^\\d{4}-\\d{2}-\\d{2}$" doc:"Reservation date (YYYY-MM-DD)"`
		Time            string     `json:"time" pattern:"^\\d{2}:\\d{2}$" doc:"Reservation time (HH:MM)"`
		SpecialRequests string     `json:"special_requests,omitempty" doc:"Special requests"`
		TableID         *uuid.UUID `json:"table_id,omitempty" doc:"Pre-selected table"`
	}
}

type CreateReservationOutput struct {
	Body *booking.ReservationConfirmation
}

type ListReservationsInput struct {
	Date   string `query:"date" doc:"Filter by date (YYYY-MM-DD)"`
	Status string `query:"status" doc:"Filter by status"`
}

type ListReservationsOutput struct {
	Body []*domain.Reservation
}

type AvailabilityInput struct {
	Date      string `query:"date" required:"true" doc:"Date to check (YYYY-MM-DD)"`
	PartySize int    `query:"party_size" required:"true" minimum:"1" doc:"Number of guests"`
}

type AvailabilityOutput struct {
	Body struct {
		Slots []domain.TimeOfDay `json:"slots" doc:"Open reservation times"`
	}
}

type GetReservationInput struct {
	ID uuid.UUID `path:"id" doc:"Reservation ID"`
}

type GetReservationOutput struct {
	Body *domain.Reservation
}

type UpdateReservationStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Reservation ID"`
	Body struct {
		Status string `json:"status" enum:"confirmed,cancelled,completed,no_show" doc:"Target status"`
	}
}

type UpdateReservationStatusOutput struct {
	Body *domain.Reservation
}

func RegisterReservationRoutes(api huma.API, svc BookingService) {
	huma.Register(api, huma.Operation{
		OperationID: "create-reservation",
		Method:      http.MethodPost,
		Path:        "/reservations",
		Summary:     "Book a table",
		Tags:        []string{"Reservations"},
	}, func(ctx context.Context, input *CreateReservationInput) (*CreateReservationOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		date, err := time.Parse(dateLayout, input.Body.Date)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid date: " + input.Body.Date)
		}
		at, err := domain.ParseTimeOfDay(input.Body.Time)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid time: " + input.Body.Time)
		}

		confirmation, err := svc.CreateReservation(ctx, booking.CreateReservationInput{
			TenantID:        tenantID,
			CustomerName:    input.Body.CustomerName,
			CustomerEmail:   input.Body.CustomerEmail,
			CustomerPhone:   input.Body.CustomerPhone,
			PartySize:       input.Body.PartySize,
			Date:            date,
			Time:            at,
			SpecialRequests: input.Body.SpecialRequests,
			TableID:         input.Body.TableID,
		})
		if err != nil {
			return nil, mapWorkflowError(err, "failed to create reservation")
		}

		return &CreateReservationOutput{Body: confirmation}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-reservation-availability",
		Method:      http.MethodGet,
		Path:        "/reservations/availability",
		Summary:     "List open reservation slots for a date",
		Tags:        []string{"Reservations"},
	}, func(ctx context.Context, input *AvailabilityInput) (*AvailabilityOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		date, err := time.Parse(dateLayout, input.Date)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity("invalid date: " + input.Date)
		}

		slots, err := svc.ListAvailableSlots(ctx, tenantID, date, input.PartySize)
		if err != nil {
			return nil, mapWorkflowError(err, "failed to compute availability")
		}

		out := &AvailabilityOutput{}
		out.Body.Slots = slots
		if out.Body.Slots == nil {
			out.Body.Slots = []domain.TimeOfDay{}
		}

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-reservations",
		Method:      http.MethodGet,
		Path:        "/reservations",
		Summary:     "List reservations",
		Tags:        []string{"Reservations"},
	}, func(ctx context.Context, input *ListReservationsInput) (*ListReservationsOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		var date *time.Time
		if input.Date != "" {
			d, err := time.Parse(dateLayout, input.Date)
			if err != nil {
				return nil, huma.Error422UnprocessableEntity("invalid date: " + input.Date)
			}
			date = &d
		}

		var status *domain.ReservationStatus
		if input.Status != "" {
			s := domain.ReservationStatus(input.Status)
			status = &s
		}

		reservations, err := svc.ListReservations(ctx, tenantID, date, status)
		if err != nil {
			return nil, mapWorkflowError(err, "failed to list reservations")
		}

		return &ListReservationsOutput{Body: reservations}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-reservation-status",
		Method:      http.MethodPatch,
		Path:        "/reservations/{id}/status",
		Summary:     "Update a reservation's status",
		Tags:        []string{"Reservations"},
	}, func(ctx context.Context, input *UpdateReservationStatusInput) (*UpdateReservationStatusOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		target := domain.ReservationStatus(input.Body.Status)
		if err := svc.UpdateReservationStatus(ctx, tenantID, input.ID, target); err != nil {
			return nil, mapWorkflowError(err, "failed to update reservation status")
		}

		updated, err := svc.GetReservation(ctx, tenantID, input.ID)
		if err != nil {
			return nil, mapWorkflowError(err, "failed to load reservation")
		}

		return &UpdateReservationStatusOutput{Body: updated}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-reservation",
		Method:      http.MethodGet,
		Path:        "/reservations/{id}",
		Summary:     "Get a reservation by ID",
		Tags:        []string{"Reservations"},
	}, func(ctx context.Context, input *GetReservationInput) (*GetReservationOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing tenant context")
		}

		r, err := svc.GetReservation(ctx, tenantID, input.ID)
		if err != nil {
			return nil, mapWorkflowError(err, "failed to get reservation")
		}

		return &GetReservationOutput{Body: r}, nil
	})
}
