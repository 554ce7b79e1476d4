package v1

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/dineflow/dineflow/internal/booking"
	"github.com/dineflow/dineflow/internal/domain"
)

// mapWorkflowError translates booking and domain sentinels into HTTP
// problem responses. Quota exhaustion maps to 429 so well-behaved clients
// back off until the next period; lost races that exhausted their retries
// map to 503 because a retry may well succeed.
func mapWorkflowError(err error, fallback string) error {
	switch {
	case errors.Is(err, booking.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound("not found")
	case errors.Is(err, domain.ErrTenantInactive):
		return huma.Error403Forbidden("tenant is not active")
	case errors.Is(err, domain.ErrCapacityExceeded):
		return huma.Error429TooManyRequests("monthly order capacity exceeded")
	case errors.Is(err, domain.ErrPromotionNotApplicable):
		return huma.Error422UnprocessableEntity("promotion is not applicable")
	case errors.Is(err, domain.ErrNoTableAvailable):
		return huma.Error409Conflict("no table available for the requested party size")
	case errors.Is(err, domain.ErrTableUnavailable):
		return huma.Error409Conflict("table is already booked for the requested time")
	case errors.Is(err, domain.ErrInvalidTransition):
		return huma.Error400BadRequest(err.Error())
	case errors.Is(err, domain.ErrConflict):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return huma.Error503ServiceUnavailable("temporarily overloaded, retry shortly")
	default:
		return huma.Error500InternalServerError(fallback, err)
	}
}
