package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound = errors.New("domain: not found")
	ErrConflict = errors.New("domain: conflict")

	// ErrTenantInactive is returned when a workflow targets a tenant whose
	// status is not active. Non-retryable.
	ErrTenantInactive = errors.New("domain: tenant inactive")

	// ErrCapacityExceeded is returned when a tenant's monthly order quota
	// is already fully claimed for the current period.
	ErrCapacityExceeded = errors.New("domain: monthly capacity exceeded")

	// ErrPromotionNotApplicable is returned when a promotion is inactive,
	// outside its date window, or its usage limit is exhausted.
	ErrPromotionNotApplicable = errors.New("domain: promotion not applicable")

	// ErrNoTableAvailable is returned when no available table can seat the
	// requested party size.
	ErrNoTableAvailable = errors.New("domain: no table available")

	// ErrTableUnavailable is returned when a booking loses the race for a
	// specific table: another reservation landed inside the buffer window
	// between the slot query and the commit.
	ErrTableUnavailable = errors.New("domain: table unavailable")

	// ErrConcurrencyConflict is returned when a transaction loses an
	// atomic-update race; callers retry a bounded number of times.
	ErrConcurrencyConflict = errors.New("domain: concurrency conflict")
)
