package domain

import "context"

// Store bundles every repository behind one accessor surface, the way the
// HTTP layer and the booking engine consume them.
type Store interface {
	Tenants() TenantRepository
	Orders() OrderRepository
	Promotions() PromotionRepository
	Tables() TableRepository
	Reservations() ReservationRepository
	Counters() CounterRepository

	// InTx runs fn against a Store whose repositories share one atomic
	// unit: either every write fn performs commits, or none of them do.
	// Implementations map lost update races to ErrConcurrencyConflict.
	InTx(ctx context.Context, fn func(tx Store) error) error
}
