package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/dineflow/dineflow/internal/api/v1"
)

// registerAccountRoutes wires the tenant account surface (register, list).
func registerAccountRoutes(api huma.API, store v1.DataStore) {
	v1.RegisterTenantRoutes(api, store)
}

// registerTenantRoutes wires everything scoped under a single tenant.
func registerTenantRoutes(api huma.API, store v1.DataStore, bookingSvc v1.BookingService) {
	v1.RegisterTenantProfileRoutes(api, store)
	v1.RegisterOrderRoutes(api, bookingSvc)
	v1.RegisterReservationRoutes(api, bookingSvc)
	v1.RegisterTableRoutes(api, store)
	v1.RegisterPromotionRoutes(api, store)
}
