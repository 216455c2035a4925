package api

import (
	"github.com/go-chi/chi/v5"
)

// setupAPIRoutes sets up API v1 routes
func (s *RESTServer) setupAPIRoutes(r chi.Router) {
	// Health check
	r.Get("/health", s.HandleHealth)
	r.Get("/", s.HandleRoot)

	// Houses
	r.Route("/houses", func(r chi.Router) {
		r.Get("/", s.HandleListHouses)
		r.Post("/", s.HandleCreateHouse)
		r.Get("/stats", s.HandleHouseStats)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.HandleGetHouse)
			r.Put("/", s.HandleUpdateHouse)
			r.Delete("/", s.HandleDeleteHouse)
			r.Get("/rooms", s.HandleListHouseRooms)
			r.Get("/tenants", s.HandleListHouseTenants)
		})
	})

	// Rooms
	r.Route("/rooms", func(r chi.Router) {
		r.Post("/", s.HandleCreateRoom)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.HandleGetRoom)
			r.Put("/", s.HandleUpdateRoom)
			r.Delete("/", s.HandleDeleteRoom)
		})
	})

	// Tenants
	r.Route("/tenants", func(r chi.Router) {
		r.Get("/", s.HandleListTenants)
		r.Post("/", s.HandleCreateTenant)
		r.Post("/with-room", s.HandleCreateTenantWithRoom)
		r.Get("/status", s.HandleListTenantsWithStatus)
		r.Get("/overdue", s.HandleOverdueList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.HandleGetTenant)
			r.Put("/", s.HandleUpdateTenant)
			r.Delete("/", s.HandleDeleteTenant)
			r.Get("/details", s.HandleGetTenantDetails)
			r.Get("/payments", s.HandleListTenantPayments)
			r.Get("/payments/total", s.HandleGetTenantTotalPaid)
		})
	})

	// Payments
	r.Route("/payments", func(r chi.Router) {
		r.Get("/", s.HandleListPayments)
		r.Post("/", s.HandleCreatePayment)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.HandleGetPayment)
			r.Put("/", s.HandleUpdatePayment)
			r.Delete("/", s.HandleDeletePayment)
		})
	})

	// Change log
	r.Get("/changes", s.HandleListChanges)
}
