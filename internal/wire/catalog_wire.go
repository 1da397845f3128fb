package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireCatalog(
	r chi.Router,
	catalogHandler *adaptor.CatalogHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Browsing the venue hierarchy requires no account
	r.Get("/api/cities", catalogHandler.ListCities)
	r.Get("/api/cinemas", catalogHandler.ListCinemas)

	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, log))

		r.Post("/api/admin/cities", catalogHandler.CreateCity)
		r.Delete("/api/admin/cities/{id}", catalogHandler.DeleteCity)

		r.Post("/api/admin/cinemas", catalogHandler.CreateCinema)
		r.Put("/api/admin/cinemas/{id}", catalogHandler.UpdateCinema)
		r.Put("/api/admin/cinemas/{id}/active", catalogHandler.SetCinemaActive)
		r.Delete("/api/admin/cinemas/{id}", catalogHandler.DeleteCinema)

		r.Post("/api/admin/halls", catalogHandler.CreateHall)
		r.Get("/api/admin/halls", catalogHandler.ListHalls)
		r.Put("/api/admin/halls/{id}", catalogHandler.UpdateHall)
		r.Put("/api/admin/halls/{id}/active", catalogHandler.SetHallActive)
		r.Delete("/api/admin/halls/{id}", catalogHandler.DeleteHall)
		r.Post("/api/admin/halls/{id}/recreate-seats", catalogHandler.RecreateSeats)
		r.Get("/api/admin/halls/{id}/seats", catalogHandler.ListSeats)

		r.Put("/api/admin/seats/{id}/active", catalogHandler.SetSeatActive)
	})
}
