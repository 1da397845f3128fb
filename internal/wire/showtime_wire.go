package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireShowtime(
	r chi.Router,
	showtimeHandler *adaptor.ShowtimeHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/showtimes", showtimeHandler.List)
	r.Get("/api/showtimes/{id}", showtimeHandler.Get)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/showtimes", func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, log))

		r.Post("/", showtimeHandler.Create)
		r.Put("/{id}", showtimeHandler.Update)
		r.Delete("/{id}", showtimeHandler.Delete)
	})
}
