package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/movies", movieHandler.Search)
	r.Get("/api/movies/{id}", movieHandler.Get)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/movies", func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, log))

		r.Post("/", movieHandler.Create)
		r.Put("/{id}", movieHandler.Update)
		r.Delete("/{id}", movieHandler.Delete)
	})
}
