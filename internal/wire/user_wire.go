package wire

import (
	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== SUPER ADMIN ROUTES ====================
	// Administrator accounts can only be managed by super admins
	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT, log))
		r.Use(middleware.RequireSuper(log))

		r.Post("/", userHandler.Create)
		r.Get("/", userHandler.List)
		r.Put("/{id}/role", userHandler.UpdateRole)
		r.Delete("/{id}", userHandler.Delete)
	})
}
