package wire

import (
	"net/http"

	"cinema-reservation/internal/adaptor"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/payment"
	"cinema-reservation/internal/realtime"
	"cinema-reservation/internal/ticket"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/middleware"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	gateway payment.Gateway,
	hub *realtime.Hub,
	issuer ticket.Issuer,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, gateway, hub, issuer, logger)
	handler := adaptor.NewHandler(service, gateway, hub, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, config, logger)
	wireUser(r, handler.User, config, logger)
	wireCatalog(r, handler.Catalog, config, logger)
	wireMovie(r, handler.Movie, config, logger)
	wireShowtime(r, handler.Showtime, config, logger)
	wireBooking(r, handler, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
