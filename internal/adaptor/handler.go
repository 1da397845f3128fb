package adaptor

import (
	"cinema-reservation/internal/payment"
	"cinema-reservation/internal/realtime"
	"cinema-reservation/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Catalog  *CatalogHandler
	Movie    *MovieHandler
	Showtime *ShowtimeHandler
	Booking  *BookingHandler
	Webhook  *WebhookHandler
	WS       *WSHandler
}

func NewHandler(service *usecase.Service, gateway payment.Gateway, hub *realtime.Hub, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Catalog:  NewCatalogHandler(service.Catalog, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
		Booking:  NewBookingHandler(service.SeatMap, service.Checkout, log),
		Webhook:  NewWebhookHandler(gateway, service.Settlement, log),
		WS:       NewWSHandler(hub, log),
	}
}
