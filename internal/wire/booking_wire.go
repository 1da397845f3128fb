package wire

import (
	"net/http"

	"cinema-reservation/internal/adaptor"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	handler *adaptor.Handler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// The whole booking flow is anonymous; no account needed to buy tickets

	// GET /api/showtimes/{id}/seats - live seat map for one showtime
	r.Get("/api/showtimes/{id}/seats", handler.Booking.SeatMap)

	// POST /api/checkout - hold seats and open a payment session
	r.Post("/api/checkout", handler.Booking.Checkout)

	// POST /api/payments/webhook - provider settlement callback
	r.Post("/api/payments/webhook", handler.Webhook.HandleStripe)

	// GET /ws/seats?showtime_uid= - WebSocket seat feed
	r.Get("/ws/seats", handler.WS.SeatFeed)

	// Generated QR ticket images
	ticketServer := http.StripPrefix("/tickets/", http.FileServer(http.Dir(config.Ticket.Dir)))
	r.Get("/tickets/*", ticketServer.ServeHTTP)
}
