package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"cinema-reservation/internal/payment"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

// maxWebhookBody caps provider payloads, matching the provider's own limit.
const maxWebhookBody = 64 << 10

type WebhookHandler struct {
	gateway    payment.Gateway
	settlement usecase.SettlementService
	log        *zap.Logger
}

func NewWebhookHandler(gateway payment.Gateway, settlement usecase.SettlementService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		gateway:    gateway,
		settlement: settlement,
		log:        log.With(zap.String("handler", "webhook")),
	}
}

// HandleStripe settles completed checkouts. Only a bad signature gets a 400;
// everything after verification is acknowledged with 200 so the provider does
// not retry deliveries we have already decided how to handle.
func (h *WebhookHandler) HandleStripe(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Unreadable payload", nil)
		return
	}

	evt, err := h.gateway.ParseWebhook(body, r.Header.Get("Stripe-Signature"))
	if err != nil {
		if errors.Is(err, payment.ErrInvalidSignature) {
			utils.ResponseBadRequest(w, "Invalid signature", nil)
			return
		}
		h.log.Error("Failed to parse webhook", zap.Error(err))
		h.acknowledge(w)
		return
	}

	if err := h.settlement.Settle(r.Context(), evt); err != nil {
		// Acknowledged anyway; settlement is idempotent, so a manual replay
		// from the provider dashboard recovers the booking.
		h.log.Error("Settlement failed", zap.Error(err))
	}

	h.acknowledge(w)
}

func (h *WebhookHandler) acknowledge(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"received": true})
}
