package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

// BookingHandler serves the public booking surface: the live seat map and
// checkout.
type BookingHandler struct {
	seatMaps usecase.SeatMapService
	checkout usecase.CheckoutService
	log      *zap.Logger
}

func NewBookingHandler(seatMaps usecase.SeatMapService, checkout usecase.CheckoutService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		seatMaps: seatMaps,
		checkout: checkout,
		log:      log.With(zap.String("handler", "booking")),
	}
}

func (h *BookingHandler) SeatMap(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		utils.ResponseBadRequest(w, "Invalid showtime ID", nil)
		return
	}

	result, err := h.seatMaps.SeatMap(r.Context(), id)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Seat map retrieved", result)
}

func (h *BookingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req request.Checkout
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if errs := utils.ValidateStruct(req); errs != nil {
		utils.ResponseBadRequest(w, "Validation failed", errs)
		return
	}

	result, err := h.checkout.Checkout(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}

	utils.ResponseSuccess(w, "Checkout session created", result)
}
