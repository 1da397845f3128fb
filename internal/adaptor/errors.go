package adaptor

import (
	"errors"
	"net/http"

	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps service errors to HTTP responses. Anything not
// recognized is a 500 and gets logged with its full chain.
func handleServiceError(w http.ResponseWriter, err error, log *zap.Logger) {
	var conflict *usecase.ConflictError

	switch {
	case errors.As(err, &conflict):
		seats := make([]string, 0, len(conflict.SeatIDs))
		for _, id := range conflict.SeatIDs {
			seats = append(seats, id.String())
		}
		utils.ResponseConflict(w, "Some seats are no longer available", map[string]any{"seats": seats})
	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, "Resource not found")
	case errors.Is(err, usecase.ErrValidation):
		utils.ResponseBadRequest(w, err.Error(), nil)
	case errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseUnauthorized(w, "Invalid email or password")
	case errors.Is(err, usecase.ErrEmailTaken):
		utils.ResponseConflict(w, "Email already registered", nil)
	case errors.Is(err, usecase.ErrUpstream):
		utils.ResponseBadGateway(w, "Payment provider unavailable, seats were released")
	default:
		log.Error("Unhandled service error", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
