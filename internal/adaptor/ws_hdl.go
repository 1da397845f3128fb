package adaptor

import (
	"net/http"

	"cinema-reservation/internal/realtime"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WSHandler struct {
	hub      *realtime.Hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

func NewWSHandler(hub *realtime.Hub, log *zap.Logger) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The seat feed is public read-only data; cross-origin browsers
			// may subscribe.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log: log.With(zap.String("handler", "ws")),
	}
}

// SeatFeed upgrades the connection and streams seat updates for one showtime
// until the client disconnects.
func (h *WSHandler) SeatFeed(w http.ResponseWriter, r *http.Request) {
	showtimeID, err := uuid.Parse(r.URL.Query().Get("showtime_uid"))
	if err != nil {
		utils.ResponseBadRequest(w, "showtime_uid query parameter is required", nil)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Debug("WebSocket upgrade failed", zap.Error(err))
		return
	}

	h.log.Info("Seat feed subscriber connected",
		zap.String("showtime_id", showtimeID.String()),
	)

	client := realtime.NewClient(h.hub, conn, showtimeID, h.log)
	client.Run()
}
