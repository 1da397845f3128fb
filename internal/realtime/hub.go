package realtime

import (
	"sync"

	"cinema-reservation/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeatUpdate is the message pushed to subscribers when a seat changes state.
type SeatUpdate struct {
	Type        string `json:"type"`
	ShowtimeUID string `json:"showtime_uid"`
	SeatUID     string `json:"seat_uid"`
	Status      string `json:"status"`
}

// Subscriber receives seat updates for one showtime. Send must not block the
// hub; slow consumers get dropped messages, not a stalled broadcast.
type Subscriber struct {
	send chan SeatUpdate
}

func (s *Subscriber) Updates() <-chan SeatUpdate {
	return s.send
}

// Hub fans seat updates out to WebSocket subscribers, keyed by showtime.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[*Subscriber]struct{}
	log  *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		subs: make(map[uuid.UUID]map[*Subscriber]struct{}),
		log:  log.With(zap.String("component", "realtime_hub")),
	}
}

func (h *Hub) Subscribe(showtimeID uuid.UUID) *Subscriber {
	sub := &Subscriber{send: make(chan SeatUpdate, 64)}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[showtimeID] == nil {
		h.subs[showtimeID] = make(map[*Subscriber]struct{})
	}
	h.subs[showtimeID][sub] = struct{}{}

	return sub
}

func (h *Hub) Unsubscribe(showtimeID uuid.UUID, sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[showtimeID]; ok {
		if _, ok := set[sub]; ok {
			delete(set, sub)
			close(sub.send)
		}
		if len(set) == 0 {
			delete(h.subs, showtimeID)
		}
	}
}

// BroadcastSeatUpdate notifies every subscriber of the showtime. Subscribers
// of other showtimes never see the message.
func (h *Hub) BroadcastSeatUpdate(showtimeID, seatID uuid.UUID, status entity.SeatStatus) {
	update := SeatUpdate{
		Type:        "seat_update",
		ShowtimeUID: showtimeID.String(),
		SeatUID:     seatID.String(),
		Status:      string(status),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[showtimeID] {
		select {
		case sub.send <- update:
		default:
			h.log.Warn("Dropping seat update for slow subscriber",
				zap.String("showtime_id", showtimeID.String()),
			)
		}
	}
}

// SubscriberCount reports how many clients watch the showtime.
func (h *Hub) SubscriberCount(showtimeID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[showtimeID])
}
