package worker

import (
	"context"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/realtime"

	"go.uber.org/zap"
)

// Sweeper periodically reclaims expired holds and pushes the freed seats to
// live subscribers.
type Sweeper struct {
	reservations repository.ReservationRepository
	hub          *realtime.Hub
	interval     time.Duration
	log          *zap.Logger
}

func NewSweeper(reservations repository.ReservationRepository, hub *realtime.Hub, interval time.Duration, log *zap.Logger) *Sweeper {
	return &Sweeper{
		reservations: reservations,
		hub:          hub,
		interval:     interval,
		log:          log.With(zap.String("component", "sweeper")),
	}
}

// Run ticks until the context is cancelled. A failed sweep is logged and
// retried on the next tick.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("Sweeper started", zap.Duration("interval", s.interval))

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep reclaims all holds expired as of now and broadcasts each freed seat.
func (s *Sweeper) Sweep(ctx context.Context) {
	released, err := s.reservations.ReclaimExpired(ctx, time.Now())
	if err != nil {
		s.log.Error("Sweep failed", zap.Error(err))
		return
	}

	if len(released) == 0 {
		return
	}

	for _, seat := range released {
		s.hub.BroadcastSeatUpdate(seat.ShowtimeID, seat.SeatID, entity.SeatStatusFree)
	}

	s.log.Info("Reclaimed expired holds", zap.Int("count", len(released)))
}
