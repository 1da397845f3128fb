package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SeatMapService resolves the live availability view of a showtime. Status is
// computed at read time, so an expired hold shows free even before the sweep
// removes its row.
type SeatMapService interface {
	SeatMap(ctx context.Context, showtimeID uuid.UUID) (*response.SeatMap, error)
}

type seatMapService struct {
	showtimes    repository.ShowtimeRepository
	halls        repository.HallRepository
	reservations repository.ReservationRepository
	log          *zap.Logger
}

func NewSeatMapService(
	showtimes repository.ShowtimeRepository,
	halls repository.HallRepository,
	reservations repository.ReservationRepository,
	log *zap.Logger,
) SeatMapService {
	return &seatMapService{
		showtimes:    showtimes,
		halls:        halls,
		reservations: reservations,
		log:          log.With(zap.String("service", "seatmap")),
	}
}

func (s *seatMapService) SeatMap(ctx context.Context, showtimeID uuid.UUID) (*response.SeatMap, error) {
	showtime, err := s.showtimes.FindByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("seat map: %w", err)
	}
	if showtime == nil {
		return nil, ErrNotFound
	}

	hall, err := s.halls.FindByID(ctx, showtime.HallID)
	if err != nil {
		return nil, fmt.Errorf("seat map: %w", err)
	}
	if hall == nil {
		return nil, fmt.Errorf("%w: hall %s", ErrNotFound, showtime.HallID.String())
	}

	pairs, err := s.reservations.ListSeatMap(ctx, showtimeID, showtime.HallID)
	if err != nil {
		return nil, fmt.Errorf("seat map: %w", err)
	}

	now := time.Now()
	seats := make([]response.SeatMapEntry, 0, len(pairs))
	for _, pair := range pairs {
		seats = append(seats, response.SeatMapEntry{
			UID:    pair.Seat.ID.String(),
			Row:    pair.Seat.Row,
			Number: pair.Seat.Number,
			Status: string(entity.ComputeSeatStatus(&pair.Seat, pair.Reservation, now)),
		})
	}

	return &response.SeatMap{
		ShowtimeUID: showtimeID.String(),
		HallUID:     showtime.HallID.String(),
		Rows:        hall.Rows,
		Cols:        hall.Cols,
		Seats:       seats,
	}, nil
}
