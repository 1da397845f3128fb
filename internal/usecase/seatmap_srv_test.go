package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (f *fakeShowtimeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	if f.detail != nil && f.detail.Showtime.ID == id {
		st := f.detail.Showtime
		return &st, nil
	}
	return nil, nil
}

type fakeHallRepo struct {
	repository.HallRepository

	hall *entity.Hall
}

func (f *fakeHallRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	if f.hall != nil && f.hall.ID == id {
		return f.hall, nil
	}
	return nil, nil
}

type fakeMapLedger struct {
	repository.ReservationRepository

	pairs []*repository.SeatWithReservation
}

func (f *fakeMapLedger) ListSeatMap(ctx context.Context, showtimeID, hallID uuid.UUID) ([]*repository.SeatWithReservation, error) {
	return f.pairs, nil
}

func TestSeatMapResolvesStatusesAtReadTime(t *testing.T) {
	showtimeID := uuid.New()
	hallID := uuid.New()

	detail := &repository.ShowtimeDetail{}
	detail.Showtime.ID = showtimeID
	detail.Showtime.HallID = hallID

	hall := &entity.Hall{Name: "Hall 1", Rows: 2, Cols: 2, Active: true}
	hall.ID = hallID
	hall.CinemaID = uuid.New()

	future := time.Now().Add(10 * time.Minute)
	past := time.Now().Add(-10 * time.Minute)

	mkSeat := func(row, number int, active bool) entity.Seat {
		s := entity.Seat{HallID: hallID, Row: row, Number: number, Active: active}
		s.ID = uuid.New()
		return s
	}

	pairs := []*repository.SeatWithReservation{
		{Seat: mkSeat(1, 1, true)},
		{Seat: mkSeat(1, 2, true), Reservation: &entity.Reservation{Status: entity.ReservationStatusPaid}},
		{Seat: mkSeat(2, 1, true), Reservation: &entity.Reservation{Status: entity.ReservationStatusReserved, ExpiresAt: &future}},
		{Seat: mkSeat(2, 2, true), Reservation: &entity.Reservation{Status: entity.ReservationStatusReserved, ExpiresAt: &past}},
	}

	service := NewSeatMapService(
		&fakeShowtimeRepo{detail: detail},
		&fakeHallRepo{hall: hall},
		&fakeMapLedger{pairs: pairs},
		zap.NewNop(),
	)

	result, err := service.SeatMap(context.Background(), showtimeID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Rows != 2 || result.Cols != 2 {
		t.Fatalf("unexpected grid %dx%d", result.Rows, result.Cols)
	}
	if len(result.Seats) != 4 {
		t.Fatalf("expected 4 seats, got %d", len(result.Seats))
	}

	want := []string{"free", "sold", "reserved", "free"}
	for i, status := range want {
		if result.Seats[i].Status != status {
			t.Fatalf("seat %d: expected %s, got %s", i, status, result.Seats[i].Status)
		}
	}
}

func TestSeatMapUnknownShowtime(t *testing.T) {
	service := NewSeatMapService(
		&fakeShowtimeRepo{},
		&fakeHallRepo{},
		&fakeMapLedger{},
		zap.NewNop(),
	)

	_, err := service.SeatMap(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
