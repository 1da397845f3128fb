package repository

import (
	"cinema-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User        UserRepository
	City        CityRepository
	Cinema      CinemaRepository
	Hall        HallRepository
	Seat        SeatRepository
	Movie       MovieRepository
	Showtime    ShowtimeRepository
	Reservation ReservationRepository
	Payment     PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:        NewUserRepository(db, log),
		City:        NewCityRepository(db, log),
		Cinema:      NewCinemaRepository(db, log),
		Hall:        NewHallRepository(db, log),
		Seat:        NewSeatRepository(db, log),
		Movie:       NewMovieRepository(db, log),
		Showtime:    NewShowtimeRepository(db, log),
		Reservation: NewReservationRepository(db, log),
		Payment:     NewPaymentRepository(db, log),
	}
}
