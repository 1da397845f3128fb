package usecase

import (
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/payment"
	"cinema-reservation/internal/realtime"
	"cinema-reservation/internal/ticket"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth       AuthService
	User       UserService
	Catalog    CatalogService
	Movie      MovieService
	Showtime   ShowtimeService
	SeatMap    SeatMapService
	Checkout   CheckoutService
	Settlement SettlementService
}

func NewService(
	repo *repository.Repository,
	config *utils.Config,
	gateway payment.Gateway,
	hub *realtime.Hub,
	issuer ticket.Issuer,
	log *zap.Logger,
) *Service {
	return &Service{
		Auth:       NewAuthService(repo.User, config.JWT, log),
		User:       NewUserService(repo.User, log),
		Catalog:    NewCatalogService(repo.City, repo.Cinema, repo.Hall, repo.Seat, log),
		Movie:      NewMovieService(repo.Movie, log),
		Showtime:   NewShowtimeService(repo.Showtime, repo.Movie, repo.Hall, log),
		SeatMap:    NewSeatMapService(repo.Showtime, repo.Hall, repo.Reservation, log),
		Checkout:   NewCheckoutService(repo.Showtime, repo.Seat, repo.Reservation, repo.Payment, gateway, hub, config.Checkout, log),
		Settlement: NewSettlementService(repo.Payment, repo.Reservation, repo.Showtime, repo.Seat, hub, issuer, log),
	}
}
