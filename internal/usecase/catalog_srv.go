package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CatalogService manages the venue hierarchy: cities, cinemas, halls and
// their seat grids.
type CatalogService interface {
	CreateCity(ctx context.Context, req *request.CreateCity) (*response.City, error)
	ListCities(ctx context.Context) ([]response.City, error)
	DeleteCity(ctx context.Context, id uuid.UUID) error

	CreateCinema(ctx context.Context, req *request.CreateCinema) (*response.Cinema, error)
	ListCinemas(ctx context.Context, cityID uuid.UUID) ([]response.Cinema, error)
	UpdateCinema(ctx context.Context, id uuid.UUID, req *request.UpdateCinema) error
	SetCinemaActive(ctx context.Context, id uuid.UUID, active bool) error
	DeleteCinema(ctx context.Context, id uuid.UUID) error

	CreateHall(ctx context.Context, req *request.CreateHall) (*response.Hall, error)
	ListHalls(ctx context.Context, cinemaID uuid.UUID) ([]response.Hall, error)
	UpdateHall(ctx context.Context, id uuid.UUID, req *request.UpdateHall) error
	SetHallActive(ctx context.Context, id uuid.UUID, active bool) error
	DeleteHall(ctx context.Context, id uuid.UUID) error
	RecreateSeats(ctx context.Context, hallID uuid.UUID) (int, error)

	ListSeats(ctx context.Context, hallID uuid.UUID) ([]response.Seat, error)
	SetSeatActive(ctx context.Context, id uuid.UUID, active bool) error
}

type catalogService struct {
	cities  repository.CityRepository
	cinemas repository.CinemaRepository
	halls   repository.HallRepository
	seats   repository.SeatRepository
	log     *zap.Logger
}

func NewCatalogService(
	cities repository.CityRepository,
	cinemas repository.CinemaRepository,
	halls repository.HallRepository,
	seats repository.SeatRepository,
	log *zap.Logger,
) CatalogService {
	return &catalogService{
		cities:  cities,
		cinemas: cinemas,
		halls:   halls,
		seats:   seats,
		log:     log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) CreateCity(ctx context.Context, req *request.CreateCity) (*response.City, error) {
	city := &entity.City{Name: req.Name}
	city.ID = uuid.New()
	city.CreatedAt = time.Now()

	if err := s.cities.Create(ctx, city); err != nil {
		return nil, fmt.Errorf("create city: %w", err)
	}

	s.log.Info("City created", zap.String("city_id", city.ID.String()))

	return &response.City{UID: city.ID.String(), Name: city.Name}, nil
}

func (s *catalogService) ListCities(ctx context.Context) ([]response.City, error) {
	cities, err := s.cities.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}

	result := make([]response.City, 0, len(cities))
	for _, city := range cities {
		result = append(result, response.City{UID: city.ID.String(), Name: city.Name})
	}

	return result, nil
}

func (s *catalogService) DeleteCity(ctx context.Context, id uuid.UUID) error {
	city, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete city: %w", err)
	}
	if city == nil {
		return ErrNotFound
	}

	return s.cities.Delete(ctx, id)
}

func toCinemaResponse(cinema *entity.Cinema) response.Cinema {
	return response.Cinema{
		UID:     cinema.ID.String(),
		CityUID: cinema.CityID.String(),
		Name:    cinema.Name,
		Address: cinema.Address,
		Phone:   cinema.Phone,
		Active:  cinema.Active,
	}
}

func (s *catalogService) CreateCinema(ctx context.Context, req *request.CreateCinema) (*response.Cinema, error) {
	cityID, err := uuid.Parse(req.CityUID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid city_uid", ErrValidation)
	}

	city, err := s.cities.FindByID(ctx, cityID)
	if err != nil {
		return nil, fmt.Errorf("create cinema: %w", err)
	}
	if city == nil {
		return nil, fmt.Errorf("%w: city %s", ErrNotFound, cityID.String())
	}

	now := time.Now()
	cinema := &entity.Cinema{
		CityID:  cityID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Active:  true,
	}
	cinema.ID = uuid.New()
	cinema.CreatedAt = now
	cinema.UpdatedAt = now

	if err := s.cinemas.Create(ctx, cinema); err != nil {
		return nil, fmt.Errorf("create cinema: %w", err)
	}

	s.log.Info("Cinema created", zap.String("cinema_id", cinema.ID.String()))

	resp := toCinemaResponse(cinema)
	return &resp, nil
}

func (s *catalogService) ListCinemas(ctx context.Context, cityID uuid.UUID) ([]response.Cinema, error) {
	var cinemas []*entity.Cinema
	var err error

	if cityID != uuid.Nil {
		cinemas, err = s.cinemas.FindByCityID(ctx, cityID)
	} else {
		cinemas, err = s.cinemas.FindAll(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list cinemas: %w", err)
	}

	result := make([]response.Cinema, 0, len(cinemas))
	for _, cinema := range cinemas {
		result = append(result, toCinemaResponse(cinema))
	}

	return result, nil
}

func (s *catalogService) UpdateCinema(ctx context.Context, id uuid.UUID, req *request.UpdateCinema) error {
	cinema, err := s.cinemas.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update cinema: %w", err)
	}
	if cinema == nil {
		return ErrNotFound
	}

	cinema.Name = req.Name
	cinema.Address = req.Address
	cinema.Phone = req.Phone
	if req.Active != nil {
		cinema.Active = *req.Active
	}
	cinema.UpdatedAt = time.Now()

	return s.cinemas.Update(ctx, cinema)
}

func (s *catalogService) SetCinemaActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.cinemas.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set cinema active: %w", err)
	}
	return nil
}

func (s *catalogService) DeleteCinema(ctx context.Context, id uuid.UUID) error {
	cinema, err := s.cinemas.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete cinema: %w", err)
	}
	if cinema == nil {
		return ErrNotFound
	}

	return s.cinemas.Delete(ctx, id)
}

func toHallResponse(hall *entity.Hall) response.Hall {
	return response.Hall{
		UID:       hall.ID.String(),
		CinemaUID: hall.CinemaID.String(),
		Name:      hall.Name,
		Rows:      hall.Rows,
		Cols:      hall.Cols,
		Active:    hall.Active,
	}
}

func (s *catalogService) CreateHall(ctx context.Context, req *request.CreateHall) (*response.Hall, error) {
	cinemaID, err := uuid.Parse(req.CinemaUID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid cinema_uid", ErrValidation)
	}

	cinema, err := s.cinemas.FindByID(ctx, cinemaID)
	if err != nil {
		return nil, fmt.Errorf("create hall: %w", err)
	}
	if cinema == nil {
		return nil, fmt.Errorf("%w: cinema %s", ErrNotFound, cinemaID.String())
	}

	now := time.Now()
	hall := &entity.Hall{
		CinemaID: cinemaID,
		Name:     req.Name,
		Rows:     req.Rows,
		Cols:     req.Cols,
		Active:   true,
	}
	hall.ID = uuid.New()
	hall.CreatedAt = now
	hall.UpdatedAt = now

	seatCount, err := s.halls.CreateWithSeats(ctx, hall)
	if err != nil {
		return nil, fmt.Errorf("create hall: %w", err)
	}

	s.log.Info("Hall created",
		zap.String("hall_id", hall.ID.String()),
		zap.Int("seats", seatCount),
	)

	resp := toHallResponse(hall)
	resp.SeatCount = seatCount
	return &resp, nil
}

func (s *catalogService) ListHalls(ctx context.Context, cinemaID uuid.UUID) ([]response.Hall, error) {
	halls, err := s.halls.FindByCinemaID(ctx, cinemaID)
	if err != nil {
		return nil, fmt.Errorf("list halls: %w", err)
	}

	result := make([]response.Hall, 0, len(halls))
	for _, hall := range halls {
		result = append(result, toHallResponse(hall))
	}

	return result, nil
}

func (s *catalogService) UpdateHall(ctx context.Context, id uuid.UUID, req *request.UpdateHall) error {
	hall, err := s.halls.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update hall: %w", err)
	}
	if hall == nil {
		return ErrNotFound
	}

	hall.Name = req.Name
	hall.Rows = req.Rows
	hall.Cols = req.Cols
	if req.Active != nil {
		hall.Active = *req.Active
	}
	hall.UpdatedAt = time.Now()

	return s.halls.Update(ctx, hall)
}

func (s *catalogService) SetHallActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.halls.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set hall active: %w", err)
	}
	return nil
}

func (s *catalogService) DeleteHall(ctx context.Context, id uuid.UUID) error {
	hall, err := s.halls.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete hall: %w", err)
	}
	if hall == nil {
		return ErrNotFound
	}

	return s.halls.Delete(ctx, id)
}

func (s *catalogService) RecreateSeats(ctx context.Context, hallID uuid.UUID) (int, error) {
	hall, err := s.halls.FindByID(ctx, hallID)
	if err != nil {
		return 0, fmt.Errorf("recreate seats: %w", err)
	}
	if hall == nil {
		return 0, ErrNotFound
	}

	count, err := s.halls.RecreateSeats(ctx, hallID)
	if err != nil {
		return 0, fmt.Errorf("recreate seats: %w", err)
	}

	s.log.Info("Hall seats recreated",
		zap.String("hall_id", hallID.String()),
		zap.Int("seats", count),
	)

	return count, nil
}

func (s *catalogService) ListSeats(ctx context.Context, hallID uuid.UUID) ([]response.Seat, error) {
	seats, err := s.seats.FindByHallID(ctx, hallID)
	if err != nil {
		return nil, fmt.Errorf("list seats: %w", err)
	}

	result := make([]response.Seat, 0, len(seats))
	for _, seat := range seats {
		result = append(result, response.Seat{
			UID:    seat.ID.String(),
			Row:    seat.Row,
			Number: seat.Number,
			Active: seat.Active,
		})
	}

	return result, nil
}

func (s *catalogService) SetSeatActive(ctx context.Context, id uuid.UUID, active bool) error {
	if err := s.seats.SetActive(ctx, id, active); err != nil {
		return fmt.Errorf("set seat active: %w", err)
	}
	return nil
}
