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

type ShowtimeService interface {
	Create(ctx context.Context, req *request.CreateShowtime) (*response.Showtime, error)
	Get(ctx context.Context, id uuid.UUID) (*response.Showtime, error)
	List(ctx context.Context, req *request.ListShowtime) ([]response.Showtime, error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateShowtime) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type showtimeService struct {
	showtimes repository.ShowtimeRepository
	movies    repository.MovieRepository
	halls     repository.HallRepository
	log       *zap.Logger
}

func NewShowtimeService(
	showtimes repository.ShowtimeRepository,
	movies repository.MovieRepository,
	halls repository.HallRepository,
	log *zap.Logger,
) ShowtimeService {
	return &showtimeService{
		showtimes: showtimes,
		movies:    movies,
		halls:     halls,
		log:       log.With(zap.String("service", "showtime")),
	}
}

func toShowtimeResponse(detail *repository.ShowtimeDetail) response.Showtime {
	return response.Showtime{
		UID:        detail.Showtime.ID.String(),
		MovieUID:   detail.Showtime.MovieID.String(),
		HallUID:    detail.Showtime.HallID.String(),
		MovieTitle: detail.MovieTitle,
		HallName:   detail.HallName,
		CinemaName: detail.CinemaName,
		StartsAt:   detail.Showtime.StartsAt,
		EndsAt:     detail.Showtime.EndsAt,
		AdultPrice: detail.Showtime.AdultPrice,
		ChildPrice: detail.Showtime.ChildPrice,
	}
}

func (s *showtimeService) Create(ctx context.Context, req *request.CreateShowtime) (*response.Showtime, error) {
	movieID, err := uuid.Parse(req.MovieUID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid movie_uid", ErrValidation)
	}
	hallID, err := uuid.Parse(req.HallUID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid hall_uid", ErrValidation)
	}

	movie, err := s.movies.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("create showtime: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("%w: movie %s", ErrNotFound, movieID.String())
	}

	hall, err := s.halls.FindByID(ctx, hallID)
	if err != nil {
		return nil, fmt.Errorf("create showtime: %w", err)
	}
	if hall == nil {
		return nil, fmt.Errorf("%w: hall %s", ErrNotFound, hallID.String())
	}

	now := time.Now()
	showtime := &entity.Showtime{
		MovieID:    movieID,
		HallID:     hallID,
		StartsAt:   req.StartsAt,
		EndsAt:     req.StartsAt.Add(time.Duration(movie.DurationMinutes) * time.Minute),
		AdultPrice: req.AdultPrice,
		ChildPrice: req.ChildPrice,
	}
	showtime.ID = uuid.New()
	showtime.CreatedAt = now
	showtime.UpdatedAt = now

	if err := s.showtimes.Create(ctx, showtime); err != nil {
		return nil, fmt.Errorf("create showtime: %w", err)
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", movieID.String()),
	)

	return &response.Showtime{
		UID:        showtime.ID.String(),
		MovieUID:   movieID.String(),
		HallUID:    hallID.String(),
		MovieTitle: movie.Title,
		HallName:   hall.Name,
		StartsAt:   showtime.StartsAt,
		EndsAt:     showtime.EndsAt,
		AdultPrice: showtime.AdultPrice,
		ChildPrice: showtime.ChildPrice,
	}, nil
}

func (s *showtimeService) Get(ctx context.Context, id uuid.UUID) (*response.Showtime, error) {
	detail, err := s.showtimes.FindDetailByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get showtime: %w", err)
	}
	if detail == nil {
		return nil, ErrNotFound
	}

	resp := toShowtimeResponse(detail)
	return &resp, nil
}

func (s *showtimeService) List(ctx context.Context, req *request.ListShowtime) ([]response.Showtime, error) {
	filter := &repository.ShowtimeFilter{}

	if req.MovieUID != "" {
		id, err := uuid.Parse(req.MovieUID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid movie_uid", ErrValidation)
		}
		filter.MovieID = id
	}
	if req.HallUID != "" {
		id, err := uuid.Parse(req.HallUID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid hall_uid", ErrValidation)
		}
		filter.HallID = id
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date", ErrValidation)
		}
		filter.Date = date
	}

	details, err := s.showtimes.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list showtimes: %w", err)
	}

	result := make([]response.Showtime, 0, len(details))
	for _, detail := range details {
		result = append(result, toShowtimeResponse(detail))
	}

	return result, nil
}

func (s *showtimeService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateShowtime) error {
	showtime, err := s.showtimes.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update showtime: %w", err)
	}
	if showtime == nil {
		return ErrNotFound
	}

	movie, err := s.movies.FindByID(ctx, showtime.MovieID)
	if err != nil {
		return fmt.Errorf("update showtime: %w", err)
	}
	if movie == nil {
		return fmt.Errorf("%w: movie %s", ErrNotFound, showtime.MovieID.String())
	}

	showtime.StartsAt = req.StartsAt
	showtime.EndsAt = req.StartsAt.Add(time.Duration(movie.DurationMinutes) * time.Minute)
	showtime.AdultPrice = req.AdultPrice
	showtime.ChildPrice = req.ChildPrice
	showtime.UpdatedAt = time.Now()

	return s.showtimes.Update(ctx, showtime)
}

func (s *showtimeService) Delete(ctx context.Context, id uuid.UUID) error {
	showtime, err := s.showtimes.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete showtime: %w", err)
	}
	if showtime == nil {
		return ErrNotFound
	}

	return s.showtimes.Delete(ctx, id)
}
