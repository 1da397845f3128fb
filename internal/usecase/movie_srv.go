package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultMovieLimit = 20

type MovieService interface {
	Create(ctx context.Context, req *request.CreateMovie) (*response.Movie, error)
	Get(ctx context.Context, id uuid.UUID) (*response.Movie, error)
	Search(ctx context.Context, req *request.SearchMovie) (*response.MovieList, error)
	Update(ctx context.Context, id uuid.UUID, req *request.UpdateMovie) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieService struct {
	movies repository.MovieRepository
	log    *zap.Logger
}

func NewMovieService(movies repository.MovieRepository, log *zap.Logger) MovieService {
	return &movieService{
		movies: movies,
		log:    log.With(zap.String("service", "movie")),
	}
}

func toMovieResponse(movie *entity.Movie) response.Movie {
	return response.Movie{
		UID:             movie.ID.String(),
		Title:           movie.Title,
		DurationMinutes: movie.DurationMinutes,
		Description:     movie.Description,
		PosterURL:       movie.PosterURL,
		ReleaseYear:     movie.ReleaseYear,
		Active:          movie.Active,
	}
}

func (s *movieService) Create(ctx context.Context, req *request.CreateMovie) (*response.Movie, error) {
	now := time.Now()
	movie := &entity.Movie{
		Title:           req.Title,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
		PosterURL:       req.PosterURL,
		ReleaseYear:     req.ReleaseYear,
		Active:          true,
	}
	movie.ID = uuid.New()
	movie.CreatedAt = now
	movie.UpdatedAt = now

	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := toMovieResponse(movie)
	return &resp, nil
}

func (s *movieService) Get(ctx context.Context, id uuid.UUID) (*response.Movie, error) {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, ErrNotFound
	}

	resp := toMovieResponse(movie)
	return &resp, nil
}

func (s *movieService) Search(ctx context.Context, req *request.SearchMovie) (*response.MovieList, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultMovieLimit
	}

	filter := &repository.MovieFilter{
		Title:  req.Title,
		Active: req.Active,
		Limit:  limit,
		Offset: utils.CalculateOffset(page, limit),
	}

	movies, err := s.movies.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	total, err := s.movies.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search movies: %w", err)
	}

	items := make([]response.Movie, 0, len(movies))
	for _, movie := range movies {
		items = append(items, toMovieResponse(movie))
	}

	return &response.MovieList{
		Movies: items,
		Pagination: response.Pagination{
			Page:       page,
			Limit:      limit,
			TotalItems: total,
			TotalPages: utils.CalculateTotalPages(int64(total), limit),
		},
	}, nil
}

func (s *movieService) Update(ctx context.Context, id uuid.UUID, req *request.UpdateMovie) error {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	if movie == nil {
		return ErrNotFound
	}

	movie.Title = req.Title
	movie.DurationMinutes = req.DurationMinutes
	movie.Description = req.Description
	movie.PosterURL = req.PosterURL
	movie.ReleaseYear = req.ReleaseYear
	if req.Active != nil {
		movie.Active = *req.Active
	}
	movie.UpdatedAt = time.Now()

	return s.movies.Update(ctx, movie)
}

func (s *movieService) Delete(ctx context.Context, id uuid.UUID) error {
	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if movie == nil {
		return ErrNotFound
	}

	return s.movies.Delete(ctx, id)
}
