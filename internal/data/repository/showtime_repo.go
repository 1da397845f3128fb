package repository

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ShowtimeFilter narrows List. Zero values mean no filter; Date matches the
// calendar day of starts_at.
type ShowtimeFilter struct {
	MovieID uuid.UUID
	HallID  uuid.UUID
	Date    time.Time
}

// ShowtimeDetail carries the joined names needed for tickets and listings.
type ShowtimeDetail struct {
	Showtime   entity.Showtime
	MovieTitle string
	HallName   string
	CinemaName string
}

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *entity.Showtime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error)
	FindDetailByID(ctx context.Context, id uuid.UUID) (*ShowtimeDetail, error)
	List(ctx context.Context, filter *ShowtimeFilter) ([]*ShowtimeDetail, error)
	Update(ctx context.Context, showtime *entity.Showtime) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type showtimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowtimeRepository(db database.PgxIface, log *zap.Logger) ShowtimeRepository {
	return &showtimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

func (r *showtimeRepository) Create(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		INSERT INTO showtimes (id, movie_id, hall_id, starts_at, ends_at, adult_price, child_price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.HallID,
		showtime.StartsAt,
		showtime.EndsAt,
		showtime.AdultPrice,
		showtime.ChildPrice,
		showtime.CreatedAt,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create showtime",
			zap.Error(err),
			zap.String("movie_id", showtime.MovieID.String()),
		)
		return fmt.Errorf("create showtime: %w", err)
	}

	return nil
}

func (r *showtimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Showtime, error) {
	query := `
		SELECT id, movie_id, hall_id, starts_at, ends_at, adult_price, child_price, created_at, updated_at
		FROM showtimes
		WHERE id = $1
	`

	var showtime entity.Showtime
	err := r.db.QueryRow(ctx, query, id).Scan(
		&showtime.ID,
		&showtime.MovieID,
		&showtime.HallID,
		&showtime.StartsAt,
		&showtime.EndsAt,
		&showtime.AdultPrice,
		&showtime.ChildPrice,
		&showtime.CreatedAt,
		&showtime.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime by ID",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime by ID %s: %w", id.String(), err)
	}

	return &showtime, nil
}

const showtimeDetailSelect = `
	SELECT s.id, s.movie_id, s.hall_id, s.starts_at, s.ends_at, s.adult_price, s.child_price, s.created_at, s.updated_at,
	       m.title, h.name, c.name
	FROM showtimes s
	JOIN movies m ON m.id = s.movie_id
	JOIN halls h ON h.id = s.hall_id
	JOIN cinemas c ON c.id = h.cinema_id
`

func scanShowtimeDetail(row pgx.Row) (*ShowtimeDetail, error) {
	var detail ShowtimeDetail
	err := row.Scan(
		&detail.Showtime.ID,
		&detail.Showtime.MovieID,
		&detail.Showtime.HallID,
		&detail.Showtime.StartsAt,
		&detail.Showtime.EndsAt,
		&detail.Showtime.AdultPrice,
		&detail.Showtime.ChildPrice,
		&detail.Showtime.CreatedAt,
		&detail.Showtime.UpdatedAt,
		&detail.MovieTitle,
		&detail.HallName,
		&detail.CinemaName,
	)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *showtimeRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*ShowtimeDetail, error) {
	query := showtimeDetailSelect + ` WHERE s.id = $1`

	detail, err := scanShowtimeDetail(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find showtime detail",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("find showtime detail %s: %w", id.String(), err)
	}

	return detail, nil
}

func (r *showtimeRepository) List(ctx context.Context, filter *ShowtimeFilter) ([]*ShowtimeDetail, error) {
	query := showtimeDetailSelect + ` WHERE 1=1`
	var args []any

	if filter.MovieID != uuid.Nil {
		args = append(args, filter.MovieID)
		query += fmt.Sprintf(" AND s.movie_id = $%d", len(args))
	}
	if filter.HallID != uuid.Nil {
		args = append(args, filter.HallID)
		query += fmt.Sprintf(" AND s.hall_id = $%d", len(args))
	}
	if !filter.Date.IsZero() {
		args = append(args, filter.Date)
		query += fmt.Sprintf(" AND s.starts_at::date = $%d::date", len(args))
	}

	query += " ORDER BY s.starts_at"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list showtimes", zap.Error(err))
		return nil, fmt.Errorf("list showtimes: %w", err)
	}
	defer rows.Close()

	var details []*ShowtimeDetail
	for rows.Next() {
		detail, err := scanShowtimeDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan showtime row: %w", err)
		}
		details = append(details, detail)
	}

	return details, nil
}

func (r *showtimeRepository) Update(ctx context.Context, showtime *entity.Showtime) error {
	query := `
		UPDATE showtimes
		SET movie_id = $2, hall_id = $3, starts_at = $4, ends_at = $5, adult_price = $6, child_price = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		showtime.ID,
		showtime.MovieID,
		showtime.HallID,
		showtime.StartsAt,
		showtime.EndsAt,
		showtime.AdultPrice,
		showtime.ChildPrice,
		showtime.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update showtime",
			zap.Error(err),
			zap.String("showtime_id", showtime.ID.String()),
		)
		return fmt.Errorf("update showtime %s: %w", showtime.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("showtime %s not found", showtime.ID.String())
	}

	return nil
}

func (r *showtimeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM showtimes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete showtime",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return fmt.Errorf("delete showtime %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("showtime %s not found", id.String())
	}

	return nil
}
