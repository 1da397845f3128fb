package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CinemaRepository interface {
	Create(ctx context.Context, cinema *entity.Cinema) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Cinema, error)
	FindAll(ctx context.Context) ([]*entity.Cinema, error)
	FindByCityID(ctx context.Context, cityID uuid.UUID) ([]*entity.Cinema, error)
	Update(ctx context.Context, cinema *entity.Cinema) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type cinemaRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCinemaRepository(db database.PgxIface, log *zap.Logger) CinemaRepository {
	return &cinemaRepository{
		db:  db,
		log: log.With(zap.String("repository", "cinema")),
	}
}

func (r *cinemaRepository) Create(ctx context.Context, cinema *entity.Cinema) error {
	query := `
		INSERT INTO cinemas (id, city_id, name, address, phone, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		cinema.ID,
		cinema.CityID,
		cinema.Name,
		cinema.Address,
		cinema.Phone,
		cinema.Active,
		cinema.CreatedAt,
		cinema.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create cinema",
			zap.Error(err),
			zap.String("name", cinema.Name),
		)
		return fmt.Errorf("create cinema %s: %w", cinema.Name, err)
	}

	return nil
}

func (r *cinemaRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cinema, error) {
	query := `
		SELECT id, city_id, name, address, phone, active, created_at, updated_at
		FROM cinemas
		WHERE id = $1
	`

	var cinema entity.Cinema
	err := r.db.QueryRow(ctx, query, id).Scan(
		&cinema.ID,
		&cinema.CityID,
		&cinema.Name,
		&cinema.Address,
		&cinema.Phone,
		&cinema.Active,
		&cinema.CreatedAt,
		&cinema.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find cinema by ID",
			zap.Error(err),
			zap.String("cinema_id", id.String()),
		)
		return nil, fmt.Errorf("find cinema by ID %s: %w", id.String(), err)
	}

	return &cinema, nil
}

func (r *cinemaRepository) FindAll(ctx context.Context) ([]*entity.Cinema, error) {
	query := `
		SELECT id, city_id, name, address, phone, active, created_at, updated_at
		FROM cinemas
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all cinemas", zap.Error(err))
		return nil, fmt.Errorf("find all cinemas: %w", err)
	}
	defer rows.Close()

	return scanCinemas(rows)
}

func (r *cinemaRepository) FindByCityID(ctx context.Context, cityID uuid.UUID) ([]*entity.Cinema, error) {
	query := `
		SELECT id, city_id, name, address, phone, active, created_at, updated_at
		FROM cinemas
		WHERE city_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, cityID)
	if err != nil {
		r.log.Error("Failed to find cinemas by city",
			zap.Error(err),
			zap.String("city_id", cityID.String()),
		)
		return nil, fmt.Errorf("find cinemas by city %s: %w", cityID.String(), err)
	}
	defer rows.Close()

	return scanCinemas(rows)
}

func scanCinemas(rows pgx.Rows) ([]*entity.Cinema, error) {
	var cinemas []*entity.Cinema
	for rows.Next() {
		var cinema entity.Cinema
		err := rows.Scan(
			&cinema.ID,
			&cinema.CityID,
			&cinema.Name,
			&cinema.Address,
			&cinema.Phone,
			&cinema.Active,
			&cinema.CreatedAt,
			&cinema.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan cinema row: %w", err)
		}
		cinemas = append(cinemas, &cinema)
	}
	return cinemas, nil
}

func (r *cinemaRepository) Update(ctx context.Context, cinema *entity.Cinema) error {
	query := `
		UPDATE cinemas
		SET name = $2, address = $3, phone = $4, active = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		cinema.ID,
		cinema.Name,
		cinema.Address,
		cinema.Phone,
		cinema.Active,
		cinema.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update cinema",
			zap.Error(err),
			zap.String("cinema_id", cinema.ID.String()),
		)
		return fmt.Errorf("update cinema %s: %w", cinema.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cinema %s not found", cinema.ID.String())
	}

	return nil
}

func (r *cinemaRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE cinemas SET active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set cinema active state",
			zap.Error(err),
			zap.String("cinema_id", id.String()),
		)
		return fmt.Errorf("set cinema %s active: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cinema %s not found", id.String())
	}

	return nil
}

func (r *cinemaRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cinemas WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete cinema",
			zap.Error(err),
			zap.String("cinema_id", id.String()),
		)
		return fmt.Errorf("delete cinema %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("cinema %s not found", id.String())
	}

	return nil
}
