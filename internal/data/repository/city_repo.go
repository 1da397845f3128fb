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

type CityRepository interface {
	Create(ctx context.Context, city *entity.City) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.City, error)
	FindAll(ctx context.Context) ([]*entity.City, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type cityRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCityRepository(db database.PgxIface, log *zap.Logger) CityRepository {
	return &cityRepository{
		db:  db,
		log: log.With(zap.String("repository", "city")),
	}
}

func (r *cityRepository) Create(ctx context.Context, city *entity.City) error {
	query := `INSERT INTO cities (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, city.ID, city.Name, city.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create city",
			zap.Error(err),
			zap.String("name", city.Name),
		)
		return fmt.Errorf("create city %s: %w", city.Name, err)
	}

	return nil
}

func (r *cityRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.City, error) {
	query := `SELECT id, name, created_at FROM cities WHERE id = $1`

	var city entity.City
	err := r.db.QueryRow(ctx, query, id).Scan(&city.ID, &city.Name, &city.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find city by ID",
			zap.Error(err),
			zap.String("city_id", id.String()),
		)
		return nil, fmt.Errorf("find city by ID %s: %w", id.String(), err)
	}

	return &city, nil
}

func (r *cityRepository) FindAll(ctx context.Context) ([]*entity.City, error) {
	query := `SELECT id, name, created_at FROM cities ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all cities", zap.Error(err))
		return nil, fmt.Errorf("find all cities: %w", err)
	}
	defer rows.Close()

	var cities []*entity.City
	for rows.Next() {
		var city entity.City
		if err := rows.Scan(&city.ID, &city.Name, &city.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan city row: %w", err)
		}
		cities = append(cities, &city)
	}

	return cities, nil
}

func (r *cityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM cities WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete city",
			zap.Error(err),
			zap.String("city_id", id.String()),
		)
		return fmt.Errorf("delete city %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("city %s not found", id.String())
	}

	return nil
}
