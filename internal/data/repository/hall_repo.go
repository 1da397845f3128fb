package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type HallRepository interface {
	// CreateWithSeats inserts the hall and its rows x cols seat grid in one
	// transaction.
	CreateWithSeats(ctx context.Context, hall *entity.Hall) (int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error)
	FindByCinemaID(ctx context.Context, cinemaID uuid.UUID) ([]*entity.Hall, error)
	Update(ctx context.Context, hall *entity.Hall) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	Delete(ctx context.Context, id uuid.UUID) error

	// RecreateSeats drops the hall's seats and regenerates the grid from the
	// current rows/cols, atomically.
	RecreateSeats(ctx context.Context, hallID uuid.UUID) (int, error)
}

type hallRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewHallRepository(db database.PgxIface, log *zap.Logger) HallRepository {
	return &hallRepository{
		db:  db,
		log: log.With(zap.String("repository", "hall")),
	}
}

func (r *hallRepository) CreateWithSeats(ctx context.Context, hall *entity.Hall) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin hall transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO halls (id, cinema_id, name, rows, cols, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		hall.ID,
		hall.CinemaID,
		hall.Name,
		hall.Rows,
		hall.Cols,
		hall.Active,
		hall.CreatedAt,
		hall.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create hall",
			zap.Error(err),
			zap.String("name", hall.Name),
		)
		return 0, fmt.Errorf("create hall %s: %w", hall.Name, err)
	}

	created, err := insertSeatGrid(ctx, tx, hall.ID, hall.Rows, hall.Cols, hall.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create seat grid",
			zap.Error(err),
			zap.String("hall_id", hall.ID.String()),
		)
		return 0, fmt.Errorf("create seats for hall %s: %w", hall.ID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit hall transaction: %w", err)
	}

	return created, nil
}

func (r *hallRepository) RecreateSeats(ctx context.Context, hallID uuid.UUID) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin recreate transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var numRows, numCols int
	err = tx.QueryRow(ctx, `SELECT rows, cols FROM halls WHERE id = $1`, hallID).Scan(&numRows, &numCols)
	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("hall %s not found", hallID.String())
	}
	if err != nil {
		return 0, fmt.Errorf("find hall %s for recreate: %w", hallID.String(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM seats WHERE hall_id = $1`, hallID); err != nil {
		r.log.Error("Failed to delete old seats",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return 0, fmt.Errorf("delete seats for hall %s: %w", hallID.String(), err)
	}

	created, err := insertSeatGrid(ctx, tx, hallID, numRows, numCols, time.Now())
	if err != nil {
		return 0, fmt.Errorf("recreate seats for hall %s: %w", hallID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit recreate transaction: %w", err)
	}

	return created, nil
}

func insertSeatGrid(ctx context.Context, tx pgx.Tx, hallID uuid.UUID, numRows, numCols int, now time.Time) (int, error) {
	var sb strings.Builder
	args := make([]any, 0, numRows*numCols*5)
	argIdx := 1

	for row := 1; row <= numRows; row++ {
		for col := 1; col <= numCols; col++ {
			if argIdx > 1 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, TRUE, $%d)",
				argIdx, argIdx+1, argIdx+2, argIdx+3, argIdx+4))
			args = append(args, uuid.New(), hallID, row, col, now)
			argIdx += 5
		}
	}

	query := fmt.Sprintf(`
		INSERT INTO seats (id, hall_id, row_num, seat_num, active, created_at)
		VALUES %s
	`, sb.String())

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return 0, err
	}

	return numRows * numCols, nil
}

func (r *hallRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	query := `
		SELECT id, cinema_id, name, rows, cols, active, created_at, updated_at
		FROM halls
		WHERE id = $1
	`

	var hall entity.Hall
	err := r.db.QueryRow(ctx, query, id).Scan(
		&hall.ID,
		&hall.CinemaID,
		&hall.Name,
		&hall.Rows,
		&hall.Cols,
		&hall.Active,
		&hall.CreatedAt,
		&hall.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find hall by ID",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return nil, fmt.Errorf("find hall by ID %s: %w", id.String(), err)
	}

	return &hall, nil
}

func (r *hallRepository) FindByCinemaID(ctx context.Context, cinemaID uuid.UUID) ([]*entity.Hall, error) {
	query := `
		SELECT id, cinema_id, name, rows, cols, active, created_at, updated_at
		FROM halls
		WHERE cinema_id = $1
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, cinemaID)
	if err != nil {
		r.log.Error("Failed to find halls by cinema",
			zap.Error(err),
			zap.String("cinema_id", cinemaID.String()),
		)
		return nil, fmt.Errorf("find halls by cinema %s: %w", cinemaID.String(), err)
	}
	defer rows.Close()

	var halls []*entity.Hall
	for rows.Next() {
		var hall entity.Hall
		err := rows.Scan(
			&hall.ID,
			&hall.CinemaID,
			&hall.Name,
			&hall.Rows,
			&hall.Cols,
			&hall.Active,
			&hall.CreatedAt,
			&hall.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan hall row: %w", err)
		}
		halls = append(halls, &hall)
	}

	return halls, nil
}

func (r *hallRepository) Update(ctx context.Context, hall *entity.Hall) error {
	query := `
		UPDATE halls
		SET name = $2, rows = $3, cols = $4, active = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		hall.ID,
		hall.Name,
		hall.Rows,
		hall.Cols,
		hall.Active,
		hall.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update hall",
			zap.Error(err),
			zap.String("hall_id", hall.ID.String()),
		)
		return fmt.Errorf("update hall %s: %w", hall.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("hall %s not found", hall.ID.String())
	}

	return nil
}

func (r *hallRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE halls SET active = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set hall active state",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return fmt.Errorf("set hall %s active: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("hall %s not found", id.String())
	}

	return nil
}

func (r *hallRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM halls WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete hall",
			zap.Error(err),
			zap.String("hall_id", id.String()),
		)
		return fmt.Errorf("delete hall %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("hall %s not found", id.String())
	}

	return nil
}
