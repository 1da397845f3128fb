package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type SeatRepository interface {
	FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) FindByHallID(ctx context.Context, hallID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, hall_id, row_num, seat_num, active, created_at
		FROM seats
		WHERE hall_id = $1
		ORDER BY row_num, seat_num
	`

	rows, err := r.db.Query(ctx, query, hallID)
	if err != nil {
		r.log.Error("Failed to find seats by hall",
			zap.Error(err),
			zap.String("hall_id", hallID.String()),
		)
		return nil, fmt.Errorf("find seats by hall %s: %w", hallID.String(), err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.HallID,
			&seat.Row,
			&seat.Number,
			&seat.Active,
			&seat.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}

func (r *seatRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, hall_id, row_num, seat_num, active, created_at
		FROM seats
		WHERE id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find seats by IDs",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return nil, fmt.Errorf("find seats by IDs: %w", err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.HallID,
			&seat.Row,
			&seat.Number,
			&seat.Active,
			&seat.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}

func (r *seatRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	query := `UPDATE seats SET active = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, active)
	if err != nil {
		r.log.Error("Failed to set seat active state",
			zap.Error(err),
			zap.String("seat_id", id.String()),
		)
		return fmt.Errorf("set seat %s active: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("seat %s not found", id.String())
	}

	return nil
}
