package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HoldParams describes one atomic batch hold. Every requested seat gets a
// reserved row tied to the pending payment, or none do.
type HoldParams struct {
	ShowtimeID   uuid.UUID
	SeatIDs      []uuid.UUID
	PricePerSeat int64
	ExpiresAt    time.Time
}

// ReleasedSeat identifies a (showtime, seat) pair freed by the sweep or by a
// checkout rollback, for broadcasting.
type ReleasedSeat struct {
	ShowtimeID uuid.UUID
	SeatID     uuid.UUID
}

// SeatWithReservation pairs a seat with its ledger row, if any.
type SeatWithReservation struct {
	Seat        entity.Seat
	Reservation *entity.Reservation
}

type ReservationRepository interface {
	// HoldSeats inserts one reserved row per seat plus the pending payment in a
	// single transaction. A seat with a paid or unexpired reserved row is a
	// conflict; on any conflict nothing is written and the conflicting seat IDs
	// are returned. Rows left behind by expired holds are revived in place.
	HoldSeats(ctx context.Context, payment *entity.Payment, params *HoldParams) ([]uuid.UUID, error)

	// Finalize settles every reserved row tied to the payment. It is
	// conditional on current state so it cannot race the sweep, and idempotent:
	// settled reports false when the payment was already finalized.
	Finalize(ctx context.Context, paymentID uuid.UUID, holderEmail *string, now time.Time) (seatIDs []uuid.UUID, settled bool, err error)

	// ReclaimExpired deletes every reserved row whose deadline has passed and
	// returns the released pairs.
	ReclaimExpired(ctx context.Context, now time.Time) ([]ReleasedSeat, error)

	// ReleaseByPayment drops the holds of a payment whose checkout session
	// could not be opened and marks the payment failed.
	ReleaseByPayment(ctx context.Context, paymentID uuid.UUID) ([]ReleasedSeat, error)

	// ListSeatMap returns every seat of the hall with its reservation row for
	// the showtime, ordered by row then number.
	ListSeatMap(ctx context.Context, showtimeID, hallID uuid.UUID) ([]*SeatWithReservation, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) HoldSeats(ctx context.Context, payment *entity.Payment, params *HoldParams) ([]uuid.UUID, error) {
	if len(params.SeatIDs) == 0 {
		return nil, fmt.Errorf("hold seats: empty seat set")
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin hold transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO payments (id, amount, currency, status, holder_email, session_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		payment.ID,
		payment.Amount,
		payment.Currency,
		payment.Status,
		payment.HolderEmail,
		payment.SessionID,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create payment for hold",
			zap.Error(err),
			zap.String("payment_id", payment.ID.String()),
		)
		return nil, fmt.Errorf("create payment %s: %w", payment.ID.String(), err)
	}

	now := payment.CreatedAt

	// One statement for the whole batch. The unique key on (showtime_id,
	// seat_id) is the serialization point: a live row blocks the insert, a row
	// left behind by an expired hold is revived in place. Affected row count
	// below the batch size means at least one seat was taken.
	var sb strings.Builder
	args := make([]any, 0, len(params.SeatIDs)*4+4)
	argIdx := 1
	for i, seatID := range params.SeatIDs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("($%d, $%d, $%d, 'reserved', $%d, $%d, $%d, $%d, $%d)",
			argIdx, argIdx+1, argIdx+2, argIdx+3, argIdx+4, argIdx+5, argIdx+6, argIdx+7))
		args = append(args, uuid.New(), params.ShowtimeID, seatID,
			params.PricePerSeat, params.ExpiresAt, payment.ID, now, now)
		argIdx += 8
	}

	query := fmt.Sprintf(`
		INSERT INTO reservations (id, showtime_id, seat_id, status, price, expires_at, payment_id, created_at, updated_at)
		VALUES %s
		ON CONFLICT (showtime_id, seat_id) DO UPDATE
		SET status = EXCLUDED.status,
		    price = EXCLUDED.price,
		    expires_at = EXCLUDED.expires_at,
		    payment_id = EXCLUDED.payment_id,
		    holder_email = NULL,
		    paid_at = NULL,
		    updated_at = EXCLUDED.updated_at
		WHERE reservations.status = 'reserved' AND reservations.expires_at <= $%d
	`, sb.String(), argIdx)
	args = append(args, now)

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to insert holds",
			zap.Error(err),
			zap.String("showtime_id", params.ShowtimeID.String()),
			zap.Int("seat_count", len(params.SeatIDs)),
		)
		return nil, fmt.Errorf("hold seats for showtime %s: %w", params.ShowtimeID.String(), err)
	}

	if tag.RowsAffected() < int64(len(params.SeatIDs)) {
		conflicts, cErr := r.conflictingSeats(ctx, params.ShowtimeID, params.SeatIDs, now)
		if cErr != nil {
			return nil, cErr
		}
		// The rollback in the deferred call undoes the payment and any
		// partial inserts; the caller sees all-or-nothing.
		return conflicts, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit hold transaction: %w", err)
	}

	return nil, nil
}

func (r *reservationRepository) conflictingSeats(ctx context.Context, showtimeID uuid.UUID, seatIDs []uuid.UUID, now time.Time) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT seat_id
		FROM reservations
		WHERE showtime_id = $1 AND seat_id = ANY($2)
		  AND (status = 'paid' OR (status = 'reserved' AND expires_at > $3))
	`, showtimeID, seatIDs, now)
	if err != nil {
		r.log.Error("Failed to query conflicting seats",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
		)
		return nil, fmt.Errorf("find conflicting seats for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	var conflicts []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			return nil, fmt.Errorf("scan conflicting seat row: %w", err)
		}
		conflicts = append(conflicts, seatID)
	}

	if len(conflicts) == 0 {
		// Lost the race to a concurrent hold that committed between our
		// insert and this read. Report the whole batch so the client
		// refreshes the map.
		conflicts = seatIDs
	}

	return conflicts, nil
}

func (r *reservationRepository) Finalize(ctx context.Context, paymentID uuid.UUID, holderEmail *string, now time.Time) ([]uuid.UUID, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("begin finalize transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
		UPDATE payments
		SET status = 'paid', holder_email = $2, updated_at = $3
		WHERE id = $1 AND status = 'pending'
	`, paymentID, holderEmail, now)
	if err != nil {
		r.log.Error("Failed to mark payment paid",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return nil, false, fmt.Errorf("mark payment %s paid: %w", paymentID.String(), err)
	}

	if tag.RowsAffected() == 0 {
		// Already settled, most likely a duplicate webhook delivery.
		return nil, false, nil
	}

	rows, err := tx.Query(ctx, `
		UPDATE reservations
		SET status = 'paid', holder_email = $2, expires_at = NULL, paid_at = $3, updated_at = $3
		WHERE payment_id = $1 AND status = 'reserved'
		RETURNING seat_id
	`, paymentID, holderEmail, now)
	if err != nil {
		r.log.Error("Failed to finalize reservations",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return nil, false, fmt.Errorf("finalize reservations for payment %s: %w", paymentID.String(), err)
	}

	var seatIDs []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			rows.Close()
			return nil, false, fmt.Errorf("scan finalized seat row: %w", err)
		}
		seatIDs = append(seatIDs, seatID)
	}
	rows.Close()

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("commit finalize transaction: %w", err)
	}

	return seatIDs, true, nil
}

func (r *reservationRepository) ReclaimExpired(ctx context.Context, now time.Time) ([]ReleasedSeat, error) {
	rows, err := r.db.Query(ctx, `
		DELETE FROM reservations
		WHERE status = 'reserved' AND expires_at <= $1
		RETURNING showtime_id, seat_id
	`, now)
	if err != nil {
		r.log.Error("Failed to reclaim expired holds", zap.Error(err))
		return nil, fmt.Errorf("reclaim expired holds: %w", err)
	}
	defer rows.Close()

	var released []ReleasedSeat
	for rows.Next() {
		var rs ReleasedSeat
		if err := rows.Scan(&rs.ShowtimeID, &rs.SeatID); err != nil {
			return nil, fmt.Errorf("scan released seat row: %w", err)
		}
		released = append(released, rs)
	}

	return released, nil
}

func (r *reservationRepository) ReleaseByPayment(ctx context.Context, paymentID uuid.UUID) ([]ReleasedSeat, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin release transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `
		DELETE FROM reservations
		WHERE payment_id = $1 AND status = 'reserved'
		RETURNING showtime_id, seat_id
	`, paymentID)
	if err != nil {
		r.log.Error("Failed to release holds",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return nil, fmt.Errorf("release holds for payment %s: %w", paymentID.String(), err)
	}

	var released []ReleasedSeat
	for rows.Next() {
		var rs ReleasedSeat
		if err := rows.Scan(&rs.ShowtimeID, &rs.SeatID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan released seat row: %w", err)
		}
		released = append(released, rs)
	}
	rows.Close()

	_, err = tx.Exec(ctx, `
		UPDATE payments SET status = 'failed', updated_at = NOW() WHERE id = $1 AND status = 'pending'
	`, paymentID)
	if err != nil {
		return nil, fmt.Errorf("mark payment %s failed: %w", paymentID.String(), err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit release transaction: %w", err)
	}

	return released, nil
}

func (r *reservationRepository) ListSeatMap(ctx context.Context, showtimeID, hallID uuid.UUID) ([]*SeatWithReservation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT s.id, s.hall_id, s.row_num, s.seat_num, s.active, s.created_at,
		       r.id, r.status, r.price, r.holder_email, r.expires_at, r.paid_at, r.payment_id, r.created_at, r.updated_at
		FROM seats s
		LEFT JOIN reservations r ON r.seat_id = s.id AND r.showtime_id = $1
		WHERE s.hall_id = $2
		ORDER BY s.row_num, s.seat_num
	`, showtimeID, hallID)
	if err != nil {
		r.log.Error("Failed to list seat map",
			zap.Error(err),
			zap.String("showtime_id", showtimeID.String()),
			zap.String("hall_id", hallID.String()),
		)
		return nil, fmt.Errorf("list seat map for showtime %s: %w", showtimeID.String(), err)
	}
	defer rows.Close()

	var result []*SeatWithReservation
	for rows.Next() {
		var sr SeatWithReservation
		var resID *uuid.UUID
		var resStatus *entity.ReservationStatus
		var resPrice *int64
		var resEmail *string
		var resExpiresAt, resPaidAt, resCreatedAt, resUpdatedAt *time.Time
		var resPaymentID *uuid.UUID

		err := rows.Scan(
			&sr.Seat.ID,
			&sr.Seat.HallID,
			&sr.Seat.Row,
			&sr.Seat.Number,
			&sr.Seat.Active,
			&sr.Seat.CreatedAt,
			&resID,
			&resStatus,
			&resPrice,
			&resEmail,
			&resExpiresAt,
			&resPaidAt,
			&resPaymentID,
			&resCreatedAt,
			&resUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan seat map row: %w", err)
		}

		if resID != nil {
			res := &entity.Reservation{
				ShowtimeID:  showtimeID,
				SeatID:      sr.Seat.ID,
				Status:      *resStatus,
				HolderEmail: resEmail,
				ExpiresAt:   resExpiresAt,
				PaidAt:      resPaidAt,
				PaymentID:   resPaymentID,
			}
			res.ID = *resID
			if resPrice != nil {
				res.Price = *resPrice
			}
			if resCreatedAt != nil {
				res.CreatedAt = *resCreatedAt
			}
			if resUpdatedAt != nil {
				res.UpdatedAt = *resUpdatedAt
			}
			sr.Reservation = res
		}

		result = append(result, &sr)
	}

	return result, nil
}
