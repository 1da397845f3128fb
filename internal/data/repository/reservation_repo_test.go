package repository

import (
	"context"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"go.uber.org/zap"
)

func newReservationRepoMock(t *testing.T) (pgxmock.PgxPoolIface, ReservationRepository) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	return mock, NewReservationRepository(mock, zap.NewNop())
}

// anyArgs returns n placeholder matchers: pgxmock always compares argument
// counts, so expectations must list one matcher per SQL parameter even when
// the values themselves don't matter.
func anyArgs(n int) []interface{} {
	args := make([]interface{}, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func pendingPayment(amount int64) *entity.Payment {
	now := time.Now()
	p := &entity.Payment{
		Amount:   amount,
		Currency: "usd",
		Status:   entity.PaymentStatusPending,
	}
	p.ID = uuid.New()
	p.CreatedAt = now
	p.UpdatedAt = now
	return p
}

func TestHoldSeatsAllOrNothingSuccess(t *testing.T) {
	mock, repo := newReservationRepoMock(t)

	pay := pendingPayment(3000)
	params := &HoldParams{
		ShowtimeID:   uuid.New(),
		SeatIDs:      []uuid.UUID{uuid.New(), uuid.New()},
		PricePerSeat: 1500,
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(anyArgs(8)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(anyArgs(17)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 2))
	mock.ExpectCommit()

	conflicts, err := repo.HoldSeats(context.Background(), pay, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflicts != nil {
		t.Fatalf("expected no conflicts, got %v", conflicts)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHoldSeatsConflictRollsBackWholeBatch(t *testing.T) {
	mock, repo := newReservationRepoMock(t)

	taken := uuid.New()
	pay := pendingPayment(3000)
	params := &HoldParams{
		ShowtimeID:   uuid.New(),
		SeatIDs:      []uuid.UUID{taken, uuid.New()},
		PricePerSeat: 1500,
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(anyArgs(8)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// Only one of two rows written: somebody holds the other seat.
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(anyArgs(17)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectQuery("SELECT seat_id").
		WithArgs(anyArgs(3)...).
		WillReturnRows(pgxmock.NewRows([]string{"seat_id"}).AddRow(taken))
	mock.ExpectRollback()

	conflicts, err := repo.HoldSeats(context.Background(), pay, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 1 || conflicts[0] != taken {
		t.Fatalf("expected conflict on %s, got %v", taken, conflicts)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestHoldSeatsRaceReportsWholeBatch(t *testing.T) {
	mock, repo := newReservationRepoMock(t)

	pay := pendingPayment(1500)
	seatID := uuid.New()
	params := &HoldParams{
		ShowtimeID:   uuid.New(),
		SeatIDs:      []uuid.UUID{seatID},
		PricePerSeat: 1500,
		ExpiresAt:    time.Now().Add(15 * time.Minute),
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payments").
		WithArgs(anyArgs(8)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO reservations").
		WithArgs(anyArgs(9)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	// The competing hold is not visible to the conflict read yet.
	mock.ExpectQuery("SELECT seat_id").
		WithArgs(anyArgs(3)...).
		WillReturnRows(pgxmock.NewRows([]string{"seat_id"}))
	mock.ExpectRollback()

	conflicts, err := repo.HoldSeats(context.Background(), pay, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(conflicts) != 1 || conflicts[0] != seatID {
		t.Fatalf("expected the whole batch reported, got %v", conflicts)
	}
}

func TestFinalizeSettlesReservedRows(t *testing.T) {
	mock, repo := newReservationRepoMock(t)

	paymentID := uuid.New()
	seatA, seatB := uuid.New(), uuid.New()
	email := "buyer@example.com"

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payments").
		WithArgs(anyArgs(3)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery("UPDATE reservations").
		WithArgs(anyArgs(3)...).
		WillReturnRows(pgxmock.NewRows([]string{"seat_id"}).AddRow(seatA).AddRow(seatB))
	mock.ExpectCommit()

	seatIDs, settled, err := repo.Finalize(context.Background(), paymentID, &email, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !settled {
		t.Fatal("expected settled = true")
	}
	if len(seatIDs) != 2 {
		t.Fatalf("expected 2 seats, got %d", len(seatIDs))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFinalizeIsIdempotent(t *testing.T) {
	mock, repo := newReservationRepoMock(t)

	mock.ExpectBegin()
	// Payment already settled by an earlier delivery.
	mock.ExpectExec("UPDATE payments").
		WithArgs(anyArgs(3)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	seatIDs, settled, err := repo.Finalize(context.Background(), uuid.New(), nil, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settled {
		t.Fatal("duplicate delivery must not settle again")
	}
	if seatIDs != nil {
		t.Fatalf("expected no seats, got %v", seatIDs)
	}
}

func TestReclaimExpiredReturnsReleasedPairs(t *testing.T) {
	mock, repo := newReservationRepoMock(t)

	showtimeID := uuid.New()
	seatID := uuid.New()

	mock.ExpectQuery("DELETE FROM reservations").
		WithArgs(anyArgs(1)...).
		WillReturnRows(pgxmock.NewRows([]string{"showtime_id", "seat_id"}).AddRow(showtimeID, seatID))

	released, err := repo.ReclaimExpired(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(released) != 1 {
		t.Fatalf("expected 1 released seat, got %d", len(released))
	}
	if released[0].ShowtimeID != showtimeID || released[0].SeatID != seatID {
		t.Fatalf("unexpected released pair: %+v", released[0])
	}
}

func TestReleaseByPaymentDropsHoldsAndFailsPayment(t *testing.T) {
	mock, repo := newReservationRepoMock(t)

	paymentID := uuid.New()
	showtimeID := uuid.New()
	seatID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery("DELETE FROM reservations").
		WithArgs(anyArgs(1)...).
		WillReturnRows(pgxmock.NewRows([]string{"showtime_id", "seat_id"}).AddRow(showtimeID, seatID))
	mock.ExpectExec("UPDATE payments").
		WithArgs(anyArgs(1)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	released, err := repo.ReleaseByPayment(context.Background(), paymentID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(released) != 1 || released[0].SeatID != seatID {
		t.Fatalf("unexpected released seats: %v", released)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
