package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/payment"
	"cinema-reservation/internal/realtime"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeShowtimeRepo struct {
	repository.ShowtimeRepository

	detail *repository.ShowtimeDetail
}

func (f *fakeShowtimeRepo) FindDetailByID(ctx context.Context, id uuid.UUID) (*repository.ShowtimeDetail, error) {
	if f.detail != nil && f.detail.Showtime.ID == id {
		return f.detail, nil
	}
	return nil, nil
}

type fakeSeatRepo struct {
	repository.SeatRepository

	seats map[uuid.UUID]*entity.Seat
}

func (f *fakeSeatRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	var result []*entity.Seat
	for _, id := range ids {
		if seat, ok := f.seats[id]; ok {
			result = append(result, seat)
		}
	}
	return result, nil
}

type fakeLedger struct {
	repository.ReservationRepository

	conflicts   []uuid.UUID
	holdErr     error
	heldParams  *repository.HoldParams
	heldPayment *entity.Payment
	released    []uuid.UUID
}

func (f *fakeLedger) HoldSeats(ctx context.Context, pay *entity.Payment, params *repository.HoldParams) ([]uuid.UUID, error) {
	f.heldPayment = pay
	f.heldParams = params
	return f.conflicts, f.holdErr
}

func (f *fakeLedger) ReleaseByPayment(ctx context.Context, paymentID uuid.UUID) ([]repository.ReleasedSeat, error) {
	f.released = append(f.released, paymentID)
	var out []repository.ReleasedSeat
	if f.heldParams != nil {
		for _, seatID := range f.heldParams.SeatIDs {
			out = append(out, repository.ReleasedSeat{ShowtimeID: f.heldParams.ShowtimeID, SeatID: seatID})
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	repository.PaymentRepository

	payment    *entity.Payment
	sessionIDs map[uuid.UUID]string
}

func (f *fakePaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	if f.payment != nil && f.payment.ID == id {
		return f.payment, nil
	}
	return nil, nil
}

func (f *fakePaymentRepo) UpdateSessionID(ctx context.Context, id uuid.UUID, sessionID string) error {
	if f.sessionIDs == nil {
		f.sessionIDs = make(map[uuid.UUID]string)
	}
	f.sessionIDs[id] = sessionID
	return nil
}

type fakeGateway struct {
	session *payment.Session
	err     error
	calls   int
	lastReq *payment.SessionRequest
}

func (f *fakeGateway) CreateCheckoutSession(ctx context.Context, req *payment.SessionRequest) (*payment.Session, error) {
	f.calls++
	f.lastReq = req
	return f.session, f.err
}

func (f *fakeGateway) ParseWebhook(payload []byte, signature string) (*payment.WebhookEvent, error) {
	return nil, errors.New("not implemented")
}

type checkoutFixture struct {
	showtimeID uuid.UUID
	hallID     uuid.UUID
	seatIDs    []uuid.UUID
	seatRepo   *fakeSeatRepo
	ledger     *fakeLedger
	gateway    *fakeGateway
	payments   *fakePaymentRepo
	hub        *realtime.Hub
	service    CheckoutService
}

func newCheckoutFixture(t *testing.T, seatCount int) *checkoutFixture {
	t.Helper()

	showtimeID := uuid.New()
	hallID := uuid.New()

	detail := &repository.ShowtimeDetail{MovieTitle: "Night Train"}
	detail.Showtime.ID = showtimeID
	detail.Showtime.HallID = hallID
	detail.Showtime.StartsAt = time.Now().Add(24 * time.Hour)

	seats := make(map[uuid.UUID]*entity.Seat, seatCount)
	seatIDs := make([]uuid.UUID, 0, seatCount)
	for i := 0; i < seatCount; i++ {
		seat := &entity.Seat{HallID: hallID, Row: 1, Number: i + 1, Active: true}
		seat.ID = uuid.New()
		seats[seat.ID] = seat
		seatIDs = append(seatIDs, seat.ID)
	}

	seatRepo := &fakeSeatRepo{seats: seats}
	ledger := &fakeLedger{}
	gateway := &fakeGateway{session: &payment.Session{ID: "cs_123", RedirectURL: "https://pay.example.com/cs_123"}}
	payments := &fakePaymentRepo{}
	hub := realtime.NewHub(zap.NewNop())

	service := NewCheckoutService(
		&fakeShowtimeRepo{detail: detail},
		seatRepo,
		ledger,
		payments,
		gateway,
		hub,
		utils.CheckoutConfig{HoldTTL: 15 * time.Minute},
		zap.NewNop(),
	)

	return &checkoutFixture{
		showtimeID: showtimeID,
		hallID:     hallID,
		seatIDs:    seatIDs,
		seatRepo:   seatRepo,
		ledger:     ledger,
		gateway:    gateway,
		payments:   payments,
		hub:        hub,
		service:    service,
	}
}

func (f *checkoutFixture) request(amount int64) *request.Checkout {
	uids := make([]string, len(f.seatIDs))
	for i, id := range f.seatIDs {
		uids[i] = id.String()
	}
	return &request.Checkout{
		ShowtimeUID: f.showtimeID.String(),
		SeatUIDs:    uids,
		Amount:      amount,
		Currency:    "usd",
	}
}

func TestCheckoutHoldsSeatsAndReturnsRedirect(t *testing.T) {
	fix := newCheckoutFixture(t, 2)
	sub := fix.hub.Subscribe(fix.showtimeID)

	result, err := fix.service.Checkout(context.Background(), fix.request(3000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RedirectURL != "https://pay.example.com/cs_123" {
		t.Fatalf("unexpected redirect URL %s", result.RedirectURL)
	}

	if fix.ledger.heldParams == nil {
		t.Fatal("expected a hold to be placed")
	}
	if fix.ledger.heldParams.PricePerSeat != 1500 {
		t.Fatalf("expected per-seat price 1500, got %d", fix.ledger.heldParams.PricePerSeat)
	}
	if fix.ledger.heldPayment.Status != entity.PaymentStatusPending {
		t.Fatalf("expected pending payment, got %s", fix.ledger.heldPayment.Status)
	}

	if got := fix.payments.sessionIDs[fix.ledger.heldPayment.ID]; got != "cs_123" {
		t.Fatalf("expected session ID stored, got %q", got)
	}

	// Each held seat is broadcast as reserved.
	for i := 0; i < 2; i++ {
		select {
		case update := <-sub.Updates():
			if update.Status != string(entity.SeatStatusReserved) {
				t.Fatalf("expected reserved broadcast, got %s", update.Status)
			}
		default:
			t.Fatalf("expected 2 broadcasts, got %d", i)
		}
	}
}

func TestCheckoutConflictNamesSeatsAndSkipsProvider(t *testing.T) {
	fix := newCheckoutFixture(t, 2)
	fix.ledger.conflicts = []uuid.UUID{fix.seatIDs[0]}

	_, err := fix.service.Checkout(context.Background(), fix.request(3000))

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(conflict.SeatIDs) != 1 || conflict.SeatIDs[0] != fix.seatIDs[0] {
		t.Fatalf("expected conflict on %s, got %v", fix.seatIDs[0], conflict.SeatIDs)
	}

	if fix.gateway.calls != 0 {
		t.Fatal("provider must not be called on conflict")
	}
}

func TestCheckoutReleasesHoldWhenProviderFails(t *testing.T) {
	fix := newCheckoutFixture(t, 2)
	fix.gateway.session = nil
	fix.gateway.err = errors.New("stripe down")

	_, err := fix.service.Checkout(context.Background(), fix.request(3000))
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}

	if len(fix.ledger.released) != 1 {
		t.Fatalf("expected 1 release call, got %d", len(fix.ledger.released))
	}
	if fix.ledger.released[0] != fix.ledger.heldPayment.ID {
		t.Fatal("released payment does not match the held payment")
	}
}

func TestCheckoutRejectsSeatFromAnotherHall(t *testing.T) {
	fix := newCheckoutFixture(t, 1)

	stranger := &entity.Seat{HallID: uuid.New(), Row: 9, Number: 9, Active: true}
	stranger.ID = uuid.New()
	fix.seatRepo.seats[stranger.ID] = stranger

	req := fix.request(1500)
	req.SeatUIDs = []string{stranger.ID.String()}

	_, err := fix.service.Checkout(context.Background(), req)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if fix.ledger.heldParams != nil {
		t.Fatal("no hold may be placed for an invalid selection")
	}
}

func TestCheckoutBlockedSeatIsConflict(t *testing.T) {
	fix := newCheckoutFixture(t, 1)
	fix.seatRepo.seats[fix.seatIDs[0]].Active = false

	_, err := fix.service.Checkout(context.Background(), fix.request(1500))

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if fix.gateway.calls != 0 {
		t.Fatal("provider must not be called for a blocked seat")
	}
}

func TestCheckoutUnknownShowtimeIsNotFound(t *testing.T) {
	fix := newCheckoutFixture(t, 1)

	req := fix.request(1500)
	req.ShowtimeUID = uuid.New().String()

	_, err := fix.service.Checkout(context.Background(), req)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
