package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/payment"
	"cinema-reservation/internal/realtime"
	"cinema-reservation/internal/ticket"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeSettleLedger struct {
	repository.ReservationRepository

	seatIDs []uuid.UUID
	settled bool
	calls   int
}

func (f *fakeSettleLedger) Finalize(ctx context.Context, paymentID uuid.UUID, holderEmail *string, now time.Time) ([]uuid.UUID, bool, error) {
	f.calls++
	if !f.settled {
		return nil, false, nil
	}
	return f.seatIDs, true, nil
}

type fakeIssuer struct {
	issued chan *ticket.Ticket
}

func (f *fakeIssuer) Issue(tk *ticket.Ticket) {
	f.issued <- tk
}

type settlementFixture struct {
	showtimeID uuid.UUID
	paymentID  uuid.UUID
	seatIDs    []uuid.UUID
	ledger     *fakeSettleLedger
	issuer     *fakeIssuer
	hub        *realtime.Hub
	service    SettlementService
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()

	showtimeID := uuid.New()
	paymentID := uuid.New()
	seatA, seatB := uuid.New(), uuid.New()

	detail := &repository.ShowtimeDetail{
		MovieTitle: "Night Train",
		HallName:   "Hall 1",
		CinemaName: "Grand Central",
	}
	detail.Showtime.ID = showtimeID
	detail.Showtime.StartsAt = time.Now().Add(24 * time.Hour)
	detail.Showtime.EndsAt = detail.Showtime.StartsAt.Add(2 * time.Hour)

	seats := make(map[uuid.UUID]*entity.Seat)
	for i, id := range []uuid.UUID{seatA, seatB} {
		seat := &entity.Seat{Row: 1, Number: i + 1, Active: true}
		seat.ID = id
		seats[id] = seat
	}

	pay := &entity.Payment{Amount: 3000, Currency: "usd", Status: entity.PaymentStatusPending}
	pay.ID = paymentID

	ledger := &fakeSettleLedger{seatIDs: []uuid.UUID{seatA, seatB}, settled: true}
	issuer := &fakeIssuer{issued: make(chan *ticket.Ticket, 1)}
	hub := realtime.NewHub(zap.NewNop())

	service := NewSettlementService(
		&fakePaymentRepo{payment: pay},
		ledger,
		&fakeShowtimeRepo{detail: detail},
		&fakeSeatRepo{seats: seats},
		hub,
		issuer,
		zap.NewNop(),
	)

	return &settlementFixture{
		showtimeID: showtimeID,
		paymentID:  paymentID,
		seatIDs:    []uuid.UUID{seatA, seatB},
		ledger:     ledger,
		issuer:     issuer,
		hub:        hub,
		service:    service,
	}
}

func completedEvent(fix *settlementFixture) *payment.WebhookEvent {
	email := "buyer@example.com"
	return &payment.WebhookEvent{
		Completed:  true,
		PaymentID:  fix.paymentID,
		ShowtimeID: fix.showtimeID,
		Email:      &email,
	}
}

func TestSettleBroadcastsSoldAndIssuesTicket(t *testing.T) {
	fix := newSettlementFixture(t)
	sub := fix.hub.Subscribe(fix.showtimeID)

	if err := fix.service.Settle(context.Background(), completedEvent(fix)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < len(fix.seatIDs); i++ {
		select {
		case update := <-sub.Updates():
			if update.Status != string(entity.SeatStatusSold) {
				t.Fatalf("expected sold broadcast, got %s", update.Status)
			}
		default:
			t.Fatalf("expected %d broadcasts, got %d", len(fix.seatIDs), i)
		}
	}

	select {
	case tk := <-fix.issuer.issued:
		if tk.MovieTitle != "Night Train" {
			t.Fatalf("unexpected ticket movie %q", tk.MovieTitle)
		}
		if len(tk.Seats) != 2 {
			t.Fatalf("expected 2 seat labels, got %v", tk.Seats)
		}
		if tk.Email == nil || *tk.Email != "buyer@example.com" {
			t.Fatal("ticket should carry the buyer email")
		}
	case <-time.After(time.Second):
		t.Fatal("expected a ticket to be issued")
	}
}

func TestSettleDuplicateDeliveryIsNoOp(t *testing.T) {
	fix := newSettlementFixture(t)
	fix.ledger.settled = false
	sub := fix.hub.Subscribe(fix.showtimeID)

	if err := fix.service.Settle(context.Background(), completedEvent(fix)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	select {
	case update := <-sub.Updates():
		t.Fatalf("duplicate settle must not broadcast, got %+v", update)
	default:
	}

	select {
	case <-fix.issuer.issued:
		t.Fatal("duplicate settle must not issue a second ticket")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSettleUnknownPaymentIsAcknowledged(t *testing.T) {
	fix := newSettlementFixture(t)

	evt := completedEvent(fix)
	evt.PaymentID = uuid.New()

	if err := fix.service.Settle(context.Background(), evt); err != nil {
		t.Fatalf("unknown payment must be acknowledged, got %v", err)
	}
	if fix.ledger.calls != 0 {
		t.Fatal("finalize must not run for an unknown payment")
	}
}

func TestSettleMissingMetadataIsAcknowledged(t *testing.T) {
	fix := newSettlementFixture(t)

	evt := &payment.WebhookEvent{Completed: true}
	if err := fix.service.Settle(context.Background(), evt); err != nil {
		t.Fatalf("missing metadata must be acknowledged, got %v", err)
	}
	if fix.ledger.calls != 0 {
		t.Fatal("finalize must not run without payment metadata")
	}
}

func TestSettleIgnoresOtherEventTypes(t *testing.T) {
	fix := newSettlementFixture(t)

	evt := &payment.WebhookEvent{Completed: false, PaymentID: fix.paymentID}
	if err := fix.service.Settle(context.Background(), evt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fix.ledger.calls != 0 {
		t.Fatal("non-completed events must not touch the ledger")
	}
}
