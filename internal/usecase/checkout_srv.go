package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/dto/request"
	"cinema-reservation/internal/dto/response"
	"cinema-reservation/internal/payment"
	"cinema-reservation/internal/realtime"
	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// sessionTimeout bounds the provider call so a slow upstream cannot pin the
// request past the hold window.
const sessionTimeout = 15 * time.Second

// CheckoutService turns a seat selection into held reservations plus a hosted
// payment session. The hold is all-or-nothing; a conflict on any seat leaves
// the ledger untouched.
type CheckoutService interface {
	Checkout(ctx context.Context, req *request.Checkout) (*response.Checkout, error)
}

type checkoutService struct {
	showtimes    repository.ShowtimeRepository
	seats        repository.SeatRepository
	reservations repository.ReservationRepository
	payments     repository.PaymentRepository
	gateway      payment.Gateway
	hub          *realtime.Hub
	checkoutCfg  utils.CheckoutConfig
	log          *zap.Logger
}

func NewCheckoutService(
	showtimes repository.ShowtimeRepository,
	seats repository.SeatRepository,
	reservations repository.ReservationRepository,
	payments repository.PaymentRepository,
	gateway payment.Gateway,
	hub *realtime.Hub,
	checkoutCfg utils.CheckoutConfig,
	log *zap.Logger,
) CheckoutService {
	return &checkoutService{
		showtimes:    showtimes,
		seats:        seats,
		reservations: reservations,
		payments:     payments,
		gateway:      gateway,
		hub:          hub,
		checkoutCfg:  checkoutCfg,
		log:          log.With(zap.String("service", "checkout")),
	}
}

func (s *checkoutService) Checkout(ctx context.Context, req *request.Checkout) (*response.Checkout, error) {
	showtimeID, err := uuid.Parse(req.ShowtimeUID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid showtime_uid", ErrValidation)
	}

	seatIDs := make([]uuid.UUID, 0, len(req.SeatUIDs))
	for _, raw := range req.SeatUIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid seat_uid %s", ErrValidation, raw)
		}
		seatIDs = append(seatIDs, id)
	}

	detail, err := s.showtimes.FindDetailByID(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	if detail == nil {
		return nil, fmt.Errorf("%w: showtime %s", ErrNotFound, showtimeID.String())
	}

	if err := s.validateSeats(ctx, detail.Showtime.HallID, seatIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	pay := &entity.Payment{
		Amount:      req.Amount,
		Currency:    req.Currency,
		Status:      entity.PaymentStatusPending,
		HolderEmail: req.Email,
	}
	pay.ID = uuid.New()
	pay.CreatedAt = now
	pay.UpdatedAt = now

	holdParams := &repository.HoldParams{
		ShowtimeID:   showtimeID,
		SeatIDs:      seatIDs,
		PricePerSeat: req.Amount / int64(len(seatIDs)),
		ExpiresAt:    now.Add(s.checkoutCfg.HoldTTL),
	}

	conflicts, err := s.reservations.HoldSeats(ctx, pay, holdParams)
	if err != nil {
		return nil, fmt.Errorf("checkout: %w", err)
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{SeatIDs: conflicts}
	}

	for _, seatID := range seatIDs {
		s.hub.BroadcastSeatUpdate(showtimeID, seatID, entity.SeatStatusReserved)
	}

	sessCtx, cancel := context.WithTimeout(ctx, sessionTimeout)
	defer cancel()

	sess, err := s.gateway.CreateCheckoutSession(sessCtx, &payment.SessionRequest{
		PaymentID:   pay.ID,
		ShowtimeID:  showtimeID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Description: fmt.Sprintf("%s (%d seats)", detail.MovieTitle, len(seatIDs)),
	})
	if err != nil {
		s.rollbackHold(ctx, pay.ID)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if err := s.payments.UpdateSessionID(ctx, pay.ID, sess.ID); err != nil {
		// Settlement keys on payment metadata, not the stored session ID, so
		// the checkout still works.
		s.log.Warn("Failed to store session ID",
			zap.Error(err),
			zap.String("payment_id", pay.ID.String()),
		)
	}

	s.log.Info("Checkout session created",
		zap.String("payment_id", pay.ID.String()),
		zap.String("showtime_id", showtimeID.String()),
		zap.Int("seats", len(seatIDs)),
	)

	return &response.Checkout{RedirectURL: sess.RedirectURL}, nil
}

func (s *checkoutService) validateSeats(ctx context.Context, hallID uuid.UUID, seatIDs []uuid.UUID) error {
	seats, err := s.seats.FindByIDs(ctx, seatIDs)
	if err != nil {
		return fmt.Errorf("checkout: %w", err)
	}
	if len(seats) != len(seatIDs) {
		return fmt.Errorf("%w: unknown seats in selection", ErrValidation)
	}

	var blocked []uuid.UUID
	for _, seat := range seats {
		if seat.HallID != hallID {
			return fmt.Errorf("%w: seat %s is not in the showtime hall", ErrValidation, seat.ID.String())
		}
		if !seat.Active {
			blocked = append(blocked, seat.ID)
		}
	}
	if len(blocked) > 0 {
		return &ConflictError{SeatIDs: blocked}
	}

	return nil
}

// rollbackHold releases the batch when the provider session could not be
// opened, so the seats do not stay locked for the full hold window.
func (s *checkoutService) rollbackHold(ctx context.Context, paymentID uuid.UUID) {
	released, err := s.reservations.ReleaseByPayment(ctx, paymentID)
	if err != nil {
		s.log.Error("Failed to release holds after session failure",
			zap.Error(err),
			zap.String("payment_id", paymentID.String()),
		)
		return
	}

	for _, seat := range released {
		s.hub.BroadcastSeatUpdate(seat.ShowtimeID, seat.SeatID, entity.SeatStatusFree)
	}
}
