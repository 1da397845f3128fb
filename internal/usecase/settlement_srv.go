package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/payment"
	"cinema-reservation/internal/realtime"
	"cinema-reservation/internal/ticket"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettlementService applies verified provider notifications to the ledger.
// Settle is idempotent: replayed deliveries of the same payment are no-ops.
type SettlementService interface {
	Settle(ctx context.Context, evt *payment.WebhookEvent) error
}

type settlementService struct {
	payments     repository.PaymentRepository
	reservations repository.ReservationRepository
	showtimes    repository.ShowtimeRepository
	seats        repository.SeatRepository
	hub          *realtime.Hub
	issuer       ticket.Issuer
	log          *zap.Logger
}

func NewSettlementService(
	payments repository.PaymentRepository,
	reservations repository.ReservationRepository,
	showtimes repository.ShowtimeRepository,
	seats repository.SeatRepository,
	hub *realtime.Hub,
	issuer ticket.Issuer,
	log *zap.Logger,
) SettlementService {
	return &settlementService{
		payments:     payments,
		reservations: reservations,
		showtimes:    showtimes,
		seats:        seats,
		hub:          hub,
		issuer:       issuer,
		log:          log.With(zap.String("service", "settlement")),
	}
}

func (s *settlementService) Settle(ctx context.Context, evt *payment.WebhookEvent) error {
	if !evt.Completed {
		return nil
	}

	if evt.PaymentID == uuid.Nil {
		// Session created outside this system, or metadata was stripped.
		// Acknowledge so the provider stops retrying.
		s.log.Warn("Webhook without payment metadata, ignoring")
		return nil
	}

	pay, err := s.payments.FindByID(ctx, evt.PaymentID)
	if err != nil {
		return fmt.Errorf("settle: %w", err)
	}
	if pay == nil {
		s.log.Warn("Webhook for unknown payment, ignoring",
			zap.String("payment_id", evt.PaymentID.String()),
		)
		return nil
	}

	email := evt.Email
	if email == nil {
		email = pay.HolderEmail
	}

	seatIDs, settled, err := s.reservations.Finalize(ctx, evt.PaymentID, email, time.Now())
	if err != nil {
		return fmt.Errorf("settle: %w", err)
	}
	if !settled {
		s.log.Info("Payment already settled, skipping",
			zap.String("payment_id", evt.PaymentID.String()),
		)
		return nil
	}

	for _, seatID := range seatIDs {
		s.hub.BroadcastSeatUpdate(evt.ShowtimeID, seatID, entity.SeatStatusSold)
	}

	s.log.Info("Payment settled",
		zap.String("payment_id", evt.PaymentID.String()),
		zap.Int("seats", len(seatIDs)),
	)

	s.issueTicket(ctx, evt, email, seatIDs)

	return nil
}

// issueTicket hands the confirmation off to the issuer. Settlement already
// committed; a lookup failure here only costs the email.
func (s *settlementService) issueTicket(ctx context.Context, evt *payment.WebhookEvent, email *string, seatIDs []uuid.UUID) {
	detail, err := s.showtimes.FindDetailByID(ctx, evt.ShowtimeID)
	if err != nil || detail == nil {
		s.log.Warn("Skipping ticket issue, showtime lookup failed",
			zap.Error(err),
			zap.String("showtime_id", evt.ShowtimeID.String()),
		)
		return
	}

	seats, err := s.seats.FindByIDs(ctx, seatIDs)
	if err != nil {
		s.log.Warn("Skipping ticket issue, seat lookup failed", zap.Error(err))
		return
	}

	labels := make([]string, 0, len(seats))
	for _, seat := range seats {
		labels = append(labels, fmt.Sprintf("R%d-S%d", seat.Row, seat.Number))
	}

	go s.issuer.Issue(&ticket.Ticket{
		PaymentID:  evt.PaymentID,
		ShowtimeID: evt.ShowtimeID,
		Email:      email,
		MovieTitle: detail.MovieTitle,
		CinemaName: detail.CinemaName,
		HallName:   detail.HallName,
		StartsAt:   detail.Showtime.StartsAt,
		EndsAt:     detail.Showtime.EndsAt,
		Seats:      labels,
	})
}
