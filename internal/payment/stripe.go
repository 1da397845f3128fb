package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"cinema-reservation/pkg/utils"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"
)

const (
	metadataPaymentUID  = "payment_uid"
	metadataShowtimeUID = "showtime_uid"
)

type stripeGateway struct {
	webhookSecret string
	successURL    string
	cancelURL     string
	log           *zap.Logger
}

// NewStripeGateway configures the Stripe SDK from config. The SDK keeps the
// API key in package state, so construct this once at startup.
func NewStripeGateway(cfg utils.StripeConfig, checkout utils.CheckoutConfig, log *zap.Logger) Gateway {
	stripe.Key = cfg.SecretKey

	return &stripeGateway{
		webhookSecret: cfg.WebhookSecret,
		successURL:    checkout.SuccessURL,
		cancelURL:     checkout.CancelURL,
		log:           log.With(zap.String("component", "stripe_gateway")),
	}
}

func (g *stripeGateway) CreateCheckoutSession(ctx context.Context, req *SessionRequest) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(g.successURL),
		CancelURL:  stripe.String(g.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(req.Currency),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(req.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(metadataPaymentUID, req.PaymentID.String())
	params.AddMetadata(metadataShowtimeUID, req.ShowtimeID.String())

	sess, err := session.New(params)
	if err != nil {
		g.log.Error("Failed to create checkout session",
			zap.Error(err),
			zap.String("payment_id", req.PaymentID.String()),
		)
		return nil, fmt.Errorf("create checkout session for payment %s: %w", req.PaymentID.String(), err)
	}

	return &Session{ID: sess.ID, RedirectURL: sess.URL}, nil
}

func (g *stripeGateway) ParseWebhook(payload []byte, signature string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		g.log.Warn("Webhook signature verification failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	if event.Type != "checkout.session.completed" {
		return &WebhookEvent{Completed: false}, nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("decode checkout session event: %w", err)
	}

	evt := &WebhookEvent{Completed: true}

	if raw, ok := sess.Metadata[metadataPaymentUID]; ok {
		if id, err := uuid.Parse(raw); err == nil {
			evt.PaymentID = id
		}
	}
	if raw, ok := sess.Metadata[metadataShowtimeUID]; ok {
		if id, err := uuid.Parse(raw); err == nil {
			evt.ShowtimeID = id
		}
	}
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		email := sess.CustomerDetails.Email
		evt.Email = &email
	}

	return evt, nil
}
