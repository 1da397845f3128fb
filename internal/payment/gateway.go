package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrInvalidSignature marks a webhook payload that failed authenticity
// verification.
var ErrInvalidSignature = errors.New("invalid webhook signature")

// SessionRequest describes a hosted checkout session for one held batch.
type SessionRequest struct {
	PaymentID   uuid.UUID
	ShowtimeID  uuid.UUID
	Amount      int64 // minor units
	Currency    string
	Description string
}

// Session is the provider's side of a created checkout.
type Session struct {
	ID          string
	RedirectURL string
}

// WebhookEvent is a verified provider notification. Completed is true only
// for a finished checkout; other event types are acknowledged and ignored.
type WebhookEvent struct {
	Completed  bool
	PaymentID  uuid.UUID
	ShowtimeID uuid.UUID
	Email      *string
}

// Gateway abstracts the payment provider so services and tests never touch
// provider SDK types.
type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req *SessionRequest) (*Session, error)
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)
}
